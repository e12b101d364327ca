// Package catalog binds the music catalog's GraphQL operations.
//
// The server schema is assumed, not owned, by this package. It exposes three
// list queries and nine mutations:
//
//	| Operation    | Required args                 | Optional args       |
//	|--------------|-------------------------------|---------------------|
//	| createArtist | firstName, lastName           |                     |
//	| updateArtist | id                            | firstName, lastName |
//	| deleteArtist | id                            |                     |
//	| createAlbum  | artistId, name, releaseDate   |                     |
//	| updateAlbum  | id                            | name, releaseDate   |
//	| deleteAlbum  | id                            |                     |
//	| createSong   | artistId, albumId, title      |                     |
//	| updateSong   | id                            | title               |
//	| deleteSong   | id                            |                     |
//
// # Basic Usage
//
//	api := catalog.NewAPI(client)
//	albums, err := api.ListAlbums(ctx, false)
//
// # Controller Bindings
//
// MutationsFor adapts the typed methods to field maps keyed by the model.Field*
// names, which is what the submission controllers in package crud consume:
//
//	artists := api.MutationsFor(model.KindArtist)
//	err := artists.Create(ctx, map[string]string{"firstName": "Ada", "lastName": "Lovelace"})
//
// Response shapes and their conversion to model types live in the dto
// sub-package.
package catalog
