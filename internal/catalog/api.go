package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/handiism/music-catalog/internal/catalog/dto"
	"github.com/handiism/music-catalog/internal/graphql"
	"github.com/handiism/music-catalog/internal/model"
)

// ErrNotAcknowledged is returned when a delete mutation answers ok=false.
var ErrNotAcknowledged = errors.New("delete not acknowledged by server")

// Transport is the GraphQL facility the API runs operations through.
// *graphql.Client satisfies it.
type Transport interface {
	Query(ctx context.Context, req graphql.Request, out any) error
	Refetch(ctx context.Context, req graphql.Request, out any) error
	Mutate(ctx context.Context, req graphql.Request, out any) error
}

// API binds the catalog's three queries and nine mutations to a Transport.
//
// List methods take a fresh flag: false answers from the transport cache when
// possible, true always asks the server (used after mutations).
//
// Example usage:
//
//	api := NewAPI(client)
//
//	artists, err := api.ListArtists(ctx, false)
//	created, err := api.CreateArtist(ctx, "Ada", "Lovelace")
//	artists, err = api.ListArtists(ctx, true)
type API struct {
	transport Transport
}

// NewAPI creates an API over the given transport.
func NewAPI(transport Transport) *API {
	return &API{transport: transport}
}

func (a *API) read(ctx context.Context, req graphql.Request, fresh bool, out any) error {
	if fresh {
		return a.transport.Refetch(ctx, req, out)
	}
	return a.transport.Query(ctx, req, out)
}

// ListArtists returns every artist.
func (a *API) ListArtists(ctx context.Context, fresh bool) ([]model.Artist, error) {
	var data dto.ArtistsData
	if err := a.read(ctx, graphql.Request{Query: artistsQuery, OperationName: "Artists"}, fresh, &data); err != nil {
		return nil, err
	}
	return data.ToArtists(), nil
}

// ListAlbums returns every album with its artist reference.
func (a *API) ListAlbums(ctx context.Context, fresh bool) ([]model.Album, error) {
	var data dto.AlbumsData
	if err := a.read(ctx, graphql.Request{Query: albumsQuery, OperationName: "Albums"}, fresh, &data); err != nil {
		return nil, err
	}
	return data.ToAlbums(), nil
}

// ListSongs returns every song with its album and artist references.
func (a *API) ListSongs(ctx context.Context, fresh bool) ([]model.Song, error) {
	var data dto.SongsData
	if err := a.read(ctx, graphql.Request{Query: songsQuery, OperationName: "Songs"}, fresh, &data); err != nil {
		return nil, err
	}
	return data.ToSongs(), nil
}

// CreateArtist creates an artist and returns it as the server stored it.
func (a *API) CreateArtist(ctx context.Context, firstName, lastName string) (model.Artist, error) {
	var data dto.CreateArtistData
	req := graphql.Request{
		Query:         createArtistMutation,
		OperationName: "CreateArtist",
		Variables: map[string]any{
			model.FieldFirstName: firstName,
			model.FieldLastName:  lastName,
		},
	}
	if err := a.transport.Mutate(ctx, req, &data); err != nil {
		return model.Artist{}, err
	}
	if data.CreateArtist == nil || data.CreateArtist.Artist == nil {
		return model.Artist{}, nil
	}
	return data.CreateArtist.Artist.ToArtist(), nil
}

// UpdateArtist changes the given fields of an artist. Only firstName and
// lastName are sent; absent fields are left unchanged by the server.
func (a *API) UpdateArtist(ctx context.Context, id string, fields map[string]string) (model.Artist, error) {
	var data dto.UpdateArtistData
	req := graphql.Request{
		Query:         updateArtistMutation,
		OperationName: "UpdateArtist",
		Variables:     updateVariables(id, fields, model.FieldFirstName, model.FieldLastName),
	}
	if err := a.transport.Mutate(ctx, req, &data); err != nil {
		return model.Artist{}, err
	}
	if data.UpdateArtist == nil || data.UpdateArtist.Artist == nil {
		return model.Artist{}, nil
	}
	return data.UpdateArtist.Artist.ToArtist(), nil
}

// DeleteArtist deletes an artist by id.
func (a *API) DeleteArtist(ctx context.Context, id string) error {
	var data dto.DeleteArtistData
	req := graphql.Request{Query: deleteArtistMutation, OperationName: "DeleteArtist", Variables: map[string]any{"id": id}}
	if err := a.transport.Mutate(ctx, req, &data); err != nil {
		return err
	}
	return acknowledged(data.DeleteArtist, "artist", id)
}

// CreateAlbum creates an album for an artist. releaseDate is normalized to
// YYYY-MM-DD when it parses.
func (a *API) CreateAlbum(ctx context.Context, artistID, name, releaseDate string) (model.Album, error) {
	var data dto.CreateAlbumData
	req := graphql.Request{
		Query:         createAlbumMutation,
		OperationName: "CreateAlbum",
		Variables: map[string]any{
			model.FieldArtistID:    artistID,
			model.FieldName:        name,
			model.FieldReleaseDate: model.NormalizeDate(releaseDate),
		},
	}
	if err := a.transport.Mutate(ctx, req, &data); err != nil {
		return model.Album{}, err
	}
	if data.CreateAlbum == nil || data.CreateAlbum.Album == nil {
		return model.Album{}, nil
	}
	return data.CreateAlbum.Album.ToAlbum(), nil
}

// UpdateAlbum changes the name and/or release date of an album.
func (a *API) UpdateAlbum(ctx context.Context, id string, fields map[string]string) (model.Album, error) {
	vars := updateVariables(id, fields, model.FieldName, model.FieldReleaseDate)
	if d, ok := vars[model.FieldReleaseDate].(string); ok {
		vars[model.FieldReleaseDate] = model.NormalizeDate(d)
	}

	var data dto.UpdateAlbumData
	req := graphql.Request{Query: updateAlbumMutation, OperationName: "UpdateAlbum", Variables: vars}
	if err := a.transport.Mutate(ctx, req, &data); err != nil {
		return model.Album{}, err
	}
	if data.UpdateAlbum == nil || data.UpdateAlbum.Album == nil {
		return model.Album{}, nil
	}
	return data.UpdateAlbum.Album.ToAlbum(), nil
}

// DeleteAlbum deletes an album by id.
func (a *API) DeleteAlbum(ctx context.Context, id string) error {
	var data dto.DeleteAlbumData
	req := graphql.Request{Query: deleteAlbumMutation, OperationName: "DeleteAlbum", Variables: map[string]any{"id": id}}
	if err := a.transport.Mutate(ctx, req, &data); err != nil {
		return err
	}
	return acknowledged(data.DeleteAlbum, "album", id)
}

// CreateSong creates a song on an album. The server is not assumed to check
// that the album belongs to the artist.
func (a *API) CreateSong(ctx context.Context, artistID, albumID, title string) (model.Song, error) {
	var data dto.CreateSongData
	req := graphql.Request{
		Query:         createSongMutation,
		OperationName: "CreateSong",
		Variables: map[string]any{
			model.FieldArtistID: artistID,
			model.FieldAlbumID:  albumID,
			model.FieldTitle:    title,
		},
	}
	if err := a.transport.Mutate(ctx, req, &data); err != nil {
		return model.Song{}, err
	}
	if data.CreateSong == nil || data.CreateSong.Song == nil {
		return model.Song{}, nil
	}
	return data.CreateSong.Song.ToSong(), nil
}

// UpdateSong changes the title of a song.
func (a *API) UpdateSong(ctx context.Context, id string, fields map[string]string) (model.Song, error) {
	var data dto.UpdateSongData
	req := graphql.Request{
		Query:         updateSongMutation,
		OperationName: "UpdateSong",
		Variables:     updateVariables(id, fields, model.FieldTitle),
	}
	if err := a.transport.Mutate(ctx, req, &data); err != nil {
		return model.Song{}, err
	}
	if data.UpdateSong == nil || data.UpdateSong.Song == nil {
		return model.Song{}, nil
	}
	return data.UpdateSong.Song.ToSong(), nil
}

// DeleteSong deletes a song by id.
func (a *API) DeleteSong(ctx context.Context, id string) error {
	var data dto.DeleteSongData
	req := graphql.Request{Query: deleteSongMutation, OperationName: "DeleteSong", Variables: map[string]any{"id": id}}
	if err := a.transport.Mutate(ctx, req, &data); err != nil {
		return err
	}
	return acknowledged(data.DeleteSong, "song", id)
}

// updateVariables builds {id, ...fields} restricted to the allowed argument
// names. Fields absent from the map are not sent.
func updateVariables(id string, fields map[string]string, allowed ...string) map[string]any {
	vars := map[string]any{"id": id}
	for _, name := range allowed {
		if v, ok := fields[name]; ok {
			vars[name] = v
		}
	}
	return vars
}

func acknowledged(p *dto.DeletePayload, kind, id string) error {
	if p != nil && !p.Acknowledged() {
		return fmt.Errorf("delete %s %s: %w", kind, id, ErrNotAcknowledged)
	}
	return nil
}
