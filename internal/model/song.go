package model

import "fmt"

// Song represents a single song in the catalog.
//
// A song references one album and one artist. The catalog does not enforce
// that the album belongs to the artist; the create form narrows the album
// choices to the selected artist instead.
//
// Example:
//
//	song := Song{ID: "7", Title: "Come Together",
//	    Album:  AlbumRef{ID: "42", Name: "Abbey Road"},
//	    Artist: ArtistRef{ID: "1", FirstName: "John"}}
//	song.Label() // "Come Together - Abbey Road by John"
type Song struct {
	// ID is the opaque, server-assigned identifier.
	ID string `json:"id"`

	// Title is the song title.
	Title string `json:"title"`

	// Album is the album the song appears on.
	Album AlbumRef `json:"album"`

	// Artist is the performing artist.
	Artist ArtistRef `json:"artist"`
}

// Label renders the song the way list views show it.
func (s Song) Label() string {
	return fmt.Sprintf("%s - %s by %s", s.Title, s.Album.Name, s.Artist.FirstName)
}
