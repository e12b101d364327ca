package model

import "fmt"

// Album represents an album in the catalog.
//
// Album carries the fields the catalog server exposes for listing:
//   - Name and ReleaseDate are editable
//   - Artist references the owning artist, resolved server-side
//
// Every album references exactly one artist. The reference only carries the
// artist fields the album query selects (id and first name).
//
// Example:
//
//	album := Album{ID: "42", Name: "Abbey Road", ReleaseDate: "1969-09-26",
//	    Artist: ArtistRef{ID: "1", FirstName: "John"}}
//	album.Label() // "Abbey Road (1969-09-26) by John"
type Album struct {
	// ID is the opaque, server-assigned identifier.
	ID string `json:"id"`

	// Name is the album title.
	Name string `json:"name"`

	// ReleaseDate is the calendar date in YYYY-MM-DD form.
	// Empty string means the server did not report one.
	ReleaseDate string `json:"releaseDate"`

	// Artist is the owning artist.
	Artist ArtistRef `json:"artist"`
}

// AlbumRef is the subset of album fields a song query selects.
type AlbumRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Label renders the album the way list views show it.
func (a Album) Label() string {
	return fmt.Sprintf("%s (%s) by %s", a.Name, a.ReleaseDate, a.Artist.FirstName)
}

// Ref returns the album as a song-level reference.
func (a Album) Ref() AlbumRef {
	return AlbumRef{ID: a.ID, Name: a.Name}
}

// BelongsTo reports whether the album is owned by the given artist.
func (a Album) BelongsTo(artistID string) bool {
	return a.Artist.ID == artistID
}
