package model

import "strings"

// Artist represents a catalog artist.
//
// The identity is immutable; FirstName and LastName are editable.
type Artist struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ArtistRef is the subset of artist fields album and song queries select.
type ArtistRef struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
}

// FullName joins first and last name, collapsing missing parts.
func (a Artist) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Ref returns the artist as an album/song-level reference.
func (a Artist) Ref() ArtistRef {
	return ArtistRef{ID: a.ID, FirstName: a.FirstName}
}
