package model

import (
	"fmt"
	"strings"
)

// Kind identifies one of the three catalog entity types.
type Kind int

const (
	// KindArtist selects artists.
	KindArtist Kind = iota

	// KindAlbum selects albums.
	KindAlbum

	// KindSong selects songs.
	KindSong
)

// Kinds lists every entity type in display order.
var Kinds = []Kind{KindArtist, KindAlbum, KindSong}

// Field names shared by drafts, GraphQL variables and CLI flags.
const (
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldArtistID    = "artistId"
	FieldAlbumID     = "albumId"
	FieldName        = "name"
	FieldReleaseDate = "releaseDate"
	FieldTitle       = "title"
)

// String returns the singular lower-case name, e.g. "artist".
func (k Kind) String() string {
	switch k {
	case KindArtist:
		return "artist"
	case KindAlbum:
		return "album"
	case KindSong:
		return "song"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Plural returns the collection name, e.g. "artists".
func (k Kind) Plural() string {
	return k.String() + "s"
}

// Title returns the capitalized plural used in section headings.
func (k Kind) Title() string {
	p := k.Plural()
	if p == "" {
		return p
	}
	return strings.ToUpper(p[:1]) + p[1:]
}
