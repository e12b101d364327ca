package crud

import (
	"fmt"

	"github.com/handiism/music-catalog/internal/form"
	"github.com/handiism/music-catalog/internal/model"
)

// Schema describes the form fields of one entity kind.
type Schema struct {
	Kind model.Kind

	// CreateFields are the create draft's fields in form order.
	CreateFields []string

	// CreateRequired must all be non-empty before a create is sent.
	CreateRequired []string

	// EditFields are the edit draft's fields. Relations are not re-selectable
	// while editing, so they never appear here.
	EditFields []string

	// EditRequired must all be non-empty before an update is sent.
	EditRequired []string
}

var (
	ArtistSchema = Schema{
		Kind:           model.KindArtist,
		CreateFields:   []string{model.FieldFirstName, model.FieldLastName},
		CreateRequired: []string{model.FieldFirstName, model.FieldLastName},
		EditFields:     []string{model.FieldFirstName, model.FieldLastName},
		EditRequired:   []string{model.FieldFirstName, model.FieldLastName},
	}

	AlbumSchema = Schema{
		Kind:           model.KindAlbum,
		CreateFields:   []string{model.FieldArtistID, model.FieldName, model.FieldReleaseDate},
		CreateRequired: []string{model.FieldArtistID, model.FieldName, model.FieldReleaseDate},
		EditFields:     []string{model.FieldName, model.FieldReleaseDate},
		EditRequired:   []string{model.FieldName, model.FieldReleaseDate},
	}

	SongSchema = Schema{
		Kind:           model.KindSong,
		CreateFields:   []string{model.FieldArtistID, model.FieldAlbumID, model.FieldTitle},
		CreateRequired: []string{model.FieldArtistID, model.FieldAlbumID, model.FieldTitle},
		EditFields:     []string{model.FieldTitle},
		EditRequired:   []string{model.FieldTitle},
	}
)

// SchemaFor returns the built-in schema of kind.
func SchemaFor(kind model.Kind) (Schema, error) {
	switch kind {
	case model.KindArtist:
		return ArtistSchema, nil
	case model.KindAlbum:
		return AlbumSchema, nil
	case model.KindSong:
		return SongSchema, nil
	}
	return Schema{}, fmt.Errorf("no schema for %v", kind)
}

// NewState returns an empty form state over the schema's fields.
func (s Schema) NewState() *form.State {
	return form.NewState(s.CreateFields, s.EditFields)
}
