package catalog

import (
	"context"
	"fmt"

	"github.com/handiism/music-catalog/internal/model"
)

// Mutations adapts the typed API to the field-map shape the submission
// controllers work with. One value is bound per entity kind.
type Mutations struct {
	api  *API
	kind model.Kind
}

// MutationsFor returns the create/update/delete bindings for kind.
func (a *API) MutationsFor(kind model.Kind) *Mutations {
	return &Mutations{api: a, kind: kind}
}

// Kind returns the entity kind the bindings operate on.
func (m *Mutations) Kind() model.Kind {
	return m.kind
}

// Create runs the kind's create mutation with values as arguments.
func (m *Mutations) Create(ctx context.Context, values map[string]string) error {
	var err error
	switch m.kind {
	case model.KindArtist:
		_, err = m.api.CreateArtist(ctx, values[model.FieldFirstName], values[model.FieldLastName])
	case model.KindAlbum:
		_, err = m.api.CreateAlbum(ctx, values[model.FieldArtistID], values[model.FieldName], values[model.FieldReleaseDate])
	case model.KindSong:
		_, err = m.api.CreateSong(ctx, values[model.FieldArtistID], values[model.FieldAlbumID], values[model.FieldTitle])
	default:
		err = fmt.Errorf("create: unsupported kind %v", m.kind)
	}
	return err
}

// Update runs the kind's update mutation for id with the given fields.
func (m *Mutations) Update(ctx context.Context, id string, values map[string]string) error {
	var err error
	switch m.kind {
	case model.KindArtist:
		_, err = m.api.UpdateArtist(ctx, id, values)
	case model.KindAlbum:
		_, err = m.api.UpdateAlbum(ctx, id, values)
	case model.KindSong:
		_, err = m.api.UpdateSong(ctx, id, values)
	default:
		err = fmt.Errorf("update: unsupported kind %v", m.kind)
	}
	return err
}

// Delete runs the kind's delete mutation for id.
func (m *Mutations) Delete(ctx context.Context, id string) error {
	switch m.kind {
	case model.KindArtist:
		return m.api.DeleteArtist(ctx, id)
	case model.KindAlbum:
		return m.api.DeleteAlbum(ctx, id)
	case model.KindSong:
		return m.api.DeleteSong(ctx, id)
	}
	return fmt.Errorf("delete: unsupported kind %v", m.kind)
}
