package crud

import (
	"slices"

	"github.com/handiism/music-catalog/internal/form"
	"github.com/handiism/music-catalog/internal/model"
)

// FilterAlbums returns the albums by artistID, in collection order. An empty
// artistID selects every album. The result is recomputed on every call.
func FilterAlbums(albums []model.Album, artistID string) []model.Album {
	if artistID == "" {
		return slices.Clone(albums)
	}
	out := make([]model.Album, 0, len(albums))
	for _, a := range albums {
		if a.BelongsTo(artistID) {
			out = append(out, a)
		}
	}
	return out
}

// SelectSongArtist sets the song create draft's artist. Changing the
// artist clears the album choice; re-selecting the same artist keeps it
// only while it is still among that artist's albums.
func SelectSongArtist(state *form.State, artistID string, albums []model.Album) error {
	return state.Update(func(d *form.Draft) error {
		prev := d.Get(model.FieldArtistID)
		if err := d.Set(model.FieldArtistID, artistID); err != nil {
			return err
		}
		albumID := d.Get(model.FieldAlbumID)
		if prev != artistID || !containsAlbum(FilterAlbums(albums, artistID), albumID) {
			return d.Set(model.FieldAlbumID, "")
		}
		return nil
	})
}

// SelectSongAlbum sets the song create draft's album. Albums outside the
// selected artist's set are refused with ErrAlbumNotAvailable, so with an
// empty filtered list every selection is a no-op. An empty albumID clears
// the choice.
func SelectSongAlbum(state *form.State, albumID string, albums []model.Album) error {
	return state.Update(func(d *form.Draft) error {
		if albumID == "" {
			return d.Set(model.FieldAlbumID, "")
		}
		if !containsAlbum(FilterAlbums(albums, d.Get(model.FieldArtistID)), albumID) {
			return ErrAlbumNotAvailable
		}
		return d.Set(model.FieldAlbumID, albumID)
	})
}

func containsAlbum(albums []model.Album, id string) bool {
	if id == "" {
		return false
	}
	return slices.ContainsFunc(albums, func(a model.Album) bool { return a.ID == id })
}
