package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/music-catalog/internal/model"
)

var testAlbums = []model.Album{
	{ID: "x", Name: "X", Artist: model.ArtistRef{ID: "A"}},
	{ID: "z", Name: "Z", Artist: model.ArtistRef{ID: "B"}},
	{ID: "y", Name: "Y", Artist: model.ArtistRef{ID: "A"}},
}

func albumIDs(albums []model.Album) []string {
	ids := make([]string, 0, len(albums))
	for _, a := range albums {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestFilterAlbums(t *testing.T) {
	tests := []struct {
		name     string
		artistID string
		want     []string
	}{
		{"no selection keeps everything", "", []string{"x", "z", "y"}},
		{"artist A", "A", []string{"x", "y"}},
		{"artist B", "B", []string{"z"}},
		{"artist without albums", "C", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, albumIDs(FilterAlbums(testAlbums, tt.artistID)))
		})
	}
}

func TestFilterAlbums_DoesNotAliasInput(t *testing.T) {
	out := FilterAlbums(testAlbums, "")
	out[0].Name = "changed"
	assert.Equal(t, "X", testAlbums[0].Name)
}

func TestSelectSongArtist_ResetsAlbum(t *testing.T) {
	state := SongSchema.NewState()
	require.NoError(t, SelectSongArtist(state, "B", testAlbums))
	require.NoError(t, SelectSongAlbum(state, "z", testAlbums))

	require.NoError(t, SelectSongArtist(state, "A", testAlbums))

	d := state.New()
	assert.Equal(t, "A", d.Get(model.FieldArtistID))
	assert.Empty(t, d.Get(model.FieldAlbumID))
	assert.Equal(t, []string{"x", "y"}, albumIDs(FilterAlbums(testAlbums, d.Get(model.FieldArtistID))))
}

func TestSelectSongArtist_SameArtistKeepsAlbum(t *testing.T) {
	state := SongSchema.NewState()
	require.NoError(t, SelectSongArtist(state, "A", testAlbums))
	require.NoError(t, SelectSongAlbum(state, "y", testAlbums))

	require.NoError(t, SelectSongArtist(state, "A", testAlbums))

	assert.Equal(t, "y", state.New().Get(model.FieldAlbumID))
}

func TestSelectSongArtist_LeavesTitle(t *testing.T) {
	state := SongSchema.NewState()
	require.NoError(t, state.SetNewField(model.FieldTitle, "Intro"))

	require.NoError(t, SelectSongArtist(state, "A", testAlbums))

	assert.Equal(t, "Intro", state.New().Get(model.FieldTitle))
}

func TestSelectSongAlbum_RefusesOtherArtistsAlbum(t *testing.T) {
	state := SongSchema.NewState()
	require.NoError(t, SelectSongArtist(state, "A", testAlbums))

	err := SelectSongAlbum(state, "z", testAlbums)

	assert.ErrorIs(t, err, ErrAlbumNotAvailable)
	assert.Empty(t, state.New().Get(model.FieldAlbumID))
}

func TestSelectSongAlbum_NoAlbumsIsNoop(t *testing.T) {
	state := SongSchema.NewState()
	require.NoError(t, SelectSongArtist(state, "C", testAlbums))

	assert.Empty(t, FilterAlbums(testAlbums, "C"))
	for _, a := range testAlbums {
		assert.ErrorIs(t, SelectSongAlbum(state, a.ID, testAlbums), ErrAlbumNotAvailable)
	}
	assert.Empty(t, state.New().Get(model.FieldAlbumID))
}

func TestSelectSongAlbum_Clear(t *testing.T) {
	state := SongSchema.NewState()
	require.NoError(t, SelectSongArtist(state, "A", testAlbums))
	require.NoError(t, SelectSongAlbum(state, "x", testAlbums))

	require.NoError(t, SelectSongAlbum(state, "", testAlbums))

	assert.Empty(t, state.New().Get(model.FieldAlbumID))
}

func TestSchemaFor(t *testing.T) {
	for _, kind := range model.Kinds {
		s, err := SchemaFor(kind)
		require.NoError(t, err)
		assert.Equal(t, kind, s.Kind)
		assert.Subset(t, s.CreateFields, s.CreateRequired)
		assert.Subset(t, s.EditFields, s.EditRequired)
	}
	_, err := SchemaFor(model.Kind(9))
	assert.Error(t, err)
}
