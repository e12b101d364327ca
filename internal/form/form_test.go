package form

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	artistCreate = []string{"firstName", "lastName"}
	albumCreate  = []string{"artistId", "name", "releaseDate"}
	albumEdit    = []string{"name", "releaseDate"}
)

func TestDraft_SetLeavesOtherFields(t *testing.T) {
	d := NewDraft(albumCreate...)
	require.NoError(t, d.Set("name", "Notes"))
	require.NoError(t, d.Set("releaseDate", "1843-07-01"))
	require.NoError(t, d.Set("name", "Notes II"))

	assert.Equal(t, map[string]string{"artistId": "", "name": "Notes II", "releaseDate": "1843-07-01"}, d.Values())
}

func TestDraft_UnknownField(t *testing.T) {
	d := NewDraft(artistCreate...)
	err := d.Set("nickname", "Ada")
	assert.True(t, errors.Is(err, ErrUnknownField))
	assert.False(t, d.Has("nickname"))
	assert.Equal(t, "", d.Get("nickname"))
}

func TestDraft_Missing(t *testing.T) {
	d := NewDraft(albumCreate...)
	require.NoError(t, d.Set("name", "  "))
	require.NoError(t, d.Set("releaseDate", "1999-01-01"))

	assert.Equal(t, []string{"artistId", "name"}, d.Missing(albumCreate))
	assert.Empty(t, d.Missing([]string{"releaseDate"}))
}

func TestDraft_CloneIsIndependent(t *testing.T) {
	d := NewDraft(artistCreate...)
	require.NoError(t, d.Set("firstName", "Ada"))

	c := d.Clone()
	require.NoError(t, c.Set("firstName", "Grace"))

	assert.Equal(t, "Ada", d.Get("firstName"))
	assert.False(t, d.Equal(c))

	c2 := d.Clone()
	assert.True(t, d.Equal(c2))

	var nilDraft *Draft
	assert.Nil(t, nilDraft.Clone())
	assert.True(t, nilDraft.Equal(nil))
	assert.False(t, nilDraft.Equal(d))
}

func TestDraft_IsEmpty(t *testing.T) {
	d := NewDraft(artistCreate...)
	assert.True(t, d.IsEmpty())
	require.NoError(t, d.Set("lastName", "Lovelace"))
	assert.False(t, d.IsEmpty())
	assert.Equal(t, artistCreate, d.Fields())
}

func TestState_InitialValues(t *testing.T) {
	s := NewState(albumCreate, albumEdit)

	assert.True(t, s.New().IsEmpty())
	assert.Nil(t, s.Edit())
	assert.False(t, s.Editing())
	assert.Equal(t, "", s.EditingID())
}

func TestState_SetFieldTargetsActiveDraft(t *testing.T) {
	s := NewState(albumCreate, albumEdit)

	require.NoError(t, s.SetField("name", "Draft album"))
	assert.Equal(t, "Draft album", s.New().Get("name"))

	require.NoError(t, s.BeginEdit("42", map[string]string{"name": "Notes", "releaseDate": "1843-07-01", "artistId": "1"}))
	require.NoError(t, s.SetField("releaseDate", "1999-01-01"))

	edit := s.Edit()
	assert.Equal(t, "42", edit.ID())
	assert.Equal(t, map[string]string{"name": "Notes", "releaseDate": "1999-01-01"}, edit.Values())
	assert.Equal(t, "Draft album", s.New().Get("name"), "create draft must be untouched while editing")

	// artistId is not editable once the album exists.
	assert.ErrorIs(t, s.SetField("artistId", "2"), ErrUnknownField)
}

func TestState_SetEditFieldRequiresEdit(t *testing.T) {
	s := NewState(albumCreate, albumEdit)
	assert.ErrorIs(t, s.SetEditField("name", "x"), ErrNotEditing)
}

func TestState_CancelEditAndReset(t *testing.T) {
	s := NewState(artistCreate, artistCreate)
	require.NoError(t, s.SetNewField("firstName", "Ada"))
	require.NoError(t, s.BeginEdit("1", map[string]string{"firstName": "Grace"}))

	s.CancelEdit()
	assert.Nil(t, s.Edit())
	assert.Equal(t, "Ada", s.New().Get("firstName"))

	s.ResetNew()
	assert.True(t, s.New().IsEmpty())
}

func TestState_BeginEditRejectsEmptyID(t *testing.T) {
	s := NewState(artistCreate, artistCreate)
	assert.Error(t, s.BeginEdit("", nil))
	assert.False(t, s.Editing())
}

func TestState_FinishEditKeepsNewerEdit(t *testing.T) {
	s := NewState(artistCreate, artistCreate)
	require.NoError(t, s.BeginEdit("1", nil))
	require.NoError(t, s.BeginEdit("2", nil))

	s.FinishEdit("1")
	assert.Equal(t, "2", s.EditingID())

	s.FinishEdit("2")
	assert.False(t, s.Editing())
}

func TestState_AccessorsReturnCopies(t *testing.T) {
	s := NewState(artistCreate, artistCreate)
	d := s.New()
	require.NoError(t, d.Set("firstName", "Ada"))
	assert.True(t, s.New().IsEmpty())
}

func TestState_Update(t *testing.T) {
	s := NewState(albumCreate, albumEdit)
	require.NoError(t, s.Update(func(d *Draft) error {
		if err := d.Set("artistId", "1"); err != nil {
			return err
		}
		return d.Set("name", "Notes")
	}))
	assert.Equal(t, "1", s.New().Get("artistId"))
	assert.Equal(t, "Notes", s.New().Get("name"))
}

func TestState_ConcurrentWriters(t *testing.T) {
	s := NewState(artistCreate, artistCreate)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.SetNewField("firstName", "Ada")
		}()
		go func() {
			defer wg.Done()
			s.ResetNew()
		}()
	}
	wg.Wait()

	v := s.New().Get("firstName")
	assert.Contains(t, []string{"", "Ada"}, v)
}
