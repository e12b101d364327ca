package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/music-catalog/internal/crud"
	"github.com/handiism/music-catalog/internal/library"
	"github.com/handiism/music-catalog/internal/model"
)

var fieldLabels = map[string]string{
	model.FieldFirstName:   "First Name",
	model.FieldLastName:    "Last Name",
	model.FieldArtistID:    "Artist",
	model.FieldAlbumID:     "Album",
	model.FieldName:        "Album Name",
	model.FieldReleaseDate: "Release Date",
	model.FieldTitle:       "Song Title",
}

func isSelector(field string) bool {
	return field == model.FieldArtistID || field == model.FieldAlbumID
}

// openForm builds the form rows of the active section from its draft.
func (m *Model) openForm(mode Mode) {
	ctrl := m.lib.Controller(m.section)
	schema := ctrl.Schema()

	names, draft := schema.CreateFields, ctrl.Form().New()
	if mode == ModeEdit {
		names, draft = schema.EditFields, ctrl.Form().Edit()
	}

	m.fields = make([]formField, 0, len(names))
	for _, name := range names {
		f := formField{name: name, label: fieldLabels[name], selector: isSelector(name)}
		if !f.selector {
			ti := textinput.New()
			ti.Placeholder = f.label
			if name == model.FieldReleaseDate {
				ti.Placeholder = model.DateLayout
			}
			ti.CharLimit = 200
			ti.Width = 40
			ti.SetValue(draft.Get(name))
			f.input = ti
		}
		m.fields = append(m.fields, f)
	}

	m.mode = mode
	m.status = LogEntry{}
	m.setFocus(0)
}

func (m *Model) closeForm() {
	m.mode = ModeBrowse
	m.fields = nil
	m.focus = 0
}

func (m *Model) setFocus(i int) {
	if len(m.fields) == 0 {
		return
	}
	i = (i + len(m.fields)) % len(m.fields)
	for j := range m.fields {
		if m.fields[j].selector {
			continue
		}
		if j == i {
			m.fields[j].input.Focus()
		} else {
			m.fields[j].input.Blur()
		}
	}
	m.focus = i
}

func (m *Model) setValue(name, value string) {
	form := m.lib.Controller(m.section).Form()
	var err error
	if m.mode == ModeEdit {
		err = form.SetEditField(name, value)
	} else {
		err = form.SetNewField(name, value)
	}
	if err != nil {
		m.status = LogEntry{Message: err.Error(), Level: library.LevelError}
	}
}

// cycle moves a relation selector by delta through its options. Options
// include "no selection" at the start.
func (m *Model) cycle(name string, delta int) {
	draft := m.lib.Controller(m.section).Form().New()

	var ids []string
	switch name {
	case model.FieldArtistID:
		for _, a := range m.lib.Artists() {
			ids = append(ids, a.ID)
		}
	case model.FieldAlbumID:
		for _, a := range m.lib.SongAlbumChoices() {
			ids = append(ids, a.ID)
		}
		if len(ids) == 0 {
			m.status = LogEntry{Message: "No albums for the selected artist", Level: library.LevelWarning}
			return
		}
	}

	options := append([]string{""}, ids...)
	cur := 0
	for i, id := range options {
		if id == draft.Get(name) {
			cur = i
			break
		}
	}
	next := options[(cur+delta+len(options))%len(options)]

	var err error
	switch {
	case m.section == model.KindSong && name == model.FieldArtistID:
		err = m.lib.SelectSongArtist(next)
	case m.section == model.KindSong && name == model.FieldAlbumID:
		err = m.lib.SelectSongAlbum(next)
	default:
		err = m.lib.Controller(m.section).Form().SetNewField(name, next)
	}
	if errors.Is(err, crud.ErrAlbumNotAvailable) {
		m.status = LogEntry{Message: err.Error(), Level: library.LevelWarning}
	} else if err != nil {
		m.status = LogEntry{Message: err.Error(), Level: library.LevelError}
	}
}

// selectorLabel renders the current choice of a relation field.
func (m Model) selectorLabel(name string) string {
	id := m.lib.Controller(m.section).Form().New().Get(name)
	if id == "" {
		if name == model.FieldArtistID {
			return "Select Artist"
		}
		return "Select Album"
	}
	switch name {
	case model.FieldArtistID:
		for _, a := range m.lib.Artists() {
			if a.ID == id {
				return a.FullName()
			}
		}
	case model.FieldAlbumID:
		for _, a := range m.lib.Albums() {
			if a.ID == id {
				return a.Name
			}
		}
	}
	return id
}

func (m Model) rowCount(kind model.Kind) int {
	return m.lib.Section(kind).Count
}

func (m Model) selectedID() string {
	return m.idAt(m.cursor[m.section])
}

func (m *Model) clampCursors() {
	for _, kind := range model.Kinds {
		n := m.rowCount(kind)
		switch {
		case n == 0:
			m.cursor[kind] = 0
		case m.cursor[kind] >= n:
			m.cursor[kind] = n - 1
		}
	}
}

// Commands run the library call off the UI loop and report back a message.

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		return LoadDoneMsg{Err: m.lib.Load(m.ctx)}
	}
}

func (m Model) add(kind model.Kind) tea.Cmd {
	return func() tea.Msg {
		return SubmitDoneMsg{Kind: kind, Op: crud.OpAdd, Err: m.lib.Add(m.ctx, kind)}
	}
}

func (m Model) save(kind model.Kind) tea.Cmd {
	return func() tea.Msg {
		return SubmitDoneMsg{Kind: kind, Op: crud.OpSave, Err: m.lib.Save(m.ctx, kind)}
	}
}

func (m Model) remove(kind model.Kind, id string) tea.Cmd {
	return func() tea.Msg {
		return SubmitDoneMsg{Kind: kind, Op: crud.OpRemove, Err: m.lib.Remove(m.ctx, kind, id)}
	}
}

func (m Model) refresh(kind model.Kind) tea.Cmd {
	return func() tea.Msg {
		return RefreshDoneMsg{Kind: kind, Err: m.lib.Refresh(m.ctx, kind)}
	}
}
