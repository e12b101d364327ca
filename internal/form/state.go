package form

import (
	"fmt"
	"slices"
	"sync"
)

// State holds the two drafts of one entity kind: the create draft, which
// always exists, and the edit draft, which is nil while nothing is being
// edited.
//
// State is safe for concurrent use. Accessors return copies so callers never
// share a draft with the state.
//
// Example:
//
//	s := NewState([]string{"firstName", "lastName"}, []string{"firstName", "lastName"})
//	s.SetField("firstName", "Ada")      // create draft
//	s.BeginEdit("7", map[string]string{"firstName": "Grace", "lastName": "Hopper"})
//	s.SetField("lastName", "Murray")    // edit draft, now that one is open
//	s.CancelEdit()
type State struct {
	mu           sync.Mutex
	createFields []string
	editFields   []string
	draftNew     *Draft
	draftEdit    *Draft
}

// NewState returns a state with an empty create draft and no edit draft.
func NewState(createFields, editFields []string) *State {
	return &State{
		createFields: slices.Clone(createFields),
		editFields:   slices.Clone(editFields),
		draftNew:     NewDraft(createFields...),
	}
}

// New returns a copy of the create draft.
func (s *State) New() *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draftNew.Clone()
}

// Edit returns a copy of the edit draft, or nil when not editing.
func (s *State) Edit() *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draftEdit.Clone()
}

// Editing reports whether an edit draft is open.
func (s *State) Editing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draftEdit != nil
}

// EditingID returns the id being edited, or "".
func (s *State) EditingID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draftEdit == nil {
		return ""
	}
	return s.draftEdit.id
}

// SetField updates one field of the active draft: the edit draft while
// editing, the create draft otherwise.
func (s *State) SetField(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draftEdit != nil {
		return s.draftEdit.Set(name, value)
	}
	return s.draftNew.Set(name, value)
}

// SetNewField updates one field of the create draft.
func (s *State) SetNewField(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draftNew.Set(name, value)
}

// SetEditField updates one field of the edit draft.
func (s *State) SetEditField(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draftEdit == nil {
		return ErrNotEditing
	}
	return s.draftEdit.Set(name, value)
}

// Update applies fn to the create draft atomically. Used for cross-field
// changes that must not interleave with other writers.
func (s *State) Update(fn func(d *Draft) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.draftNew)
}

// BeginEdit opens an edit draft for id, copying the editable fields from
// values. Fields absent from values start empty; extra values are ignored.
// Any previous edit draft is replaced.
func (s *State) BeginEdit(id string, values map[string]string) error {
	if id == "" {
		return fmt.Errorf("begin edit: empty id")
	}
	d := NewDraft(s.editFields...)
	d.id = id
	for _, f := range s.editFields {
		d.values[f] = values[f]
	}

	s.mu.Lock()
	s.draftEdit = d
	s.mu.Unlock()
	return nil
}

// CancelEdit discards the edit draft.
func (s *State) CancelEdit() {
	s.mu.Lock()
	s.draftEdit = nil
	s.mu.Unlock()
}

// ResetNew replaces the create draft with an empty one.
func (s *State) ResetNew() {
	s.mu.Lock()
	s.draftNew = NewDraft(s.createFields...)
	s.mu.Unlock()
}

// FinishEdit clears the edit draft only if it still belongs to id, so a
// newer edit opened meanwhile survives.
func (s *State) FinishEdit(id string) {
	s.mu.Lock()
	if s.draftEdit != nil && s.draftEdit.id == id {
		s.draftEdit = nil
	}
	s.mu.Unlock()
}
