package form

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrUnknownField is returned when a field name is not part of the draft.
	ErrUnknownField = errors.New("unknown field")

	// ErrNotEditing is returned by edit operations while no edit is open.
	ErrNotEditing = errors.New("no edit in progress")
)

// Draft is a client-only, not yet persisted copy of an entity's editable
// fields. The field set is fixed when the draft is created; values are
// strings exactly as the user typed them.
//
// Create drafts have an empty ID. Edit drafts carry the id of the entity
// being edited.
type Draft struct {
	id     string
	fields []string
	values map[string]string
}

// NewDraft returns an empty draft over the given fields.
func NewDraft(fields ...string) *Draft {
	d := &Draft{
		fields: slices.Clone(fields),
		values: make(map[string]string, len(fields)),
	}
	for _, f := range fields {
		d.values[f] = ""
	}
	return d
}

// ID returns the id of the entity being edited, or "" for create drafts.
func (d *Draft) ID() string {
	return d.id
}

// Fields returns the field names in form order.
func (d *Draft) Fields() []string {
	return slices.Clone(d.fields)
}

// Has reports whether name is one of the draft's fields.
func (d *Draft) Has(name string) bool {
	_, ok := d.values[name]
	return ok
}

// Get returns the value of a field, "" for unknown fields.
func (d *Draft) Get(name string) string {
	return d.values[name]
}

// Set updates one field, leaving the others unchanged.
func (d *Draft) Set(name, value string) error {
	if !d.Has(name) {
		return fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	d.values[name] = value
	return nil
}

// Values returns a copy of every field value.
func (d *Draft) Values() map[string]string {
	out := make(map[string]string, len(d.values))
	for k, v := range d.values {
		out[k] = v
	}
	return out
}

// Missing returns the required fields whose value is empty or whitespace,
// in the order given.
func (d *Draft) Missing(required []string) []string {
	var missing []string
	for _, name := range required {
		if strings.TrimSpace(d.values[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// IsEmpty reports whether every field is empty.
func (d *Draft) IsEmpty() bool {
	for _, v := range d.values {
		if v != "" {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	return &Draft{
		id:     d.id,
		fields: slices.Clone(d.fields),
		values: d.Values(),
	}
}

// Equal reports whether two drafts have the same id, fields and values.
func (d *Draft) Equal(o *Draft) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.id != o.id || !slices.Equal(d.fields, o.fields) {
		return false
	}
	for k, v := range d.values {
		if o.values[k] != v {
			return false
		}
	}
	return true
}
