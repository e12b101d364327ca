package dto

import (
	"encoding/json"

	"github.com/handiism/music-catalog/internal/model"
)

// Date is the GraphQL Date scalar. Layouts model.ParseDate understands are
// normalized to YYYY-MM-DD; any other string is kept as the server sent it.
type Date struct {
	Value string
}

// UnmarshalJSON parses the server's date string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if s == "" {
		d.Value = ""
		return nil
	}

	d.Value = s
	if t, err := model.ParseDate(s); err == nil {
		d.Value = t.Format(model.DateLayout)
	}
	return nil
}

// MarshalJSON renders the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Value)
}
