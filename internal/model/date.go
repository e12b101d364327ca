package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of the GraphQL Date scalar.
const DateLayout = "2006-01-02"

// dateLayouts are tried in order when parsing dates from the server or from
// user input.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02 Jan 2006",
}

// ParseDate parses a date in any accepted layout.
//
// Example:
//
//	t, _ := ParseDate("1999-01-01T00:00:00Z")
//	t.Format(DateLayout) // "1999-01-01"
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

// NormalizeDate rewrites any accepted layout as YYYY-MM-DD.
// Unparseable input is returned unchanged so the server can reject it.
func NormalizeDate(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format(DateLayout)
}
