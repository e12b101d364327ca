package crud

import (
	"errors"
	"fmt"
	"strings"

	"github.com/handiism/music-catalog/internal/graphql"
	"github.com/handiism/music-catalog/internal/model"
)

// Op names a submission operation.
type Op string

const (
	OpAdd    Op = "add"
	OpSave   Op = "save"
	OpRemove Op = "remove"
)

// ValidationMessage is the user-facing text of every validation failure.
const ValidationMessage = "Fill all fields!"

var (
	// ErrSubmissionInFlight is returned when a controller is already
	// running a submission.
	ErrSubmissionInFlight = errors.New("a submission is already in progress")

	// ErrAlbumNotAvailable is returned when selecting an album that is not
	// by the selected artist.
	ErrAlbumNotAvailable = errors.New("album not available for the selected artist")
)

// ValidationError reports required fields left empty. The draft is
// untouched and nothing was sent.
type ValidationError struct {
	Kind    model.Kind
	Op      Op
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s: %s (missing %s)", e.Kind, e.Op, ValidationMessage, strings.Join(e.Missing, ", "))
}

// RemoteError reports a failed create, update or delete mutation.
type RemoteError struct {
	Kind model.Kind
	Op   Op
	ID   string
	Err  error
}

func (e *RemoteError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %s: %v", e.Kind, e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Message returns the server's message when there is one.
func (e *RemoteError) Message() string {
	var gqlErr *graphql.RemoteError
	if errors.As(e.Err, &gqlErr) {
		return gqlErr.Message()
	}
	return e.Err.Error()
}

// RefetchError reports a failed refetch of a collection. The previously
// loaded collection is still in place.
type RefetchError struct {
	Kind model.Kind
	Err  error
}

func (e *RefetchError) Error() string {
	return fmt.Sprintf("refetch %s: %v", e.Kind.Plural(), e.Err)
}

func (e *RefetchError) Unwrap() error {
	return e.Err
}

// UserMessage renders err for a status line.
func UserMessage(err error) string {
	var (
		verr *ValidationError
		rerr *RemoteError
		ferr *RefetchError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return ValidationMessage
	case errors.As(err, &rerr):
		return fmt.Sprintf("Could not %s %s: %s", rerr.Op, rerr.Kind, rerr.Message())
	case errors.As(err, &ferr):
		return fmt.Sprintf("Reloading %s failed: %v", ferr.Kind.Plural(), ferr.Err)
	}
	return err.Error()
}
