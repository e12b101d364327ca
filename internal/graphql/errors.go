package graphql

import (
	"fmt"
	"strings"
)

// RemoteError reports a rejected or failed GraphQL operation.
//
// Exactly one of the following describes the failure:
//   - Err: the request never produced a usable response (network, decode)
//   - Status outside 2xx: the server refused the HTTP request
//   - Messages: the server answered with a GraphQL errors array
type RemoteError struct {
	// Operation is the operation name of the failed request.
	Operation string

	// Status is the HTTP status code, zero when no response arrived.
	Status int

	// Messages are the human-readable messages of the errors array.
	Messages []string

	// Err is the underlying transport or decoding error.
	Err error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("graphql %s: %v", e.Operation, e.Err)
	case len(e.Messages) > 0:
		return fmt.Sprintf("graphql %s: %s", e.Operation, strings.Join(e.Messages, "; "))
	default:
		return fmt.Sprintf("graphql %s: HTTP %d", e.Operation, e.Status)
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Message returns the first human-readable message, suitable for a status line.
func (e *RemoteError) Message() string {
	if len(e.Messages) > 0 {
		return e.Messages[0]
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}
