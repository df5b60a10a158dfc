package upstream

import (
	"errors"
	"fmt"
)

// Error describes a failed institute API call. Message carries the server's
// own message when the response body had one.
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	default:
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// ServerMessage extracts the server-provided message from err, or fallback.
func ServerMessage(err error, fallback string) string {
	var upErr *Error
	if errors.As(err, &upErr) && upErr.Message != "" {
		return upErr.Message
	}
	return fallback
}
