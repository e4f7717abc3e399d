package assets

import (
	"errors"
	"fmt"
)

var (
	// ErrRead is returned when a configuration document cannot be read from disk.
	ErrRead = errors.New("read config document")
	// ErrParse is returned when a configuration document does not match its schema.
	ErrParse = errors.New("parse config document")
)

// MissingFieldError reports a required key that is absent or null.
type MissingFieldError struct {
	Field string
	Line  int
}

func (e *MissingFieldError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: missing field %q", e.Line, e.Field)
	}
	return fmt.Sprintf("missing field %q", e.Field)
}
