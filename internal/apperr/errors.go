// Package apperr defines the sentinel errors shared across service boundaries.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the referenced note id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation means required input is missing or malformed.
	ErrValidation = errors.New("validation error")
	// ErrUnavailable means the record store could not be reached.
	ErrUnavailable = errors.New("store unavailable")
)

// Validation wraps a detail message into an ErrValidation.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
