package tracker

import (
	"errors"
	"time"
)

var (
	// ErrNoItemSelected indicates an operation that needs a selected weapon.
	ErrNoItemSelected = errors.New("no weapon selected")

	// ErrFocusRequired indicates a skill-pair pick before a focus type is chosen.
	ErrFocusRequired = errors.New("focus type required")

	// ErrRecordNotFound indicates a row number with no persisted record.
	ErrRecordNotFound = errors.New("record not found")

	// ErrUnknownFocus indicates a focus id that is not in the catalog.
	ErrUnknownFocus = errors.New("unknown focus type")

	// ErrCorruptEntry indicates a write to a weapon whose stored entry
	// could not be read.
	ErrCorruptEntry = errors.New("stored entry unreadable")

	// ErrUnknownMode indicates a mode with no tracker in the workspace.
	ErrUnknownMode = errors.New("unknown mode")
)

// InputError is a rejected user action. The tracker flashes Message on
// Control until ClearAfter elapses; nothing was written.
type InputError struct {
	Control    string
	Message    string
	ClearAfter time.Duration
	Err        error
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is.
func (e *InputError) Unwrap() error {
	return e.Err
}

// IsInputError reports whether err is a user input rejection.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
