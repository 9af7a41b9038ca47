package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoteNotFound indicates no note with the given id is loaded.
	ErrNoteNotFound = errors.New("note not found")

	// ErrMissingID indicates a remote operation was attempted on a note
	// that has no backend id yet.
	ErrMissingID = errors.New("note has no id")

	// ErrStaleLoad indicates a load's results were discarded because a newer
	// load or a note mutation reached the store first.
	ErrStaleLoad = errors.New("load superseded by a newer load or change")
)

// RequestError is returned when the notes API answers with a non-2xx status.
type RequestError struct {
	Status int
	Reason string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Reason)
}

// NetworkError wraps a transport failure (dial, timeout, reset).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ValidationError reports invalid user input, caught before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
