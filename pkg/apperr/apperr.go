package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services.
var (
	// ErrUnknownCurrency signals a currency code outside USD/EUR/TRY.
	ErrUnknownCurrency = errors.New("unknown currency code")
	// ErrNotFound wraps storage lookups that came back empty.
	ErrNotFound = errors.New("record not found")
)

// ValidationError rejects user input with a specific, user-facing message.
// The operation is aborted and nothing is written.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StateError rejects an operation invoked against an aggregate in the wrong
// state, e.g. selecting a variant before a product is chosen.
type StateError struct {
	Msg string
}

func (e *StateError) Error() string { return e.Msg }

// State builds a StateError from a format string.
func State(format string, args ...interface{}) error {
	return &StateError{Msg: fmt.Sprintf(format, args...)}
}

// IsState reports whether err is (or wraps) a StateError.
func IsState(err error) bool {
	var se *StateError
	return errors.As(err, &se)
}
