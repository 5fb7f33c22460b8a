// Package common defines shared constants and sentinel errors used across
// the QDrive server and CLI. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrConflict   = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")

	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation error")
)

// ValidationError reports malformed or missing input. Msg is safe to show
// to API callers.
type ValidationError struct {
	Msg string
}

// NewValidationError returns a ValidationError carrying msg.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string { return e.Msg }

// Is makes errors.Is(err, ErrValidation) true for any ValidationError.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
