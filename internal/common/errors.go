// Package common defines shared constants and sentinel errors used across
// the client and server layers. Callers should match these values with
// errors.Is.
package common

import "errors"

var (
	// repository-level errors
	ErrorNotFound = errors.New("not found")

	// service-level errors
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("permission denied")

	// validation errors carry a user-facing message via ValidationError
	ErrorValidation = errors.New("validation error")

	// reservation-specific errors
	ErrorConflict          = errors.New("time slot conflict")
	ErrorInvalidTransition = errors.New("invalid status transition")

	// auth errors
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError wraps ErrorValidation with a concrete, user-facing reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrorValidation
}

// NewValidationError builds a ValidationError with the given reason.
func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}
