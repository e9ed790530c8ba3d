// Package common defines shared constants and sentinel errors used across
// the service and repository layers. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Registration errors.
	ErrorDuplicateEmail = errors.New("email already registered")

	// Auth errors (invalid, malformed or absent token).
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token expired")
	ErrMissingCredential = errors.New("missing credential")

	// Payment submission errors.
	ErrDuplicateTransaction = errors.New("duplicate transaction id")
)

// ValidationError reports the first rejected field of a submission. Field
// and Reason are safe to echo back to the client.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
