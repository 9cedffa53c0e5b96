// Package common defines sentinel errors, user-facing messages and small
// helpers shared by the LabKeeper layers. Callers should use errors.Is to
// match the sentinels.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound        = errors.New("not found")
	ErrDuplicateUsername = errors.New("duplicate username")

	// Service-level errors.
	ErrorStore            = errors.New("store error")
	ErrProtectedAccount   = errors.New("protected account")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrProtectedIdentity is returned when an update would rename or demote
	// the primordial administrator. It matches ErrProtectedAccount too.
	ErrProtectedIdentity = fmt.Errorf("%w: username and role are fixed", ErrProtectedAccount)

	// Boundary errors, always wrapped by *ValidationError.
	ErrorValidation = errors.New("validation error")
)

// ValidationError reports a form that cannot be submitted. Message is shown
// to the user as is; the form keeps its values for correction.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrorValidation) match.
func (e *ValidationError) Unwrap() error { return ErrorValidation }

// NewValidationError builds a *ValidationError for field with a user message.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
