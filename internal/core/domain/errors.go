package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInternal      = errors.New("internal error")
	ErrMisconfigured = errors.New("misconfigured")
	ErrUserNotFound  = errors.New("user not found")
	ErrUserExists    = errors.New("user already exists")
)

// MissingFieldError reports a required input field that was absent or empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing param: %s", e.Field)
}

// InvalidFieldError reports a field that was present but malformed. When the
// field names a collaborator it is wrapped together with ErrMisconfigured.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid param: %s", e.Field)
}

// Misconfigured builds the error returned when a collaborator was not wired.
func Misconfigured(collaborator string) error {
	return fmt.Errorf("%w: %w", ErrMisconfigured, &InvalidFieldError{Field: collaborator})
}
