// Package validation implements input format checks on top of
// go-playground/validator.
package validation

import (
	"github.com/go-playground/validator/v10"
)

// EmailChecker reports whether a string is a syntactically valid email.
type EmailChecker struct {
	v *validator.Validate
}

// NewEmailChecker returns an EmailChecker with its own validator instance.
func NewEmailChecker() *EmailChecker {
	return &EmailChecker{v: validator.New()}
}

// IsValid satisfies ports.EmailFormatChecker.
func (ec *EmailChecker) IsValid(email string) bool {
	return ec.v.Var(email, "required,email") == nil
}
