// Package validators adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound request payloads.
package validators

import (
	"github.com/go-playground/validator/v10"

	"github.com/storyweave/backend/internal/apperrors"
)

// Validator wraps a shared validator.Validate instance.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates the echo validator used by the server.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate checks struct tags and reports failures as validation errors.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return apperrors.Validation("%s", err.Error())
	}
	return nil
}
