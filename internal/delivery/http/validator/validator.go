// Package validator adapts go-playground validation to echo.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// EchoValidator implements echo.Validator.
type EchoValidator struct {
	validate *validator.Validate
}

// New creates the request validator.
func New() *EchoValidator {
	return &EchoValidator{validate: validator.New()}
}

// Validate checks struct tags on a bound request.
func (v *EchoValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
