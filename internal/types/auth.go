// Package types provides the request and response shapes exchanged with the resume-analyzer backend.
package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// LoginRequest represents the login form.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents the sign-up form.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResponse is the body returned by POST /auth/login.
type LoginResponse struct {
	Token string `json:"token"`
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the RegisterRequest using the validator.
func (r *RegisterRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// FormatValidationError renders validator errors as one "field: problem" line per field.
// Errors that did not come from the validator are returned unchanged.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	lines := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		lines = append(lines, fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), describeTag(fe)))
	}
	return strings.Join(lines, "\n")
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
