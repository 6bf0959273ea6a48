// Package validation checks request payloads before transmission.
// Rules mirror the backend's expectations so the obvious mistakes fail
// locally with actionable messages instead of a round trip.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// LoginInput is the credential payload for the login form.
type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// CategoryInput is the payload for creating or updating a category.
type CategoryInput struct {
	Name           string `json:"name" validate:"required,min=2"`
	Description    string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Image          string `json:"image,omitempty" validate:"omitempty,url"`
	ParentCategory string `json:"parentCategory,omitempty"`
	IsActive       bool   `json:"isActive"`
}

// AuthorInput is the payload for creating or updating an author.
type AuthorInput struct {
	Name   string `json:"name" validate:"required,min=2"`
	Bio    string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Avatar string `json:"avatar,omitempty" validate:"omitempty,url"`
}

// BlogInput is the payload for creating or updating a blog post.
type BlogInput struct {
	Title      string `json:"title" validate:"required,min=2"`
	Content    string `json:"content" validate:"required"`
	MainImage  string `json:"mainImage" validate:"required,url"`
	CoverImage string `json:"coverImage" validate:"required,url"`
	Author     string `json:"author" validate:"required"`
}

// ErrValidation is returned when a payload fails schema checks.
var ErrValidation = errors.New("validation failed")

// Error carries the per-field failures of a rejected payload.
type Error struct {
	// Fields holds one message per failing field.
	Fields []string
}

// Error returns the joined field messages.
func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrValidation).
func (e *Error) Is(target error) bool {
	return target == ErrValidation
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Check validates in against its struct tags. It returns nil on success
// and a *Error with user-friendly field messages on failure.
func Check(in any) error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Non-validation error (e.g. passing a non-struct); surface as-is.
		return err
	}

	out := &Error{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, formatFieldError(fe))
	}
	return out
}

// formatFieldError creates a user-friendly message for a single field failure.
func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}
