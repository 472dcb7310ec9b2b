// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

/*
Package validate implements a lightweight, chainable input validation helper.

It collects per-field violations while walking a request payload and converts
them into a single [apperr.AppError] with structured details, so handlers can
return every problem at once instead of failing on the first.

Usage:

	v := validate.New()
	v.Required("title", input.Title)
	v.MaxLen("title", input.Title, 255)
	if v.HasErrors() {
	    return v.Err()
	}
*/
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/novaria/api/internal/platform/apperr"
)

// ErrInvalidJSON is returned when a request body cannot be decoded at all.
var ErrInvalidJSON = apperr.ValidationError("invalid JSON body")

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Validator accumulates field errors across a sequence of checks.
type Validator struct {
	violations []apperr.FieldError
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{}
}

// add records a violation for a field.
func (v *Validator) add(field, message string) {
	v.violations = append(v.violations, apperr.FieldError{Field: field, Message: message})
}

// Required checks that a string value is non-empty after trimming.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "is required")
	}
	return v
}

// MaxLen checks that a string does not exceed max characters.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if len(value) > max {
		v.add(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return v
}

// MinLen checks that a non-empty string has at least min characters.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if value != "" && len(value) < min {
		v.add(field, fmt.Sprintf("must be at least %d characters", min))
	}
	return v
}

// Range checks that a numeric value lies within [min, max].
func (v *Validator) Range(field string, value, min, max float64) *Validator {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("must be between %g and %g", min, max))
	}
	return v
}

// Email checks that a non-empty string parses as an RFC 5322 address.
func (v *Validator) Email(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, "must be a valid email address")
	}
	return v
}

// Slug checks that a non-empty string is lowercase-kebab-case.
func (v *Validator) Slug(field, value string) *Validator {
	if value != "" && !slugPattern.MatchString(value) {
		v.add(field, "must be a lowercase slug (letters, digits, hyphens)")
	}
	return v
}

// UUID checks that a non-empty string parses as a UUID.
func (v *Validator) UUID(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := uuid.Parse(value); err != nil {
		v.add(field, "must be a valid UUID")
	}
	return v
}

// OneOf checks that a non-empty string matches one of the allowed values.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	if value == "" {
		return v
	}
	for _, candidate := range allowed {
		if value == candidate {
			return v
		}
	}
	v.add(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom records a violation when ok is false.
func (v *Validator) Custom(field string, ok bool, message string) *Validator {
	if !ok {
		v.add(field, message)
	}
	return v
}

// HasErrors reports whether any check has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.violations) > 0
}

// Err converts the accumulated violations into an AppError, or nil when clean.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperr.ValidationError("validation failed", v.violations...)
}
