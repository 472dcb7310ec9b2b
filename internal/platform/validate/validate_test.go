// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novaria/api/internal/platform/apperr"
)

func TestValidatorCollectsAllViolations(t *testing.T) {
	v := New()
	v.Required("title", "   ")
	v.Range("rating", 7.5, 0, 5)
	v.Email("email", "not-an-address")
	v.OneOf("status", "paused", "ongoing", "completed")

	require.True(t, v.HasErrors())

	appError := apperr.As(v.Err())
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Len(t, appError.Details, 4, "every failed check is reported at once")
}

func TestValidatorCleanInputYieldsNil(t *testing.T) {
	v := New()
	v.Required("title", "The Long Earth")
	v.MaxLen("title", "The Long Earth", 300)
	v.Range("rating", 4.5, 0, 5)
	v.Email("email", "reader@example.com")
	v.UUID("id", "0195f5c8-0000-7000-8000-000000000001")
	v.Slug("slug", "the-long-earth")
	v.OneOf("status", "ongoing", "ongoing", "completed")

	assert.False(t, v.HasErrors())
	assert.NoError(t, v.Err())
}

func TestOptionalChecksSkipEmptyValues(t *testing.T) {
	// Format checks only apply when a value is present; Required is the
	// sole emptiness check.
	v := New()
	v.Email("email", "")
	v.UUID("id", "")
	v.Slug("slug", "")
	v.OneOf("status", "")
	v.MinLen("password", "", 8)

	assert.False(t, v.HasErrors())
}

func TestFieldChecksTable(t *testing.T) {
	cases := []struct {
		name  string
		check func(v *Validator)
		valid bool
	}{
		{"min length too short", func(v *Validator) { v.MinLen("password", "hunter", 8) }, false},
		{"min length exact", func(v *Validator) { v.MinLen("password", "hunter42", 8) }, true},
		{"max length exceeded", func(v *Validator) { v.MaxLen("title", "abcdef", 5) }, false},
		{"uuid malformed", func(v *Validator) { v.UUID("id", "not-a-uuid") }, false},
		{"slug uppercase", func(v *Validator) { v.Slug("slug", "Not-A-Slug") }, false},
		{"range lower bound", func(v *Validator) { v.Range("rating", 0, 0, 5) }, true},
		{"range below", func(v *Validator) { v.Range("rating", -0.5, 0, 5) }, false},
		{"custom failure", func(v *Validator) { v.Custom("target", false, "exactly one target required") }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := New()
			tc.check(v)
			assert.Equal(t, !tc.valid, v.HasErrors())
		})
	}
}
