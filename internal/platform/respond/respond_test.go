// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novaria/api/internal/platform/apperr"
)

func decodeErrorEnvelope(t *testing.T, rec *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()

	var envelope ErrorEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope
}

func TestErrorWritesAppErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/novels/missing", nil)

	Error(rec, request, apperr.NotFound("Novel"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	envelope := decodeErrorEnvelope(t, rec)
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
	assert.Contains(t, envelope.Error.Message, "Novel")
}

func TestErrorMasksUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/novels", nil)

	Error(rec, request, errors.New("pq: connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	envelope := decodeErrorEnvelope(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", envelope.Error.Code)
	assert.NotContains(t, envelope.Error.Message, "pq:", "driver details must not leak")
}

func TestErrorIncludesValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/novels", nil)

	Error(rec, request, apperr.ValidationError("validation failed",
		apperr.FieldError{Field: "title", Message: "is required"},
	))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeErrorEnvelope(t, rec)
	require.Len(t, envelope.Error.Details, 1)
	assert.Equal(t, "title", envelope.Error.Details[0].Field)
}
