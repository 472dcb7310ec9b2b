// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

// Package requestutil provides helpers for extracting and decoding request data.
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/novaria/api/internal/platform/apperr"
	"github.com/novaria/api/internal/platform/ctxutil"
	"github.com/novaria/api/internal/platform/sec"
	"github.com/novaria/api/internal/platform/validate"
)

// maxBodyBytes bounds request bodies to 1 MiB.
const maxBodyBytes = 1 << 20

// DecodeJSON reads and decodes the request body into dst.
//
// Unknown fields are rejected so clients notice typos instead of silently
// sending ignored data.
func DecodeJSON(request *http.Request, dst any) error {
	request.Body = http.MaxBytesReader(nil, request.Body, maxBodyBytes)

	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// ID extracts and validates a UUID path parameter.
func ID(request *http.Request, name string) (string, error) {
	raw := chi.URLParam(request, name)
	if raw == "" {
		return "", apperr.ValidationError("missing path parameter: " + name)
	}
	if _, err := uuid.Parse(raw); err != nil {
		return "", apperr.ValidationError(name + " must be a valid UUID")
	}
	return raw, nil
}

// Param extracts a raw path parameter without validation.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Claims returns the authenticated user's claims, or nil for anonymous requests.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// RequiredClaims returns the authenticated user's claims or an authorization error.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("authentication required")
	}
	return claims, nil
}

// RequiredUserID returns the authenticated user's ID or an authorization error.
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
