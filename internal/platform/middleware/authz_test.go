// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/novaria/api/internal/platform/sec"
)

type stubVerifier struct {
	claims *sec.AuthClaims
}

func (s stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token == "valid-token" && s.claims != nil {
		return s.claims, nil
	}
	return nil, errors.New("token is invalid")
}

func memberClaims() *sec.AuthClaims {
	return &sec.AuthClaims{
		UserID:   "0195f5c8-0000-7000-8000-00000000000a",
		Username: "bookworm",
		Role:     string(sec.RoleMember),
	}
}

func passthroughHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthenticateAllowsAnonymousThrough(t *testing.T) {
	var called bool
	handler := Authenticate(stubVerifier{})(passthroughHandler(&called))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/novels", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	cases := map[string]string{
		"malformed header": "Token abc",
		"invalid token":    "Bearer forged-token",
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			var called bool
			handler := Authenticate(stubVerifier{claims: memberClaims()})(passthroughHandler(&called))

			request := httptest.NewRequest(http.MethodPost, "/novels", nil)
			request.Header.Set("Authorization", header)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, request)

			assert.False(t, called, "handler must not run")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireAuthBlocksAnonymous(t *testing.T) {
	var called bool
	handler := Authenticate(stubVerifier{claims: memberClaims()})(RequireAuth(passthroughHandler(&called)))

	// Anonymous passes Authenticate but must stop at RequireAuth.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reviews", nil))
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A valid token reaches the handler.
	request := httptest.NewRequest(http.MethodPost, "/reviews", nil)
	request.Header.Set("Authorization", "Bearer valid-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, request)
	assert.True(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireRoleEnforcesHierarchy(t *testing.T) {
	cases := []struct {
		name     string
		role     sec.UserRole
		required sec.UserRole
		want     int
	}{
		{"member blocked from moderator route", sec.RoleMember, sec.RoleModerator, http.StatusForbidden},
		{"moderator allowed", sec.RoleModerator, sec.RoleModerator, http.StatusNoContent},
		{"admin outranks moderator", sec.RoleAdmin, sec.RoleModerator, http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			claims := memberClaims()
			claims.Role = string(tc.role)

			var called bool
			handler := Authenticate(stubVerifier{claims: claims})(RequireRole(tc.required)(passthroughHandler(&called)))

			request := httptest.NewRequest(http.MethodDelete, "/novels/abc", nil)
			request.Header.Set("Authorization", "Bearer valid-token")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, request)

			assert.Equal(t, tc.want, rec.Code)
			assert.Equal(t, tc.want == http.StatusNoContent, called)
		})
	}
}
