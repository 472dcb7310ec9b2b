// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

package middleware

import (
	"net/http"
	"strings"

	"github.com/novaria/api/internal/platform/apperr"
	"github.com/novaria/api/internal/platform/ctxutil"
	"github.com/novaria/api/internal/platform/respond"
	"github.com/novaria/api/internal/platform/sec"
)

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	VerifyToken(token string) (*sec.AuthClaims, error)
}

// Authenticate resolves the Authorization header into an identity in context.
//
// Anonymous requests pass through untouched; routes that require a user are
// additionally wrapped with [RequireAuth] or [RequireRole].
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			header := request.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(writer, request)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized("malformed authorization header"))
				return
			}

			claims, err := verifier.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				// A malformed or expired token is rejected outright rather
				// than downgraded to anonymous.
				respond.Error(writer, request, apperr.Unauthorized("invalid or expired token"))
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that carry no authenticated identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole rejects authenticated users below the given role.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("authentication required"))
				return
			}
			if !sec.UserRole(claims.Role).AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("insufficient role"))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
