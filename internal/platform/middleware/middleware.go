// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

/*
Package middleware contains the HTTP middleware chain of the API server.

Ordering matters and is fixed by the server:

 1. RequestID       — correlation ID for the whole request
 2. StructuredLogger — request-scoped slog logger in context, access log
 3. Timeout          — global request deadline (chi)
 4. Throttle         — rate limiting
 5. PanicRecovery    — converts panics into 500 responses
 6. Authenticate     — optional JWT identity
 7. CORS             — origin policy

Each middleware only depends on context helpers, never on domain packages.
*/
package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/novaria/api/internal/platform/apperr"
	"github.com/novaria/api/internal/platform/constants"
	"github.com/novaria/api/internal/platform/ctxutil"
	"github.com/novaria/api/internal/platform/ratelimit"
	"github.com/novaria/api/internal/platform/respond"
	"github.com/novaria/api/pkg/uuid"
)

// # Request Correlation

// RequestID assigns a UUIDv7 correlation ID to every request.
//
// An inbound X-Request-ID from a trusted proxy is preserved so traces can
// span systems; otherwise a fresh ID is generated.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requestID := request.Header.Get(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewV7()
		}

		ctx := ctxutil.WithRequestID(request.Context(), requestID)
		writer.Header().Set(constants.HeaderXRequestID, requestID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// # Structured Logging

// statusRecorder captures the response status code for access logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// StructuredLogger injects a request-scoped logger into the context and
// emits one access-log line per request.
func StructuredLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			start := time.Now()

			requestLogger := base.With(
				"request_id", ctxutil.GetRequestID(request.Context()),
				"method", request.Method,
				"path", request.URL.Path,
			)
			ctx := ctxutil.WithLogger(request.Context(), requestLogger)

			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
			next.ServeHTTP(recorder, request.WithContext(ctx))

			requestLogger.Info("request completed",
				"status", recorder.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_ip", ClientIP(request),
			)
		})
	}
}

// # Rate Limiting

// Throttle enforces a [ratelimit.Limiter] keyed by client IP.
func Throttle(limiter ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			allowed, retryAfter, err := limiter.Allow(request.Context(), ClientIP(request))
			if err != nil {
				// A broken limiter backend must not take down the API,
				// so limiter errors fail open. They are still logged.
				ctxutil.GetLogger(request.Context()).Error("rate limiter unavailable", "error", err)
				next.ServeHTTP(writer, request)
				return
			}

			if !allowed {
				writer.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
				respond.Error(writer, request, apperr.RateLimited(retryAfter))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// ClientIP extracts the originating client address, preferring proxy headers.
func ClientIP(request *http.Request) string {
	if realIP := request.Header.Get(constants.HeaderXRealIP); realIP != "" {
		return strings.TrimSpace(realIP)
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		// First hop in the chain is the original client.
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return ratelimit.FallbackKey
	}
	return host
}

// # Panic Recovery

// PanicRecovery converts handler panics into 500 responses so a single bad
// request cannot crash the process.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				ctxutil.GetLogger(request.Context()).Error("panic recovered",
					"panic", fmt.Sprintf("%v", recovered),
					"stack", string(debug.Stack()),
				)
				respond.Error(writer, request, apperr.Internal(fmt.Errorf("panic: %v", recovered)))
			}
		}()

		next.ServeHTTP(writer, request)
	})
}

// # CORS

// CORS applies the origin policy: the public domain, its subdomains, any
// explicitly configured extra origins, and localhost in development.
func CORS(publicDomain string, extraOrigins []string, development bool) func(http.Handler) http.Handler {
	extras := make(map[string]struct{}, len(extraOrigins))
	for _, origin := range extraOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			extras[origin] = struct{}{}
		}
	}

	originAllowed := func(origin string) bool {
		if origin == "" {
			return false
		}
		if _, ok := extras[origin]; ok {
			return true
		}
		trimmed := strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://")
		if trimmed == publicDomain || strings.HasSuffix(trimmed, "."+publicDomain) {
			return true
		}
		if development && (strings.HasPrefix(origin, "http://localhost") || strings.HasPrefix(origin, "http://127.0.0.1")) {
			return true
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if originAllowed(origin) {
				writer.Header().Set("Access-Control-Allow-Origin", origin)
				writer.Header().Set("Access-Control-Allow-Credentials", "true")
				writer.Header().Set("Vary", "Origin")
			}

			if request.Method == http.MethodOptions {
				writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
				writer.Header().Set("Access-Control-Max-Age", "300")
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
