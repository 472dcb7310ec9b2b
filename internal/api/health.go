// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/novaria/api/internal/platform/constants"
	"github.com/novaria/api/internal/platform/respond"
)

const dependencyPingTimeout = 2 * time.Second

// HealthHandler answers liveness and readiness probes.
type HealthHandler struct {
	db    *pgxpool.Pool
	cache *redis.Client
}

func NewHealthHandler(db *pgxpool.Pool, cache *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// RegisterRoutes mounts the probe endpoints at the site root.
func (handler *HealthHandler) RegisterRoutes(router chi.Router) {
	router.Get("/health", handler.health)
	router.Get("/ready", handler.ready)
}

// health reports process liveness only; no dependency is touched.
func (handler *HealthHandler) health(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{
		constants.FieldStatus: "ok",
		"version":             constants.AppVersion,
	})
}

// ready reports whether the server can actually serve traffic: both the
// database and the cache must answer a ping within the probe deadline.
func (handler *HealthHandler) ready(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), dependencyPingTimeout)
	defer cancel()

	checks := map[string]string{
		"postgres": "ok",
		"redis":    "ok",
	}
	healthy := true

	if err := handler.db.Ping(ctx); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	}
	if err := handler.cache.Ping(ctx).Err(); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	}

	status := "ready"
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	respond.JSON(writer, code, map[string]any{
		constants.FieldStatus: status,
		constants.FieldChecks: checks,
	})
}
