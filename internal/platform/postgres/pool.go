// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

/*
Package postgres manages the PostgreSQL connection pool.

The pool is created once at startup and injected into every store; no
package holds a global connection. Tuning values live here rather than in
config because they are properties of the workload, not the deployment.
*/
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// # Pool Tuning

const (
	maxConnections        = 25
	minConnections        = 5
	maxConnectionLifetime = 1 * time.Hour
	maxConnectionIdleTime = 15 * time.Minute
	healthCheckPeriod     = 1 * time.Minute
	connectTimeout        = 5 * time.Second

	// statementTimeout bounds any single query server-side so a runaway
	// query cannot hold a connection past the request deadline.
	statementTimeout = "30s"
)

// NewPool creates, configures, and verifies a pgx connection pool.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid database url: %w", err)
	}

	poolConfig.MaxConns = maxConnections
	poolConfig.MinConns = minConnections
	poolConfig.MaxConnLifetime = maxConnectionLifetime
	poolConfig.MaxConnIdleTime = maxConnectionIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, fmt.Sprintf("SET statement_timeout = '%s'", statementTimeout))
		return err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	// Fail fast at startup instead of on the first request.
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: failed to ping database: %w", err)
	}

	return pool, nil
}
