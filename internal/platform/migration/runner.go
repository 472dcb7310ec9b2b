// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

/*
Package migration runs SQL schema migrations at startup.

Migrations are applied with golang-migrate before the server starts
accepting traffic, so a running process always matches the schema its
queries expect.
*/
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunUp applies all pending up-migrations from the given directory.
func RunUp(logger *slog.Logger, databaseURL, migrationPath string) error {
	sourceURL := "file://" + migrationPath

	migrator, err := migrate.New(sourceURL, convertToPgx5DSN(databaseURL))
	if err != nil {
		return fmt.Errorf("migration: failed to initialize migrator: %w", err)
	}
	defer func() {
		sourceErr, dbErr := migrator.Close()
		if sourceErr != nil {
			logger.Warn("migration source close failed", "error", sourceErr)
		}
		if dbErr != nil {
			logger.Warn("migration database close failed", "error", dbErr)
		}
	}()

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migrations up to date")
			return nil
		}
		return fmt.Errorf("migration: failed to apply migrations: %w", err)
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		return fmt.Errorf("migration: failed to read version: %w", err)
	}

	logger.Info("migrations applied", "version", version, "dirty", dirty)
	return nil
}

// convertToPgx5DSN rewrites a postgres:// URL into the scheme the
// golang-migrate pgx/v5 driver expects.
func convertToPgx5DSN(databaseURL string) string {
	if strings.HasPrefix(databaseURL, "postgres://") {
		return "pgx5://" + strings.TrimPrefix(databaseURL, "postgres://")
	}
	if strings.HasPrefix(databaseURL, "postgresql://") {
		return "pgx5://" + strings.TrimPrefix(databaseURL, "postgresql://")
	}
	return databaseURL
}
