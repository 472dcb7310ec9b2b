// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

/*
Package dberr translates driver-level database errors into domain errors.

Stores call [Wrap] on every failed query so the service layer only ever sees
[apperr.AppError] values and never needs to import pgx.
*/
package dberr

import (
	"errors"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/novaria/api/internal/platform/apperr"
)

// Postgres error codes we translate explicitly.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Wrap converts a database error into an [apperr.AppError].
//
// Parameters:
//   - err: the raw error returned by pgx.
//   - resource: human-readable name of the entity being queried (e.g. "Novel").
//
// Returns:
//   - nil when err is nil, otherwise a mapped AppError.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case codeUniqueViolation:
			return apperr.Conflict(resource + " already exists")
		case codeForeignKeyViolation:
			return apperr.ValidationError(resource + " references a record that does not exist")
		}
	}

	// A refused or dropped connection means the database itself is down,
	// which callers should see as a 503 rather than a generic 500.
	var netError net.Error
	if errors.As(err, &netError) {
		return apperr.ServiceUnavailable("database unavailable")
	}

	return apperr.Internal(err)
}
