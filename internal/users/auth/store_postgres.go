// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novaria/api/internal/platform/apperr"
	"github.com/novaria/api/internal/platform/dberr"
)

// # User Store

// PostgresUserRepository implements [UserRepository] backed by the
// users.accounts table.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `
	id, username, email, password_hash, role, is_verified,
	two_factor_enabled, COALESCE(two_factor_secret, ''),
	created_at, updated_at
`

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Role, &user.IsVerified,
		&user.TwoFactorEnabled, &user.TwoFactorSecret,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	row := repository.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users.accounts WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := repository.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users.accounts WHERE email = $1`, email)
	user, err := scanUser(row)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	row := repository.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users.accounts WHERE username = $1`, username)
	user, err := scanUser(row)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users.accounts (id, username, email, password_hash, role, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := repository.db.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Role, user.IsVerified,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	return dberr.Wrap(err, "User")
}

func (repository *PostgresUserRepository) UpdatePassword(ctx context.Context, userID, newHash string) error {
	query := `
		UPDATE users.accounts
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1
	`

	cmd, err := repository.db.Exec(ctx, query, userID, newHash)
	if err != nil {
		return dberr.Wrap(err, "User")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

func (repository *PostgresUserRepository) MarkVerified(ctx context.Context, userID string) error {
	query := `
		UPDATE users.accounts
		SET is_verified = TRUE, updated_at = NOW()
		WHERE id = $1
	`

	cmd, err := repository.db.Exec(ctx, query, userID)
	if err != nil {
		return dberr.Wrap(err, "User")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// # Session Store

// PostgresSessionRepository implements [SessionRepository] backed by the
// users.sessions table.
type PostgresSessionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSessionRepository(db *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func (repository *PostgresSessionRepository) Create(ctx context.Context, session *Session) error {
	query := `
		INSERT INTO users.sessions (id, user_id, token_hash, user_agent, ip_address, expires_at, is_revoked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, NOW())
		RETURNING created_at
	`

	err := repository.db.QueryRow(ctx, query,
		session.ID, session.UserID, session.TokenHash,
		session.UserAgent, session.IPAddress, session.ExpiresAt,
	).Scan(&session.CreatedAt)
	return dberr.Wrap(err, "Session")
}

// FindByTokenHash only returns sessions that are live: not revoked and not
// past their expiry.
func (repository *PostgresSessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error) {
	query := `
		SELECT id, user_id, token_hash, user_agent, ip_address, expires_at, is_revoked, created_at
		FROM users.sessions
		WHERE token_hash = $1
		  AND is_revoked = FALSE
		  AND expires_at > NOW()
	`

	session := &Session{}
	err := repository.db.QueryRow(ctx, query, tokenHash).Scan(
		&session.ID, &session.UserID, &session.TokenHash,
		&session.UserAgent, &session.IPAddress,
		&session.ExpiresAt, &session.IsRevoked, &session.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Session")
	}
	return session, nil
}

func (repository *PostgresSessionRepository) Revoke(ctx context.Context, sessionID string) error {
	cmd, err := repository.db.Exec(ctx, `UPDATE users.sessions SET is_revoked = TRUE WHERE id = $1`, sessionID)
	if err != nil {
		return dberr.Wrap(err, "Session")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Session")
	}
	return nil
}

func (repository *PostgresSessionRepository) RevokeAll(ctx context.Context, userID string) error {
	_, err := repository.db.Exec(ctx,
		`UPDATE users.sessions SET is_revoked = TRUE WHERE user_id = $1 AND is_revoked = FALSE`, userID)
	return dberr.Wrap(err, "Session")
}

func (repository *PostgresSessionRepository) RevokeOthers(ctx context.Context, userID, currentSessionID string) error {
	_, err := repository.db.Exec(ctx,
		`UPDATE users.sessions SET is_revoked = TRUE WHERE user_id = $1 AND id <> $2 AND is_revoked = FALSE`,
		userID, currentSessionID)
	return dberr.Wrap(err, "Session")
}

// DeleteExpired is intended for a periodic maintenance job; revoked rows are
// kept until expiry for audit purposes.
func (repository *PostgresSessionRepository) DeleteExpired(ctx context.Context) error {
	_, err := repository.db.Exec(ctx, `DELETE FROM users.sessions WHERE expires_at < NOW()`)
	return dberr.Wrap(err, "Session")
}
