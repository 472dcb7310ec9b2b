// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

package auth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novaria/api/internal/platform/apperr"
	"github.com/novaria/api/internal/platform/sec"
)

// # Test Doubles

type mockUserRepository struct {
	usersByEmail    map[string]*User
	usersByUsername map[string]*User
	usersByID       map[string]*User
	created         *User
	passwordUpdates map[string]string
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		usersByEmail:    map[string]*User{},
		usersByUsername: map[string]*User{},
		usersByID:       map[string]*User{},
		passwordUpdates: map[string]string{},
	}
}

func (m *mockUserRepository) add(user *User) {
	m.usersByEmail[user.Email] = user
	m.usersByUsername[user.Username] = user
	m.usersByID[user.ID] = user
}

func (m *mockUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	if user, ok := m.usersByID[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (m *mockUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	if user, ok := m.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (m *mockUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	if user, ok := m.usersByUsername[username]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (m *mockUserRepository) Create(_ context.Context, user *User) error {
	m.created = user
	m.add(user)
	return nil
}

func (m *mockUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	m.passwordUpdates[userID] = newHash
	return nil
}

func (m *mockUserRepository) MarkVerified(_ context.Context, userID string) error {
	if user, ok := m.usersByID[userID]; ok {
		user.IsVerified = true
		return nil
	}
	return apperr.NotFound("User")
}

type mockSessionRepository struct {
	byTokenHash map[string]*Session
	revoked     []string
	revokedAll  []string
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{byTokenHash: map[string]*Session{}}
}

func (m *mockSessionRepository) Create(_ context.Context, session *Session) error {
	m.byTokenHash[session.TokenHash] = session
	return nil
}

func (m *mockSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*Session, error) {
	if session, ok := m.byTokenHash[tokenHash]; ok && !session.IsRevoked {
		return session, nil
	}
	return nil, apperr.NotFound("Session")
}

func (m *mockSessionRepository) Revoke(_ context.Context, sessionID string) error {
	m.revoked = append(m.revoked, sessionID)
	for _, session := range m.byTokenHash {
		if session.ID == sessionID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (m *mockSessionRepository) RevokeAll(_ context.Context, userID string) error {
	m.revokedAll = append(m.revokedAll, userID)
	for _, session := range m.byTokenHash {
		if session.UserID == userID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (m *mockSessionRepository) RevokeOthers(_ context.Context, userID, currentSessionID string) error {
	for _, session := range m.byTokenHash {
		if session.UserID == userID && session.ID != currentSessionID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (m *mockSessionRepository) DeleteExpired(context.Context) error { return nil }

type mockTokenRepository struct {
	tokens map[string]string
}

func newMockTokenRepository() *mockTokenRepository {
	return &mockTokenRepository{tokens: map[string]string{}}
}

func (m *mockTokenRepository) Set(_ context.Context, token, userID string, _ time.Duration) error {
	m.tokens[token] = userID
	return nil
}

func (m *mockTokenRepository) Get(_ context.Context, token string) (string, error) {
	if userID, ok := m.tokens[token]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Token")
}

func (m *mockTokenRepository) Delete(_ context.Context, token string) error {
	delete(m.tokens, token)
	return nil
}

type staticTokenProvider struct{}

func (staticTokenProvider) GenerateAccessToken(string, string, string, time.Duration) (string, error) {
	return "signed-access-token", nil
}

type serviceFixture struct {
	service  *Service
	users    *mockUserRepository
	sessions *mockSessionRepository
	reset    *mockTokenRepository
	verify   *mockTokenRepository
}

func newServiceFixture() *serviceFixture {
	users := newMockUserRepository()
	sessions := newMockSessionRepository()
	reset := newMockTokenRepository()
	verify := newMockTokenRepository()

	logger := slog.New(slog.DiscardHandler)
	return &serviceFixture{
		service:  NewService(users, sessions, reset, verify, staticTokenProvider{}, logger),
		users:    users,
		sessions: sessions,
		reset:    reset,
		verify:   verify,
	}
}

func existingUser(t *testing.T, password string) *User {
	t.Helper()

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	return &User{
		ID:           "0195f5c8-0000-7000-8000-00000000000a",
		Username:     "bookworm",
		Email:        "bookworm@example.com",
		PasswordHash: hash,
		Role:         sec.RoleMember,
	}
}

// # Tests

func TestRegisterCreatesMemberWithVerificationToken(t *testing.T) {
	fixture := newServiceFixture()

	user, err := fixture.service.Register(context.Background(), RegisterInput{
		Username: "bookworm",
		Email:    "bookworm@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, sec.RoleMember, user.Role)
	assert.False(t, user.IsVerified)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)
	assert.Len(t, fixture.verify.tokens, 1, "registration should leave a pending verification token")
}

func TestRegisterRejectsDuplicateEmailAndUsername(t *testing.T) {
	fixture := newServiceFixture()
	fixture.users.add(existingUser(t, "secret-password"))

	_, err := fixture.service.Register(context.Background(), RegisterInput{
		Username: "someone-else",
		Email:    "bookworm@example.com",
		Password: "another password",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	_, err = fixture.service.Register(context.Background(), RegisterInput{
		Username: "bookworm",
		Email:    "fresh@example.com",
		Password: "another password",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestLoginAcceptsEmailOrUsername(t *testing.T) {
	fixture := newServiceFixture()
	fixture.users.add(existingUser(t, "secret-password"))

	for _, login := range []string{"bookworm@example.com", "bookworm"} {
		session, err := fixture.service.Login(context.Background(), LoginInput{
			Login:    login,
			Password: "secret-password",
		})
		require.NoError(t, err, "login %q", login)
		assert.Equal(t, "signed-access-token", session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
	}
}

func TestLoginFailsWithGenericMessage(t *testing.T) {
	fixture := newServiceFixture()
	fixture.users.add(existingUser(t, "secret-password"))

	// Wrong password and unknown user must be indistinguishable.
	_, badPassword := fixture.service.Login(context.Background(), LoginInput{
		Login:    "bookworm",
		Password: "wrong",
	})
	_, unknownUser := fixture.service.Login(context.Background(), LoginInput{
		Login:    "nobody",
		Password: "wrong",
	})

	require.Error(t, badPassword)
	require.Error(t, unknownUser)
	assert.Equal(t, apperr.As(badPassword).Message, apperr.As(unknownUser).Message)
}

func TestRefreshSessionRotatesToken(t *testing.T) {
	fixture := newServiceFixture()
	fixture.users.add(existingUser(t, "secret-password"))

	login, err := fixture.service.Login(context.Background(), LoginInput{
		Login:    "bookworm",
		Password: "secret-password",
	})
	require.NoError(t, err)

	refreshed, err := fixture.service.RefreshSession(context.Background(), login.RefreshToken, "ua", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old token is dead after rotation: a replay must fail.
	_, err = fixture.service.RefreshSession(context.Background(), login.RefreshToken, "ua", "127.0.0.1")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

func TestLogoutIsIdempotent(t *testing.T) {
	fixture := newServiceFixture()

	assert.NoError(t, fixture.service.Logout(context.Background(), "never-issued-token"))
}

func TestRequestPasswordResetHidesUnknownEmail(t *testing.T) {
	fixture := newServiceFixture()

	token, err := fixture.service.RequestPasswordReset(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, fixture.reset.tokens)
}

func TestResetPasswordRevokesAllSessions(t *testing.T) {
	fixture := newServiceFixture()
	user := existingUser(t, "secret-password")
	fixture.users.add(user)

	_, err := fixture.service.Login(context.Background(), LoginInput{Login: "bookworm", Password: "secret-password"})
	require.NoError(t, err)

	token, err := fixture.service.RequestPasswordReset(context.Background(), user.Email)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, fixture.service.ResetPassword(context.Background(), token, "brand new password"))

	assert.Contains(t, fixture.sessions.revokedAll, user.ID)
	assert.NotContains(t, fixture.reset.tokens, token, "used token must be burned")
	assert.NotEmpty(t, fixture.users.passwordUpdates[user.ID])
}

func TestVerifyEmailMarksAccount(t *testing.T) {
	fixture := newServiceFixture()
	user := existingUser(t, "secret-password")
	fixture.users.add(user)
	fixture.verify.tokens["pending-token"] = user.ID

	require.NoError(t, fixture.service.VerifyEmail(context.Background(), "pending-token"))

	assert.True(t, user.IsVerified)
	assert.Empty(t, fixture.verify.tokens)
}
