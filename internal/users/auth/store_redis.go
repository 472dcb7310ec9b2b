// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/novaria/api/internal/platform/apperr"
	"github.com/novaria/api/internal/platform/constants"
)

// # Volatile Token Store

// RedisTokenRepository implements [TokenRepository] with TTL-backed keys.
// The same implementation serves password reset and email verification
// tokens; only the key prefix differs.
type RedisTokenRepository struct {
	client *redis.Client
	prefix string
}

// NewResetTokenRepository creates the store for password reset tokens.
func NewResetTokenRepository(client *redis.Client) *RedisTokenRepository {
	return &RedisTokenRepository{client: client, prefix: constants.RedisPrefixResetToken}
}

// NewVerificationTokenRepository creates the store for email verification tokens.
func NewVerificationTokenRepository(client *redis.Client) *RedisTokenRepository {
	return &RedisTokenRepository{client: client, prefix: constants.RedisPrefixVerifyToken}
}

func (repository *RedisTokenRepository) key(token string) string {
	return repository.prefix + token
}

func (repository *RedisTokenRepository) Set(ctx context.Context, token string, userID string, ttl time.Duration) error {
	return repository.client.Set(ctx, repository.key(token), userID, ttl).Err()
}

func (repository *RedisTokenRepository) Get(ctx context.Context, token string) (string, error) {
	userID, err := repository.client.Get(ctx, repository.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperr.NotFound("Token")
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (repository *RedisTokenRepository) Delete(ctx context.Context, token string) error {
	return repository.client.Del(ctx, repository.key(token)).Err()
}
