// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/novaria/api/internal/platform/constants"
)

// Redis is a fixed-window limiter backed by Redis counters, shared across
// all API instances pointing at the same Redis.
type Redis struct {
	client *redis.Client
	prefix string
	window time.Duration
	max    int
}

// NewRedis creates a Redis-backed limiter allowing max requests per window.
// The name scopes the counter keys so independent limiters do not collide.
func NewRedis(client *redis.Client, name string, window time.Duration, max int) *Redis {
	return &Redis{
		client: client,
		prefix: constants.RedisPrefixRateLimit + name + ":",
		window: window,
		max:    max,
	}
}

// Allow implements [Limiter].
//
// INCR followed by a conditional EXPIRE gives an atomic-enough fixed window:
// the first increment in a window sets the TTL, later increments reuse it.
func (r *Redis) Allow(ctx context.Context, key string) (bool, int, error) {
	if key == "" {
		key = FallbackKey
	}
	redisKey := r.prefix + key

	count, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("ratelimit: redis incr: %w", err)
	}

	if count == 1 {
		if err := r.client.Expire(ctx, redisKey, r.window).Err(); err != nil {
			return false, 0, fmt.Errorf("ratelimit: redis expire: %w", err)
		}
	}

	if count > int64(r.max) {
		ttl, err := r.client.TTL(ctx, redisKey).Result()
		if err != nil || ttl < 0 {
			ttl = r.window
		}
		return false, int(ttl.Seconds()), nil
	}

	return true, 0, nil
}
