// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAllowsWithinBudget(t *testing.T) {
	limiter := NewMemory(time.Minute, 5)
	defer limiter.Close()

	ctx := context.Background()

	for i := 0; i < 5; i++ {
		allowed, _, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}
}

func TestMemoryDeniesOverBudget(t *testing.T) {
	limiter := NewMemory(time.Minute, 3)
	defer limiter.Close()

	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, _, err := limiter.Allow(ctx, "10.0.0.2")
		require.NoError(t, err)
		require.True(t, allowed)
	}

	allowed, retryAfter, err := limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 60, retryAfter)
}

func TestMemoryTracksKeysIndependently(t *testing.T) {
	limiter := NewMemory(time.Minute, 1)
	defer limiter.Close()

	ctx := context.Background()

	allowed, _, err := limiter.Allow(ctx, "10.0.0.3")
	require.NoError(t, err)
	require.True(t, allowed)

	// First key exhausted, second key untouched.
	allowed, _, _ = limiter.Allow(ctx, "10.0.0.3")
	assert.False(t, allowed)

	allowed, _, err = limiter.Allow(ctx, "10.0.0.4")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMemoryFallbackKeySharesBucket(t *testing.T) {
	limiter := NewMemory(time.Minute, 1)
	defer limiter.Close()

	ctx := context.Background()

	allowed, _, err := limiter.Allow(ctx, "")
	require.NoError(t, err)
	require.True(t, allowed)

	// Empty keys collapse into the shared fallback bucket.
	allowed, _, _ = limiter.Allow(ctx, FallbackKey)
	assert.False(t, allowed)
}
