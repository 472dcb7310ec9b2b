// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

/*
Package ratelimit provides pluggable request throttling.

Two implementations share the [Limiter] interface:

  - [Memory]: per-key token buckets held in process memory. Fast, zero
    dependencies, suitable for a single instance.
  - [Redis]: fixed-window counters in Redis, shared across instances.

Both are constructed explicitly and injected; there is no package-level
singleton. Keys are usually client IPs, with "unknown" as the fallback key
when no address can be determined, so unattributable traffic still shares
one bucket instead of bypassing the limiter.
*/
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/novaria/api/internal/platform/constants"
)

// FallbackKey buckets requests whose client cannot be identified.
const FallbackKey = "unknown"

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	// Allow reports whether the request is within budget. The returned
	// retryAfter is the suggested wait in seconds when denied.
	Allow(ctx context.Context, key string) (allowed bool, retryAfter int, err error)
}

// # In-Memory Limiter

type memoryClient struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// Memory is a per-key token bucket limiter backed by x/time/rate.
type Memory struct {
	mu      sync.Mutex
	clients map[string]*memoryClient

	window time.Duration
	max    int

	done chan struct{}
}

// NewMemory creates an in-memory limiter allowing max requests per window
// and starts a background goroutine that evicts idle keys.
func NewMemory(window time.Duration, max int) *Memory {
	m := &Memory{
		clients: make(map[string]*memoryClient),
		window:  window,
		max:     max,
		done:    make(chan struct{}),
	}

	go m.cleanupLoop()

	return m
}

// Allow implements [Limiter].
func (m *Memory) Allow(_ context.Context, key string) (bool, int, error) {
	if key == "" {
		key = FallbackKey
	}

	m.mu.Lock()
	client, ok := m.clients[key]
	if !ok {
		// Refill rate spreads the budget evenly across the window and the
		// burst equals the full budget, matching a fixed-window contract
		// closely enough for abuse control.
		limit := rate.Every(m.window / time.Duration(m.max))
		client = &memoryClient{bucket: rate.NewLimiter(limit, m.max)}
		m.clients[key] = client
	}
	client.lastSeen = time.Now()
	allowed := client.bucket.Allow()
	m.mu.Unlock()

	if allowed {
		return true, 0, nil
	}
	return false, int(m.window.Seconds()), nil
}

// Close stops the cleanup goroutine.
func (m *Memory) Close() {
	close(m.done)
}

// cleanupLoop periodically removes idle clients so the map cannot grow
// without bound under churned IPs.
func (m *Memory) cleanupLoop() {
	ticker := time.NewTicker(constants.RateLimitCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-constants.RateLimitClientTTL)
			m.mu.Lock()
			for key, client := range m.clients {
				if client.lastSeen.Before(cutoff) {
					delete(m.clients, key)
				}
			}
			m.mu.Unlock()
		}
	}
}
