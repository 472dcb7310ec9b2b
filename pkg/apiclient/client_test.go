// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListNovelsDecodesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/novels", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": [{"id": "n1", "title": "Dune", "rating": 4.5, "status": "completed", "authors": [], "genres": []}],
			"meta": {"page": 2, "limit": 20, "total_items": 41, "total_pages": 3}
		}`))
	}))
	defer server.Close()

	client := New(server.URL, nil)
	page, err := client.ListNovels(context.Background(), 2, 20)

	require.NoError(t, err)
	require.Len(t, page.Novels, 1)
	assert.Equal(t, "Dune", page.Novels[0].Title)
	assert.Equal(t, int64(41), page.Meta.TotalItems)
}

func TestGetRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"data": {"id": "n1", "title": "Dune"}}`))
	}))
	defer server.Close()

	client := New(server.URL, nil)
	novel, err := client.GetNovel(context.Background(), "n1")

	require.NoError(t, err)
	assert.Equal(t, "Dune", novel.Title)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"code": "NOT_FOUND", "message": "Novel not found"}}`))
	}))
	defer server.Close()

	client := New(server.URL, nil)
	_, err := client.GetNovel(context.Background(), "missing")

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, int32(1), calls.Load(), "4xx responses must not be retried")
}

func TestGetGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := New(server.URL, nil)
	_, err := client.GetNovel(context.Background(), "n1")

	require.Error(t, err)
	assert.Equal(t, int32(maxAttempts), calls.Load())
}

func TestWaitReadySucceedsOnceHealthy(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ready", r.URL.Path)
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"data": {"status": "ok"}}`))
	}))
	defer server.Close()

	client := New(server.URL, nil)
	err := client.WaitReady(context.Background(), 5, 10*time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestWaitReadyFailsWhenNeverHealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.URL, nil)
	err := client.WaitReady(context.Background(), 3, time.Millisecond)

	require.Error(t, err)
}

func TestWaitReadyHonorsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := New(server.URL, nil)
	err := client.WaitReady(ctx, 10, time.Second)

	assert.ErrorIs(t, err, context.Canceled)
}
