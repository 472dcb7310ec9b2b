// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	testCases := []struct {
		name          string
		url           string
		expectedPage  int
		expectedLimit int
	}{
		{"defaults", "/novels", 1, DefaultLimit},
		{"explicit values", "/novels?page=3&limit=50", 3, 50},
		{"limit clamped to max", "/novels?limit=5000", 1, MaxLimit},
		{"zero page falls back", "/novels?page=0", 1, DefaultLimit},
		{"negative limit falls back", "/novels?limit=-5", 1, DefaultLimit},
		{"garbage input falls back", "/novels?page=abc&limit=xyz", 1, DefaultLimit},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tc.url, nil)
			params := FromRequest(r)

			assert.Equal(t, tc.expectedPage, params.Page)
			assert.Equal(t, tc.expectedLimit, params.Limit)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, Params{Page: 3, Limit: 20}.Offset())
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Params{Page: 2, Limit: 20}, 45)

	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, int64(45), meta.TotalItems)
	assert.Equal(t, 3, meta.TotalPages)

	empty := NewMeta(Params{Page: 1, Limit: 20}, 0)
	assert.Equal(t, 0, empty.TotalPages)
}
