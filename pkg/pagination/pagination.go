// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

// Package pagination implements offset-based pagination for list endpoints.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the page size when the client does not specify one.
	DefaultLimit = 20

	// MaxLimit caps the page size a client may request.
	MaxLimit = 100
)

// Params captures the requested page.
type Params struct {
	Page  int
	Limit int
}

// Meta describes a returned page for the response envelope.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// FromRequest parses ?page= and ?limit= query parameters, clamping both
// into their valid ranges. Invalid values fall back to defaults.
func FromRequest(request *http.Request) Params {
	params := Params{Page: 1, Limit: DefaultLimit}

	if raw := request.URL.Query().Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			params.Page = page
		}
	}

	if raw := request.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			params.Limit = limit
			if params.Limit > MaxLimit {
				params.Limit = MaxLimit
			}
		}
	}

	return params
}

// Offset converts the page number into a SQL OFFSET.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// NewMeta builds response metadata from the request params and a total count.
func NewMeta(params Params, totalItems int64) Meta {
	totalPages := int((totalItems + int64(params.Limit) - 1) / int64(params.Limit))
	return Meta{
		Page:       params.Page,
		Limit:      params.Limit,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
