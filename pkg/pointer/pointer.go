// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

// Package pointer provides small generic helpers for pointer handling.
package pointer

// To returns a pointer to the given value.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback dereferences p, returning def when p is nil.
func Fallback[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
