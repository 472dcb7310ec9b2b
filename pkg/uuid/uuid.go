// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

// Package uuid generates time-ordered unique identifiers.
package uuid

import "github.com/google/uuid"

// NewV7 returns a new UUIDv7 string.
//
// V7 identifiers are time-sortable, which keeps B-tree indexes on primary
// keys append-mostly. Generation only fails if the system entropy source is
// broken, in which case the process cannot do anything useful anyway.
func NewV7() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}
