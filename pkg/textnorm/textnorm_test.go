// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain ascii", "War and Peace", "war and peace"},
		{"accents stripped", "Émile Zola", "emile zola"},
		{"mixed diacritics", "Crónica de una Muerte", "cronica de una muerte"},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Fold(tc.input))
		})
	}
}

func TestSlug(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"spaces to hyphens", "The Great Gatsby", "the-great-gatsby"},
		{"punctuation collapsed", "Hello, World! Again", "hello-world-again"},
		{"accents removed", "Señor de los Anillos", "senor-de-los-anillos"},
		{"leading and trailing junk", "  --Novel--  ", "novel"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Slug(tc.input))
		})
	}
}
