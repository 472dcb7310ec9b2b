// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

/*
Package textnorm normalizes user-facing text for search and URLs.

Fold strips diacritics so "Émile Zola" matches a search for "emile zola";
Slug additionally reduces the result to a URL-safe kebab-case token.
*/
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldChain decomposes characters (NFD), drops combining marks, and
// recomposes (NFC), which removes accents without losing base letters.
var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases s and strips diacritical marks.
func Fold(s string) string {
	folded, _, err := transform.String(foldChain, s)
	if err != nil {
		// Transform only fails on invalid UTF-8; fall back to the input.
		folded = s
	}
	return strings.ToLower(folded)
}

// Slug converts s into a lowercase, hyphen-separated URL token.
func Slug(s string) string {
	folded := Fold(s)

	var builder strings.Builder
	builder.Grow(len(folded))

	previousHyphen := true
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			builder.WriteRune(r)
			previousHyphen = false
		default:
			if !previousHyphen {
				builder.WriteByte('-')
				previousHyphen = true
			}
		}
	}

	return strings.TrimSuffix(builder.String(), "-")
}
