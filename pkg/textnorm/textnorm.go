// Copyright (c) 2026 Libris. All rights reserved.

// Package textnorm folds Unicode strings into a canonical ASCII-ish form for
// comparison purposes.
//
// # Usage
//
// The catalog stores many French names ("Éric", "Première étagère"). Duplicate
// detection must treat "Éric" and "Eric" as the same author, so uniqueness
// checks run against the folded form, never the display form.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold converts an arbitrary Unicode string into a normalized comparison key.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
// 4. Trims surrounding whitespace and collapses internal runs to single spaces.
func Fold(s string) string {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	// 2. Lowercase
	result = strings.ToLower(result)

	// 3. Collapse whitespace
	result = strings.Join(strings.Fields(result), " ")

	return result
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
