// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm folds free text into a canonical form for matching.
//
// # Usage
//
// Every comparison between user input and catalogue text (event titles,
// period synonyms, suggestion labels) goes through [Fold] so that "Épée",
// "epee" and " EPEE " all compare equal.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases s, strips diacritics and trims surrounding whitespace.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
// 4. Trims leading/trailing whitespace.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return strings.TrimSpace(strings.ToLower(result))
}

// Words splits an already folded string into words on any rune that is
// neither a letter nor a digit.
func Words(folded string) []string {
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
