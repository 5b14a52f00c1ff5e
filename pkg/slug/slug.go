// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII identifiers from arbitrary Unicode strings.
//
// # Usage
//
// Slugs are used as default identifiers for drafted events
// (e.g., "bataille-de-verdun").
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/taibuivan/chronomap/pkg/textnorm"
)

var (
	// nonAlphanumeric matches any sequence of non-alphanumeric, non-hyphen characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
// 1. Folds with [textnorm.Fold] (lowercase, accents removed).
// 2. Replaces non-alphanumeric characters with hyphens.
// 3. Collapses multiple hyphens and trims leading/trailing hyphens.
func From(s string) string {
	result := textnorm.Fold(s)

	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, result)

	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	return result
}
