// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chrono turns raw date tokens into signed years and display strings.

Tokens come straight from the event store and have one of two shapes:

  - "YYYY-MM-DD" for dates of the common era.
  - "YYYY-MM-DD BC" for dates before the common era.

A BC year Y is represented as the integer -Y. There is no year zero
adjustment: "0001-01-01 BC" is -1 and "0001-01-01" is 1.
*/
package chrono

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// # Errors

var (
	// ErrNoDate is returned for an empty token. Callers treat it as "undated".
	ErrNoDate = errors.New("chrono: empty date token")

	// ErrMalformedDate is returned when the token does not start with four digits.
	ErrMalformedDate = errors.New("chrono: malformed date token")

	// ErrYearOutOfRange is returned for years above 9999 or for negative years
	// written without the BC marker.
	ErrYearOutOfRange = errors.New("chrono: year out of range")
)

const (
	// bcMarker flags a token as before the common era.
	bcMarker = "BC"

	// Placeholder is shown in place of a missing date.
	Placeholder = "—"
)

// # Parsing

// ParseYear extracts the signed year from a date token.
//
// The first four characters are read as a zero-padded year ("0331" → 331),
// and the result is negated when the token carries the BC marker.
func ParseYear(token string) (int, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, ErrNoDate
	}

	if strings.HasPrefix(token, "-") {
		return 0, fmt.Errorf("%w: %q", ErrYearOutOfRange, token)
	}

	if len(token) < 4 || !allDigits(token[:4]) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedDate, token)
	}

	// A fifth digit means a year beyond 9999 that would otherwise be truncated.
	if len(token) > 4 && isDigit(token[4]) {
		return 0, fmt.Errorf("%w: %q", ErrYearOutOfRange, token)
	}

	year, err := strconv.Atoi(token[:4])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedDate, token)
	}

	if IsBC(token) {
		return -year, nil
	}
	return year, nil
}

// IsBC reports whether the token carries the BC marker.
func IsBC(token string) bool {
	return strings.Contains(token, bcMarker)
}

// # Display

// Locale selects the era suffix used by the display helpers.
type Locale struct {
	tag    language.Tag
	suffix string
}

var supported = []language.Tag{language.French, language.English}

var suffixes = map[language.Tag]string{
	language.French:  "av. J.-C.",
	language.English: "BCE",
}

var matcher = language.NewMatcher(supported)

// NewLocale matches an IETF tag ("fr", "en-GB", ...) against the supported
// display languages. Unknown or malformed tags fall back to French.
func NewLocale(tag string) Locale {
	parsed, err := language.Parse(tag)
	if err != nil {
		parsed = language.French
	}

	_, index, _ := matcher.Match(parsed)
	best := supported[index]

	return Locale{tag: best, suffix: suffixes[best]}
}

// Tag returns the matched display language.
func (l Locale) Tag() language.Tag {
	return l.tag
}

// FormatYear renders a signed year for display ("1944", "53 av. J.-C.").
func (l Locale) FormatYear(year int) string {
	if year < 0 {
		return strconv.Itoa(-year) + " " + l.eraSuffix()
	}
	return strconv.Itoa(year)
}

// FormatDate renders a date token as DD/MM/YYYY, followed by the era suffix
// for BC tokens. Empty tokens render as [Placeholder]; tokens that are not
// in YYYY-MM-DD shape are returned as-is.
func (l Locale) FormatDate(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return Placeholder
	}

	datePart, _, _ := strings.Cut(token, " ")
	parts := strings.Split(datePart, "-")
	if len(parts) != 3 {
		return token
	}

	rendered := parts[2] + "/" + parts[1] + "/" + parts[0]
	if IsBC(token) {
		rendered += " " + l.eraSuffix()
	}
	return rendered
}

// FormatYearRange renders an inclusive range as "start–end".
func (l Locale) FormatYearRange(start, end int) string {
	return l.FormatYear(start) + "–" + l.FormatYear(end)
}

func (l Locale) eraSuffix() string {
	if l.suffix == "" {
		return suffixes[language.French]
	}
	return l.suffix
}

// # Helpers

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
