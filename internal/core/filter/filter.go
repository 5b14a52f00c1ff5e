// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package filter selects events by year, year range or free text.
//
// Every function is pure: it never mutates its input and returns a new slice.
package filter

import (
	"strings"

	"github.com/taibuivan/chronomap/internal/core/event"
	"github.com/taibuivan/chronomap/pkg/slice"
	"github.com/taibuivan/chronomap/pkg/textnorm"
)

// NormalizeQuery folds a user query the same way catalogue text is folded.
func NormalizeQuery(query string) string {
	return textnorm.Fold(query)
}

// ByYear keeps dated events whose span contains year (both ends inclusive).
func ByYear(events []event.Event, year int) []event.Event {
	return keep(events, func(e event.Event) bool {
		start, end, ok := e.Span()
		return ok && start <= year && year <= end
	})
}

// ByYearRange keeps dated events whose span overlaps [start, end].
func ByYearRange(events []event.Event, start, end int) []event.Event {
	if end < start {
		start, end = end, start
	}

	return keep(events, func(e event.Event) bool {
		eventStart, eventEnd, ok := e.Span()
		return ok && !(eventEnd < start || eventStart > end)
	})
}

// ByText keeps events whose folded title and summary contain the already
// normalized query. An empty query keeps everything.
func ByText(events []event.Event, normalizedQuery string) []event.Event {
	if normalizedQuery == "" {
		return keep(events, func(event.Event) bool { return true })
	}

	return keep(events, func(e event.Event) bool {
		return strings.Contains(textnorm.Fold(e.Title+" "+e.Summary), normalizedQuery)
	})
}

// keep wraps [slice.Filter] so callers always receive a non-nil slice.
func keep(events []event.Event, predicate func(event.Event) bool) []event.Event {
	result := slice.Filter(events, predicate)
	if result == nil {
		return []event.Event{}
	}
	return result
}
