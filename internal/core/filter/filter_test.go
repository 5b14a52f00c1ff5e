// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/chronomap/internal/core/event"
	"github.com/taibuivan/chronomap/internal/core/filter"
	"github.com/taibuivan/chronomap/pkg/pointer"
)

func dated(id string, start, end int) event.Event {
	return event.Event{ID: id, StartYear: pointer.To(start), EndYear: pointer.To(end)}
}

func ids(events []event.Event) []string {
	result := make([]string, 0, len(events))
	for _, e := range events {
		result = append(result, e.ID)
	}
	return result
}

/*
TestByYear_BoundariesInclusive checks both ends of a 1939–1945 span.
*/
func TestByYear_BoundariesInclusive(t *testing.T) {
	events := []event.Event{dated("ww2", 1939, 1945), {ID: "undated"}}

	for year := 1939; year <= 1945; year++ {
		assert.Equal(t, []string{"ww2"}, ids(filter.ByYear(events, year)), year)
	}

	assert.Empty(t, filter.ByYear(events, 1938))
	assert.Empty(t, filter.ByYear(events, 1946))
}

/*
TestByYear_NilEndYear treats a missing end as the start year.
*/
func TestByYear_NilEndYear(t *testing.T) {
	events := []event.Event{{ID: "a", StartYear: pointer.To(1944)}}

	assert.Len(t, filter.ByYear(events, 1944), 1)
	assert.Empty(t, filter.ByYear(events, 1945))
}

/*
TestByYearRange_Overlap covers disjoint, touching and nested intervals.
*/
func TestByYearRange_Overlap(t *testing.T) {
	ev := []event.Event{dated("e", 1914, 1918)}

	tests := []struct {
		name       string
		start, end int
		included   bool
	}{
		{"disjoint_before", 1900, 1913, false},
		{"disjoint_after", 1919, 1939, false},
		{"touch_start", 1900, 1914, true},
		{"touch_end", 1918, 1930, true},
		{"range_inside_event", 1915, 1916, true},
		{"event_inside_range", 1900, 1950, true},
		{"reversed_bounds", 1950, 1900, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filter.ByYearRange(ev, tt.start, tt.end)
			assert.Equal(t, tt.included, len(got) == 1)
		})
	}
}

/*
TestByText is case and diacritic insensitive over title and summary.
*/
func TestByText(t *testing.T) {
	events := []event.Event{
		{ID: "a", Title: "Débarquement de Normandie", Summary: "Opération Overlord"},
		{ID: "b", Title: "Bataille d'Alésia", Summary: "Victoire de César"},
	}

	assert.Equal(t, []string{"a"}, ids(filter.ByText(events, filter.NormalizeQuery("DEBARQUEMENT"))))
	assert.Equal(t, []string{"b"}, ids(filter.ByText(events, filter.NormalizeQuery("césar"))))
	assert.Equal(t, []string{"a"}, ids(filter.ByText(events, filter.NormalizeQuery("overlord"))))
	assert.Equal(t, []string{"a", "b"}, ids(filter.ByText(events, "")))
	assert.Empty(t, filter.ByText(events, "verdun"))
}
