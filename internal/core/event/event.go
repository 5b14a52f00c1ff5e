// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package event defines the historical event entity and its loading pipeline.

Events are read once from the configured store (PostgreSQL or a PostgREST
endpoint), normalized into [Event] values and then treated as read-only for
the rest of the process lifetime.

Core Responsibility:

  - Storage: [Repository] implementations return raw [Row] values.
  - Normalization: [Normalize] derives signed years and repairs inverted ranges.
  - Presentation: [ToFeatureCollection] builds the map point layer payload.
*/
package event

// # Domain Entities

// Event is a normalized historical event.
//
// # Invariants
//
//   - StartYear and EndYear are either both nil (undated) or both set.
//   - When set, *StartYear <= *EndYear.
type Event struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`

	// Start and End are the original date tokens ("YYYY-MM-DD" or "YYYY-MM-DD BC").
	Start string `json:"start"`
	End   string `json:"end"`

	StartYear *int `json:"start_year"`
	EndYear   *int `json:"end_year"`

	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`

	YouTube string `json:"youtube,omitempty"`

	// DatesSwapped flags records whose start and end were inverted in the store.
	DatesSwapped bool `json:"dates_swapped,omitempty"`
}

// IsDated reports whether the event takes part in year-based filtering.
func (e Event) IsDated() bool {
	return e.StartYear != nil
}

// Span returns the inclusive year interval of a dated event.
// The second return value is false for undated events.
func (e Event) Span() (start, end int, ok bool) {
	if e.StartYear == nil {
		return 0, 0, false
	}

	start = *e.StartYear
	end = start
	if e.EndYear != nil {
		end = *e.EndYear
	}
	return start, end, true
}

// Row is a raw record as returned by the event store.
type Row struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	StartDate  *string  `json:"start_date"`
	EndDate    *string  `json:"end_date"`
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
	Summary    *string  `json:"summary"`
	YouTubeURL *string  `json:"youtube_url"`
}

// # Field Identifiers

const (
	FieldID        = "id"
	FieldTitle     = "title"
	FieldStart     = "start"
	FieldEnd       = "end"
	FieldSummary   = "summary"
	FieldYouTube   = "youtube"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
)
