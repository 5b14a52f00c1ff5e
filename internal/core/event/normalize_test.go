// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package event_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/chronomap/internal/core/event"
	"github.com/taibuivan/chronomap/pkg/pointer"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestNormalize_Years checks year derivation for common era and BC tokens.
*/
func TestNormalize_Years(t *testing.T) {
	ev := event.Normalize(event.Row{
		ID:        "caesar",
		Title:     "Guerre des Gaules",
		StartDate: pointer.To("0058-01-01 BC"),
		EndDate:   pointer.To("0050-01-01 BC"),
		Lat:       pointer.To(46.5),
		Lng:       pointer.To(2.5),
	}, discardLogger())

	require.NotNil(t, ev.StartYear)
	require.NotNil(t, ev.EndYear)
	assert.Equal(t, -58, *ev.StartYear)
	assert.Equal(t, -50, *ev.EndYear)
	assert.False(t, ev.DatesSwapped)
	assert.Equal(t, "", ev.Summary)
	assert.Equal(t, 46.5, ev.Lat)
}

/*
TestNormalize_SwapsInvertedPairs verifies dates and years move together.
*/
func TestNormalize_SwapsInvertedPairs(t *testing.T) {
	ev := event.Normalize(event.Row{
		ID:        "inverted",
		StartDate: pointer.To("1945-05-08"),
		EndDate:   pointer.To("1939-09-01"),
	}, discardLogger())

	assert.True(t, ev.DatesSwapped)
	assert.Equal(t, "1939-09-01", ev.Start)
	assert.Equal(t, "1945-05-08", ev.End)
	assert.Equal(t, 1939, *ev.StartYear)
	assert.Equal(t, 1945, *ev.EndYear)
}

/*
TestNormalize_DefaultsEndYear covers a missing end date.
*/
func TestNormalize_DefaultsEndYear(t *testing.T) {
	ev := event.Normalize(event.Row{
		ID:        "single_day",
		StartDate: pointer.To("1944-06-06"),
	}, discardLogger())

	require.NotNil(t, ev.EndYear)
	assert.Equal(t, 1944, *ev.EndYear)
	assert.Equal(t, "", ev.End)
}

/*
TestNormalize_Undated covers empty and malformed start tokens.
*/
func TestNormalize_Undated(t *testing.T) {
	tests := []struct {
		name  string
		start *string
	}{
		{"null", nil},
		{"malformed", pointer.To("vers 1200")},
		{"out_of_range", pointer.To("12000-01-01")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := event.Normalize(event.Row{ID: tt.name, StartDate: tt.start, EndDate: pointer.To("1950-01-01")}, discardLogger())

			assert.False(t, ev.IsDated())
			assert.Nil(t, ev.StartYear)
			assert.Nil(t, ev.EndYear)

			_, _, ok := ev.Span()
			assert.False(t, ok)
		})
	}
}

/*
TestNormalize_InvariantHolds checks startYear <= endYear across a mixed batch.
*/
func TestNormalize_InvariantHolds(t *testing.T) {
	rows := []event.Row{
		{ID: "a", StartDate: pointer.To("0331-10-01 BC"), EndDate: pointer.To("0323-06-10 BC")},
		{ID: "b", StartDate: pointer.To("0010-01-01"), EndDate: pointer.To("0010-01-01 BC")},
		{ID: "c", StartDate: pointer.To("1918-10-02"), EndDate: pointer.To("1914-07-28")},
		{ID: "d", StartDate: pointer.To("1914-07-28"), EndDate: pointer.To("garbage")},
	}

	for _, row := range rows {
		ev := event.Normalize(row, discardLogger())
		require.True(t, ev.IsDated(), row.ID)
		assert.LessOrEqual(t, *ev.StartYear, *ev.EndYear, row.ID)
	}
}
