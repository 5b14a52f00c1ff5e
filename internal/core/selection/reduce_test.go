// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package selection_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/chronomap/internal/core/catalog"
	"github.com/taibuivan/chronomap/internal/core/chrono"
	"github.com/taibuivan/chronomap/internal/core/event"
	"github.com/taibuivan/chronomap/internal/core/search"
	"github.com/taibuivan/chronomap/internal/core/selection"
	"github.com/taibuivan/chronomap/internal/core/timeline"
	"github.com/taibuivan/chronomap/pkg/pointer"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newCatalog normalizes rows and builds a catalog over the embedded blocks and presets.
func newCatalog(t *testing.T, rows ...event.Row) *catalog.Catalog {
	t.Helper()

	blocks, err := timeline.DefaultBlocks()
	require.NoError(t, err)
	presets, err := search.DefaultPresets()
	require.NoError(t, err)

	events := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, event.Normalize(row, discardLogger()))
	}

	return catalog.New(catalog.Options{
		Events:  events,
		Blocks:  blocks,
		Presets: presets,
		Locale:  chrono.NewLocale("fr"),
	})
}

func row(id, title, summary, start, end string, lat, lng float64) event.Row {
	return event.Row{
		ID:        id,
		Title:     title,
		Summary:   pointer.To(summary),
		StartDate: pointer.To(start),
		EndDate:   pointer.To(end),
		Lat:       pointer.To(lat),
		Lng:       pointer.To(lng),
	}
}

// worldWars holds two events in the "Guerres mondiales" block.
func worldWars(t *testing.T) *catalog.Catalog {
	return newCatalog(t,
		row("verdun", "Bataille de Verdun", "Grande Guerre", "1916-02-21", "1916-12-18", 49.2, 5.4),
		row("dday", "Débarquement", "Plages de Normandie", "1944-06-06", "1944-06-06", 49.3, -0.6),
	)
}

func ids(events []event.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

/*
TestReduce_EndToEnd walks the slider across two events from different eras.
*/
func TestReduce_EndToEnd(t *testing.T) {
	cat := newCatalog(t,
		row("A", "A", "", "1944-06-06", "1944-06-06", 49.3, -0.6),
		row("B", "B", "", "0053-01-01 BC", "0053-01-01 BC", 41.9, 12.5),
	)

	state := selection.Initial(cat)
	require.NotNil(t, state.Year)
	assert.Equal(t, 1944, *state.Year)
	assert.Equal(t, []string{"A"}, ids(selection.Render(state, cat).Events))

	state = selection.Reduce(state, selection.SelectYear(-53), cat)
	view := selection.Render(state, cat)
	assert.Equal(t, []string{"B"}, ids(view.Events))
	assert.Equal(t, "53 av. J.-C.", view.Label)
	require.NotNil(t, view.Block)
	assert.True(t, view.Block.Contains(-53))

	state = selection.Reduce(state, selection.SelectYear(1000), cat)
	view = selection.Render(state, cat)
	assert.Empty(t, view.Events)
	assert.True(t, view.Empty)
	assert.Empty(t, view.Points.Features)
}

/*
TestReduce_SelectBlock cascades to the latest tick, or clears the year.
*/
func TestReduce_SelectBlock(t *testing.T) {
	cat := worldWars(t)
	wars, ok := cat.Timeline().FindBlockForYear(1916)
	require.True(t, ok)

	state := selection.Reduce(selection.State{}, selection.SelectBlock(wars.Index), cat)
	require.NotNil(t, state.Year)
	assert.Equal(t, 1944, *state.Year)

	view := selection.Render(state, cat)
	assert.Equal(t, []int{1916, 1944}, view.Ticks)
	assert.Equal(t, []string{"dday"}, ids(view.Events))

	medieval, ok := cat.Timeline().FindBlockForYear(1200)
	require.True(t, ok)

	state = selection.Reduce(state, selection.SelectBlock(medieval.Index), cat)
	assert.Nil(t, state.Year)

	view = selection.Render(state, cat)
	assert.Equal(t, chrono.Placeholder, view.Label)
	assert.Empty(t, view.Ticks)
	assert.NotNil(t, view.Ticks)
	assert.True(t, view.Empty)

	// Unknown block index leaves the position unchanged
	assert.Equal(t, state, selection.Reduce(state, selection.SelectBlock(99), cat))
}

/*
TestReduce_RangeSearch enters range mode and leaves it on slider moves.
*/
func TestReduce_RangeSearch(t *testing.T) {
	cat := worldWars(t)
	state := selection.Reduce(selection.State{}, selection.SelectYear(1916), cat)

	state = selection.Reduce(state, selection.Search("Seconde Guerre mondiale"), cat)
	assert.Equal(t, selection.SearchRange, state.Search.Kind)
	assert.Equal(t, 1939, state.Search.Start)
	assert.Equal(t, 1945, state.Search.End)
	assert.Equal(t, "Seconde Guerre mondiale", state.Search.Input)

	// The year is not auto-selected while the range is active
	require.NotNil(t, state.Year)
	assert.Equal(t, 1916, *state.Year)

	view := selection.Render(state, cat)
	assert.Equal(t, "1939–1945", view.Label)
	assert.Equal(t, []string{"dday"}, ids(view.Events))

	state = selection.Reduce(state, selection.SelectYear(1916), cat)
	assert.Equal(t, selection.SearchNone, state.Search.Kind)
	assert.Equal(t, []string{"verdun"}, ids(selection.Render(state, cat).Events))
}

/*
TestReduce_TextSearch narrows the active year and survives slider moves.
*/
func TestReduce_TextSearch(t *testing.T) {
	cat := worldWars(t)
	state := selection.Reduce(selection.State{}, selection.SelectYear(1944), cat)

	state = selection.Reduce(state, selection.Search("NORMANDIE"), cat)
	assert.Equal(t, selection.SearchText, state.Search.Kind)
	assert.Equal(t, "normandie", state.Search.Text)
	assert.Equal(t, []string{"dday"}, ids(selection.Render(state, cat).Events))

	state = selection.Reduce(state, selection.SelectYear(1916), cat)
	assert.Equal(t, selection.SearchText, state.Search.Kind)
	assert.Empty(t, selection.Render(state, cat).Events)

	state = selection.Reduce(state, selection.ClearSearch(), cat)
	assert.Equal(t, []string{"verdun"}, ids(selection.Render(state, cat).Events))

	// A blank query clears the search
	state = selection.Reduce(state, selection.Search("normandie"), cat)
	state = selection.Reduce(state, selection.Search("   "), cat)
	assert.Equal(t, selection.SearchNone, state.Search.Kind)
}

/*
TestReduce_PickSuggestion echoes the label and applies the preset range.
*/
func TestReduce_PickSuggestion(t *testing.T) {
	cat := worldWars(t)

	state := selection.Reduce(selection.State{}, selection.PickSuggestion("Première Guerre mondiale"), cat)
	assert.Equal(t, selection.SearchRange, state.Search.Kind)
	assert.Equal(t, "Première Guerre mondiale", state.Search.Input)
	assert.Equal(t, []string{"verdun"}, ids(selection.Render(state, cat).Events))

	// Without a previous year the block's latest tick is not selected either
	assert.Nil(t, state.Year)
	require.NotNil(t, state.Block)

	unchanged := selection.Reduce(state, selection.PickSuggestion("Inconnue"), cat)
	assert.Equal(t, state, unchanged)
}

/*
TestReduce_PickEvent pins a single event and focuses it.
*/
func TestReduce_PickEvent(t *testing.T) {
	cat := worldWars(t)
	state := selection.Reduce(selection.State{}, selection.Search("normandie"), cat)

	state = selection.Reduce(state, selection.PickEvent("verdun"), cat)
	assert.Equal(t, selection.SearchNone, state.Search.Kind)
	assert.Equal(t, "verdun", state.Pinned)
	require.NotNil(t, state.Year)
	assert.Equal(t, 1916, *state.Year)

	view := selection.Render(state, cat)
	assert.Equal(t, []string{"verdun"}, ids(view.Events))
	require.NotNil(t, view.Focus)
	assert.Equal(t, [2]float64{5.4, 49.2}, view.Focus.Camera.Center)

	// Focus lasts one transition, the pin lasts until the next move
	state = selection.Reduce(state, selection.ClearSearch(), cat)
	assert.Empty(t, state.Focus)
	assert.Empty(t, state.Pinned)
}

/*
TestReduce_ClickPoint selects the point's year and focuses it.
*/
func TestReduce_ClickPoint(t *testing.T) {
	cat := worldWars(t)
	state := selection.Reduce(selection.State{}, selection.SelectYear(1944), cat)

	state = selection.Reduce(state, selection.ClickPoint("verdun"), cat)
	assert.Equal(t, "verdun", state.Focus)
	assert.Equal(t, 1916, *state.Year)

	view := selection.Render(state, cat)
	assert.Equal(t, []string{"verdun"}, ids(view.Events))
	require.NotNil(t, view.Focus)
	assert.Equal(t, selection.FocusZoom, view.Focus.Camera.Zoom)

	assert.Equal(t, state.Year, selection.Reduce(state, selection.ClickPoint("missing"), cat).Year)
}

/*
TestReduce_SelectYearIdempotent renders the same view twice.
*/
func TestReduce_SelectYearIdempotent(t *testing.T) {
	cat := worldWars(t)

	once := selection.Reduce(selection.State{}, selection.SelectYear(1944), cat)
	twice := selection.Reduce(once, selection.SelectYear(1944), cat)

	assert.Equal(t, once, twice)
	assert.Equal(t, selection.Render(once, cat), selection.Render(twice, cat))
}

/*
TestInitial_EmptyCatalog tolerates a failed load.
*/
func TestInitial_EmptyCatalog(t *testing.T) {
	cat := newCatalog(t)

	state := selection.Initial(cat)
	assert.Equal(t, selection.State{}, state)

	view := selection.Render(state, cat)
	assert.True(t, view.Empty)
	assert.Equal(t, chrono.Placeholder, view.Label)
	assert.NotNil(t, view.Events)
}
