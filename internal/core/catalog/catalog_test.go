// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/chronomap/internal/core/catalog"
	"github.com/taibuivan/chronomap/internal/core/chrono"
	"github.com/taibuivan/chronomap/internal/core/event"
	"github.com/taibuivan/chronomap/internal/core/search"
	"github.com/taibuivan/chronomap/internal/core/timeline"
	"github.com/taibuivan/chronomap/pkg/pointer"
)

// fixture returns a catalog over three events using the embedded catalogs.
func fixture(t *testing.T) *catalog.Catalog {
	t.Helper()

	blocks, err := timeline.DefaultBlocks()
	require.NoError(t, err)
	presets, err := search.DefaultPresets()
	require.NoError(t, err)

	return catalog.New(catalog.Options{
		Events: []event.Event{
			{ID: "alesia", Title: "Siège d'Alésia", Start: "0052-07-01 BC", StartYear: pointer.To(-52), EndYear: pointer.To(-52)},
			{ID: "dday", Title: "Débarquement", Summary: "Normandie", Start: "1944-06-06", StartYear: pointer.To(1944), EndYear: pointer.To(1944), Lat: 49.3, Lng: -0.6},
			{ID: "undated", Title: "Légende de Normandie"},
		},
		Blocks:  blocks,
		Presets: presets,
		Locale:  chrono.NewLocale("fr"),
	})
}

/*
TestCatalog_Filter combines date and text filters.
*/
func TestCatalog_Filter(t *testing.T) {
	cat := fixture(t)

	assert.Len(t, cat.Filter(catalog.Query{}), 3)
	assert.Len(t, cat.Filter(catalog.Query{Text: "normandie"}), 2)
	assert.Len(t, cat.Filter(catalog.Query{Year: pointer.To(1944), Text: "normandie"}), 1)
	assert.Len(t, cat.Filter(catalog.Query{From: pointer.To(-100), To: pointer.To(0)}), 1)

	// Range wins over a single year
	got := cat.Filter(catalog.Query{Year: pointer.To(1944), From: pointer.To(-60), To: pointer.To(-50)})
	require.Len(t, got, 1)
	assert.Equal(t, "alesia", got[0].ID)
}

/*
TestCatalog_FindEventAndTicks covers lookups by id and block index.
*/
func TestCatalog_FindEventAndTicks(t *testing.T) {
	cat := fixture(t)

	ev, ok := cat.FindEvent("dday")
	require.True(t, ok)
	assert.Equal(t, "Débarquement", ev.Title)

	_, ok = cat.FindEvent("missing")
	assert.False(t, ok)

	block, ok := cat.Timeline().FindBlockForYear(1944)
	require.True(t, ok)

	ticks, ok := cat.Ticks(block.Index)
	require.True(t, ok)
	assert.Equal(t, []int{1944}, ticks)

	_, ok = cat.Ticks(-1)
	assert.False(t, ok)
}

/*
TestCatalog_Empty tolerates a failed load.
*/
func TestCatalog_Empty(t *testing.T) {
	cat := catalog.New(catalog.Options{Notice: "unable to load events"})

	assert.Equal(t, 0, cat.Len())
	assert.Empty(t, cat.Filter(catalog.Query{Year: pointer.To(1944)}))
	assert.Equal(t, []int{timeline.DefaultYear}, cat.Timeline().Years())
	assert.Equal(t, "unable to load events", cat.Notice())
}
