// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog holds the event set loaded at startup together with the
structures derived from it (timeline model, preset resolver, display locale).

Architecture:

  - Immutability: A [Catalog] is built once and never mutated.
  - Empty-safe: A failed load produces a catalog with zero events and a
    notice message; every derived structure tolerates the empty set.
*/
package catalog

import (
	"github.com/taibuivan/chronomap/internal/core/chrono"
	"github.com/taibuivan/chronomap/internal/core/event"
	"github.com/taibuivan/chronomap/internal/core/filter"
	"github.com/taibuivan/chronomap/internal/core/search"
	"github.com/taibuivan/chronomap/internal/core/timeline"
)

// Catalog is the read-only, process-wide event set and its derivations.
type Catalog struct {
	events   []event.Event
	byID     map[string]int
	timeline *timeline.Model
	resolver *search.Resolver
	locale   chrono.Locale
	notice   string
}

// Options groups the inputs of [New].
type Options struct {
	Events  []event.Event
	Blocks  []timeline.Block
	Presets []search.Preset
	Locale  chrono.Locale

	// Notice is shown in place of the event list, typically a load failure.
	Notice string
}

// New builds a catalog. The events slice is owned by the catalog afterwards.
func New(opts Options) *Catalog {
	byID := make(map[string]int, len(opts.Events))
	for i, e := range opts.Events {
		if _, exists := byID[e.ID]; !exists {
			byID[e.ID] = i
		}
	}

	return &Catalog{
		events:   opts.Events,
		byID:     byID,
		timeline: timeline.NewModel(opts.Blocks, opts.Events),
		resolver: search.NewResolver(opts.Presets),
		locale:   opts.Locale,
		notice:   opts.Notice,
	}
}

// Events returns the loaded events in store order. Callers must not modify it.
func (c *Catalog) Events() []event.Event { return c.events }

// Timeline returns the resolved timeline model.
func (c *Catalog) Timeline() *timeline.Model { return c.timeline }

// Resolver returns the period preset resolver.
func (c *Catalog) Resolver() *search.Resolver { return c.resolver }

// Locale returns the display locale.
func (c *Catalog) Locale() chrono.Locale { return c.locale }

// Notice returns the load failure message, if any.
func (c *Catalog) Notice() string { return c.notice }

// Len returns the number of loaded events.
func (c *Catalog) Len() int { return len(c.events) }

// FindEvent returns the event with the given id.
func (c *Catalog) FindEvent(id string) (event.Event, bool) {
	i, ok := c.byID[id]
	if !ok {
		return event.Event{}, false
	}
	return c.events[i], true
}

// Ticks returns the selectable years of the block at index.
func (c *Catalog) Ticks(index int) ([]int, bool) {
	block, ok := c.timeline.Block(index)
	if !ok {
		return nil, false
	}
	return timeline.YearsInBlock(block, c.events), true
}

// # Queries

// Query describes an ad-hoc filter over the catalog.
type Query struct {
	Year *int
	From *int
	To   *int
	Text string
}

// Filter applies a [Query]: year and range narrow by date (range wins when
// both bounds are given), then free text narrows further.
func (c *Catalog) Filter(query Query) []event.Event {
	result := c.events

	switch {
	case query.From != nil && query.To != nil:
		result = filter.ByYearRange(result, *query.From, *query.To)
	case query.Year != nil:
		result = filter.ByYear(result, *query.Year)
	}

	return filter.ByText(result, filter.NormalizeQuery(query.Text))
}
