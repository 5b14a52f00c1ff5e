// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package timeline derives the navigable period structure from the event set.

Two shapes are supported:

  - Per-year: a contiguous sequence from the earliest to the latest event year.
  - Blocks: a fixed, ordered list of named eras. Within a block, the selectable
    ticks are the years actually covered by events, not a calendar grid.

The last block is open-ended and resolves to the latest year present in the
loaded events, or to [DefaultYear] when there are none.
*/
package timeline

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/chronomap/internal/core/event"
)

// DefaultYear is used when no event year is available.
const DefaultYear = 2024

//go:embed blocks.yaml
var defaultBlocksYAML []byte

// # Domain Entities

// Block is an era as declared in the catalog. A nil End means open-ended.
type Block struct {
	Label string `yaml:"label" json:"label"`
	Start int    `yaml:"start" json:"start"`
	End   *int   `yaml:"end"   json:"end"`
}

// ResolvedBlock is a [Block] whose end has been resolved to a concrete year.
type ResolvedBlock struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Contains reports whether year lies in [Start, End].
func (b ResolvedBlock) Contains(year int) bool {
	return year >= b.Start && year <= b.End
}

// # Catalog Loading

// ParseBlocks decodes a YAML list of blocks and checks their bounds.
func ParseBlocks(data []byte) ([]Block, error) {
	var blocks []Block
	if err := yaml.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("timeline: invalid block catalog: %w", err)
	}

	for i, b := range blocks {
		if b.Label == "" {
			return nil, fmt.Errorf("timeline: block %d has no label", i)
		}
		if b.End != nil && *b.End < b.Start {
			return nil, fmt.Errorf("timeline: block %q ends before it starts", b.Label)
		}
		if b.End == nil && i != len(blocks)-1 {
			return nil, fmt.Errorf("timeline: only the last block may be open-ended, got %q", b.Label)
		}
	}

	return blocks, nil
}

// DefaultBlocks returns the embedded era catalog.
func DefaultBlocks() ([]Block, error) {
	return ParseBlocks(defaultBlocksYAML)
}

// # Model

// Model resolves blocks against a loaded event set.
//
// # Concurrency
//
// A Model is immutable after construction and safe for concurrent use.
type Model struct {
	blocks   []ResolvedBlock
	timeline []int
}

// NewModel resolves every block's end against events.
func NewModel(blocks []Block, events []event.Event) *Model {
	maxYear, ok := MaxYear(events)
	if !ok {
		maxYear = DefaultYear
	}

	resolved := make([]ResolvedBlock, 0, len(blocks))
	for i, b := range blocks {
		end := maxYear
		if b.End != nil {
			end = *b.End
		}
		resolved = append(resolved, ResolvedBlock{Index: i, Label: b.Label, Start: b.Start, End: end})
	}

	return &Model{blocks: resolved, timeline: YearRange(events)}
}

// Blocks returns the resolved blocks in catalog order.
func (m *Model) Blocks() []ResolvedBlock {
	return slices.Clone(m.blocks)
}

// Years returns the per-year timeline.
func (m *Model) Years() []int {
	return slices.Clone(m.timeline)
}

// Block returns the resolved block at index.
func (m *Model) Block(index int) (ResolvedBlock, bool) {
	if index < 0 || index >= len(m.blocks) {
		return ResolvedBlock{}, false
	}
	return m.blocks[index], true
}

// FindBlockForYear returns the first block, in catalog order, containing year.
func (m *Model) FindBlockForYear(year int) (ResolvedBlock, bool) {
	for _, b := range m.blocks {
		if b.Contains(year) {
			return b, true
		}
	}
	return ResolvedBlock{}, false
}

// LastPopulatedBlock returns the most recent block that has at least one tick.
func (m *Model) LastPopulatedBlock(events []event.Event) (ResolvedBlock, bool) {
	for i := len(m.blocks) - 1; i >= 0; i-- {
		if len(YearsInBlock(m.blocks[i], events)) > 0 {
			return m.blocks[i], true
		}
	}
	return ResolvedBlock{}, false
}

// # Derivations

// YearsInBlock returns the sorted, duplicate-free years covered by events
// inside the block. Each event contributes the part of its own span that
// overlaps the block. A block without events yields an empty slice.
func YearsInBlock(block ResolvedBlock, events []event.Event) []int {
	seen := make(map[int]struct{})
	for _, e := range events {
		start, end, ok := e.Span()
		if !ok || end < block.Start || start > block.End {
			continue
		}

		for year := max(block.Start, start); year <= min(block.End, end); year++ {
			seen[year] = struct{}{}
		}
	}

	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	slices.Sort(years)

	return years
}

// YearRange returns every year from the earliest to the latest event year.
// Without dated events it returns a single [DefaultYear].
func YearRange(events []event.Event) []int {
	minYear, okMin := MinYear(events)
	maxYear, okMax := MaxYear(events)
	if !okMin || !okMax {
		return []int{DefaultYear}
	}

	years := make([]int, 0, maxYear-minYear+1)
	for year := minYear; year <= maxYear; year++ {
		years = append(years, year)
	}
	return years
}

// MinYear returns the earliest start year among dated events.
func MinYear(events []event.Event) (int, bool) {
	found := false
	result := 0
	for _, e := range events {
		start, _, ok := e.Span()
		if !ok {
			continue
		}
		if !found || start < result {
			result = start
			found = true
		}
	}
	return result, found
}

// MaxYear returns the latest end year among dated events.
func MaxYear(events []event.Event) (int, bool) {
	found := false
	result := 0
	for _, e := range events {
		_, end, ok := e.Span()
		if !ok {
			continue
		}
		if !found || end > result {
			result = end
			found = true
		}
	}
	return result, found
}
