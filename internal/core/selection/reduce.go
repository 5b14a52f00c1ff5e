// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package selection

import (
	"github.com/taibuivan/chronomap/internal/core/catalog"
	"github.com/taibuivan/chronomap/internal/core/filter"
	"github.com/taibuivan/chronomap/internal/core/timeline"
)

// # Transitions

/*
Reduce returns the state that follows action.

Description: Reduce is pure. It never touches sinks and never draws random
numbers; [ActionRandom] is resolved into [ActionPickEvent] by the
[Controller] before reaching this function. Actions that reference unknown
blocks, events or suggestions leave the position unchanged.

Parameters:
  - state: State (current position)
  - action: Action
  - cat: *catalog.Catalog (read-only event set)

Returns:
  - State: The next position
*/
func Reduce(state State, action Action, cat *catalog.Catalog) State {
	next := state
	next.Focus = ""

	switch action.Type {
	case ActionSelectYear:
		if action.Year == nil {
			return next
		}
		return selectYear(next, *action.Year, cat)

	case ActionSelectBlock:
		if action.Block == nil {
			return next
		}
		block, ok := cat.Timeline().Block(*action.Block)
		if !ok {
			return next
		}
		if next.Search.Kind == SearchRange {
			next.Search = SearchMode{}
		}
		return selectBlock(next, block, cat)

	case ActionSearch:
		normalized := filter.NormalizeQuery(action.Query)
		if normalized == "" {
			return clearSearch(next)
		}
		if preset, ok := cat.Resolver().Resolve(normalized); ok {
			return enterRange(next, preset.Start, preset.End, action.Query, cat)
		}
		next.Pinned = ""
		next.Search = SearchMode{Kind: SearchText, Text: normalized, Input: action.Query}
		return next

	case ActionPickSuggestion:
		preset, ok := cat.Resolver().FindByLabel(action.Label)
		if !ok {
			return next
		}
		return enterRange(next, preset.Start, preset.End, preset.Label, cat)

	case ActionClearSearch:
		return clearSearch(next)

	case ActionPickEvent:
		ev, ok := cat.FindEvent(action.EventID)
		if !ok {
			return next
		}
		next.Search = SearchMode{}
		if ev.StartYear != nil {
			next = selectYear(next, *ev.StartYear, cat)
		}
		next.Pinned = ev.ID
		next.Focus = ev.ID
		return next

	case ActionClickPoint:
		ev, ok := cat.FindEvent(action.EventID)
		if !ok {
			return next
		}
		if ev.StartYear != nil {
			next = selectYear(next, *ev.StartYear, cat)
		}
		next.Focus = ev.ID
		return next
	}

	return next
}

// Initial positions a new session on the most recent block with events,
// selecting its latest year. An empty catalog yields the zero State.
func Initial(cat *catalog.Catalog) State {
	block, ok := cat.Timeline().LastPopulatedBlock(cat.Events())
	if !ok {
		return State{}
	}
	return selectBlock(State{}, block, cat)
}

// selectYear applies a slider move. A range search is dropped, a text
// search is kept, and the block marker follows the year.
func selectYear(state State, year int, cat *catalog.Catalog) State {
	if state.Search.Kind == SearchRange {
		state.Search = SearchMode{}
	}

	state.Pinned = ""
	state.Year = &year

	if state.Block != nil {
		if current, ok := cat.Timeline().Block(*state.Block); ok && current.Contains(year) {
			return state
		}
	}

	if block, ok := cat.Timeline().FindBlockForYear(year); ok {
		state.Block = &block.Index
	} else {
		state.Block = nil
	}

	return state
}

// selectBlock activates a block. Outside of a range search, the latest
// tick becomes the active year; a block without ticks clears the year.
func selectBlock(state State, block timeline.ResolvedBlock, cat *catalog.Catalog) State {
	index := block.Index
	state.Block = &index
	state.Pinned = ""

	if state.Search.Kind == SearchRange {
		return state
	}

	ticks := timeline.YearsInBlock(block, cat.Events())
	if len(ticks) == 0 {
		state.Year = nil
		return state
	}

	return selectYear(state, ticks[len(ticks)-1], cat)
}

// enterRange activates a period search and jumps to the block holding its
// start. The active year is kept so clearing the search restores it.
func enterRange(state State, start, end int, input string, cat *catalog.Catalog) State {
	state.Pinned = ""
	state.Search = SearchMode{Kind: SearchRange, Start: start, End: end, Input: input}

	if block, ok := cat.Timeline().FindBlockForYear(start); ok {
		return selectBlock(state, block, cat)
	}
	return state
}

func clearSearch(state State) State {
	state.Pinned = ""
	state.Search = SearchMode{}
	return state
}
