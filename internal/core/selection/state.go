// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package selection keeps the map, list and timeline in a consistent state.

The package is split in three layers:

  - [Reduce] is a pure transition from ([State], [Action]) to the next State.
  - [Render] is a pure projection of a State into a [View].
  - [Controller] applies both, pushes the View to the presentation sinks and
    sequences camera moves before popups.

Sessions served over HTTP persist their State in a [Store] between requests.
*/
package selection

// # Search Mode

// SearchKind tells how the active search narrows the event set.
type SearchKind string

const (
	// SearchNone means no search is active.
	SearchNone SearchKind = ""

	// SearchRange means a period preset is active; the range replaces the year filter.
	SearchRange SearchKind = "range"

	// SearchText means free text narrows the active year's events.
	SearchText SearchKind = "text"
)

// SearchMode is the active search, if any.
type SearchMode struct {
	Kind SearchKind `json:"kind,omitempty"`

	// Start and End bound a range search (inclusive).
	Start int `json:"start,omitempty"`
	End   int `json:"end,omitempty"`

	// Text is the normalized query of a text search.
	Text string `json:"text,omitempty"`

	// Input is echoed back into the search box.
	Input string `json:"input,omitempty"`
}

// # Timeline Position

// State is the current timeline position of one session.
type State struct {
	// Block is the index of the active era block.
	Block *int `json:"block,omitempty"`

	// Year is the active year within the block.
	Year *int `json:"year,omitempty"`

	Search SearchMode `json:"search"`

	// Pinned restricts the result set to a single event (random pick).
	Pinned string `json:"pinned,omitempty"`

	// Focus is the event to center on and open a popup for. It only lives
	// for the action that set it.
	Focus string `json:"focus,omitempty"`
}

// # Actions

// ActionType enumerates user interactions.
type ActionType string

const (
	ActionSelectYear     ActionType = "select_year"
	ActionSelectBlock    ActionType = "select_block"
	ActionSearch         ActionType = "search"
	ActionPickSuggestion ActionType = "pick_suggestion"
	ActionClearSearch    ActionType = "clear_search"
	ActionRandom         ActionType = "random"
	ActionPickEvent      ActionType = "pick_event"
	ActionClickPoint     ActionType = "click_point"
)

// IsValid reports whether t is a recognised [ActionType].
func (t ActionType) IsValid() bool {
	switch t {
	case
		ActionSelectYear,
		ActionSelectBlock,
		ActionSearch,
		ActionPickSuggestion,
		ActionClearSearch,
		ActionRandom,
		ActionPickEvent,
		ActionClickPoint:
		return true
	}
	return false
}

// Action is a user interaction. Only the fields relevant to Type are read.
type Action struct {
	Type    ActionType `json:"type"`
	Year    *int       `json:"year,omitempty"`
	Block   *int       `json:"block,omitempty"`
	Query   string     `json:"query,omitempty"`
	Label   string     `json:"label,omitempty"`
	EventID string     `json:"event_id,omitempty"`
}

// SelectYear moves the slider to year.
func SelectYear(year int) Action { return Action{Type: ActionSelectYear, Year: &year} }

// SelectBlock activates the era block at index.
func SelectBlock(index int) Action { return Action{Type: ActionSelectBlock, Block: &index} }

// Search submits a free-text query.
func Search(query string) Action { return Action{Type: ActionSearch, Query: query} }

// PickSuggestion selects an autocomplete entry by label.
func PickSuggestion(label string) Action { return Action{Type: ActionPickSuggestion, Label: label} }

// ClearSearch resets the search mode.
func ClearSearch() Action { return Action{Type: ActionClearSearch} }

// Random asks the controller to pick a random event.
func Random() Action { return Action{Type: ActionRandom} }

// PickEvent shows a single event, as produced by [ActionRandom].
func PickEvent(id string) Action { return Action{Type: ActionPickEvent, EventID: id} }

// ClickPoint reacts to a click on a map point.
func ClickPoint(id string) Action { return Action{Type: ActionClickPoint, EventID: id} }
