// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package selection

import (
	"github.com/taibuivan/chronomap/internal/core/catalog"
	"github.com/taibuivan/chronomap/internal/core/chrono"
	"github.com/taibuivan/chronomap/internal/core/event"
	"github.com/taibuivan/chronomap/internal/core/filter"
	"github.com/taibuivan/chronomap/internal/core/timeline"
)

// FocusZoom is the camera zoom used when centering on a single event.
const FocusZoom = 5.0

// # Rendered Output

// Camera is a map viewpoint. Center is [lng, lat].
type Camera struct {
	Center [2]float64 `json:"center"`
	Zoom   float64    `json:"zoom"`
}

// Focus is the event the map should center on before opening its popup.
type Focus struct {
	Event  event.Event `json:"event"`
	Camera Camera      `json:"camera"`
}

// View is everything the presentation sinks need for one State.
type View struct {
	// Label is the heading above the list: a year, a "start–end" range or a placeholder.
	Label string `json:"label"`

	Block *timeline.ResolvedBlock `json:"block,omitempty"`
	Year  *int                    `json:"year,omitempty"`

	// Ticks are the selectable years of the active block.
	Ticks []int `json:"ticks"`

	Events []event.Event           `json:"events"`
	Points event.FeatureCollection `json:"points"`

	Search SearchMode `json:"search"`

	// Empty is set when the list shows the "no event" hint.
	Empty bool `json:"empty"`

	// Notice replaces the list when the event set failed to load.
	Notice string `json:"notice,omitempty"`

	Focus *Focus `json:"focus,omitempty"`
}

/*
Render projects state into a [View].

Description: The filtered set follows the state's precedence: a pinned
event shows alone, an active range replaces the year filter, otherwise the
active year applies and a text search narrows it further. Without any of
these the set is empty.
*/
func Render(state State, cat *catalog.Catalog) View {
	locale := cat.Locale()

	view := View{
		Label:  chrono.Placeholder,
		Year:   state.Year,
		Ticks:  []int{},
		Events: []event.Event{},
		Search: state.Search,
		Notice: cat.Notice(),
	}

	if state.Block != nil {
		if block, ok := cat.Timeline().Block(*state.Block); ok {
			view.Block = &block
			view.Ticks = timeline.YearsInBlock(block, cat.Events())
		}
	}

	pinned, isPinned := cat.FindEvent(state.Pinned)

	switch {
	case state.Pinned != "" && isPinned:
		view.Events = []event.Event{pinned}
		if state.Year != nil {
			view.Label = locale.FormatYear(*state.Year)
		}

	case state.Search.Kind == SearchRange:
		view.Events = filter.ByYearRange(cat.Events(), state.Search.Start, state.Search.End)
		view.Label = locale.FormatYearRange(state.Search.Start, state.Search.End)

	case state.Year != nil:
		view.Events = filter.ByYear(cat.Events(), *state.Year)
		if state.Search.Kind == SearchText {
			view.Events = filter.ByText(view.Events, state.Search.Text)
		}
		view.Label = locale.FormatYear(*state.Year)
	}

	view.Points = event.ToFeatureCollection(view.Events)
	view.Empty = len(view.Events) == 0

	if state.Focus != "" {
		if target, ok := cat.FindEvent(state.Focus); ok {
			view.Focus = &Focus{
				Event:  target,
				Camera: Camera{Center: [2]float64{target.Lng, target.Lat}, Zoom: FocusZoom},
			}
		}
	}

	return view
}
