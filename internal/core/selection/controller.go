// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package selection

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/taibuivan/chronomap/internal/core/catalog"
	"github.com/taibuivan/chronomap/internal/core/event"
	"github.com/taibuivan/chronomap/internal/platform/apperr"
)

// # Presentation Sinks

// ListSink renders the event cards.
type ListSink interface {
	RenderList(context context.Context, view View)
}

// MapSink drives the map widget.
type MapSink interface {
	// SetPointData replaces the point layer.
	SetPointData(context context.Context, points event.FeatureCollection)

	// FlyTo starts a camera move. The returned channel is closed once the
	// camera has reached its destination.
	FlyTo(context context.Context, camera Camera) <-chan struct{}

	OpenPopup(context context.Context, target event.Event)
	ClosePopup(context context.Context)
}

// TimelineSink keeps the block, tick and label markers in sync.
type TimelineSink interface {
	MarkActive(context context.Context, view View)
}

// Sinks groups the outputs of a [Controller].
type Sinks struct {
	List     ListSink
	Map      MapSink
	Timeline TimelineSink
}

// # Controller

// Controller owns one session's [State] and keeps the sinks consistent with it.
type Controller struct {
	mu sync.Mutex

	catalog *catalog.Catalog
	sinks   Sinks
	logger  *slog.Logger

	state State
	view  View

	// generation increases on every dispatch; a popup is only opened if no
	// other dispatch happened while its camera move was running.
	generation uint64
	popupOpen  bool

	intn func(n int) int
}

// Option customizes a [Controller].
type Option func(*Controller)

// WithRand replaces the uniform source used by [Controller.RandomEvent].
func WithRand(intn func(n int) int) Option {
	return func(c *Controller) { c.intn = intn }
}

// NewController builds a controller positioned at state. Nothing is pushed
// to the sinks until [Controller.Refresh] or [Controller.Dispatch] runs.
func NewController(cat *catalog.Catalog, state State, sinks Sinks, logger *slog.Logger, opts ...Option) *Controller {
	controller := &Controller{
		catalog: cat,
		sinks:   sinks,
		logger:  logger,
		state:   state,
		view:    Render(state, cat),
		intn:    rand.IntN,
	}

	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

// State returns the persisted part of the current position.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.state
	state.Focus = ""
	return state
}

// View returns the last rendered view.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Refresh pushes the current view to the sinks without changing the state.
func (c *Controller) Refresh(context context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.push(context, c.view)
}

/*
Dispatch applies action and updates every sink.

Description: The state transition and the sink updates happen under the
controller lock. When the resulting view carries a focus target, the camera
move is awaited outside the lock and the popup is opened only if no newer
dispatch happened in the meantime. Any open popup is closed first.

Errors:
  - VALIDATION_ERROR: Unknown action type
  - context errors while waiting for the camera
*/
func (c *Controller) Dispatch(context context.Context, action Action) (View, error) {
	if !action.Type.IsValid() {
		return View{}, apperr.ValidationError("Unknown action type", apperr.FieldError{
			Field:   "type",
			Message: "must be one of select_year, select_block, search, pick_suggestion, clear_search, random, pick_event, click_point",
		})
	}

	if action.Type == ActionRandom {
		return c.RandomEvent(context)
	}

	c.mu.Lock()
	c.state = Reduce(c.state, action, c.catalog)
	c.view = Render(c.state, c.catalog)
	c.generation++

	view := c.view
	generation := c.generation
	c.push(context, view)
	c.mu.Unlock()

	c.logger.DebugContext(context, "selection_dispatched",
		slog.String("action", string(action.Type)),
		slog.Int("events", len(view.Events)),
		slog.String("label", view.Label),
	)

	if view.Focus == nil {
		return view, nil
	}

	return view, c.focus(context, generation, view.Focus)
}

// RandomEvent shows one event chosen uniformly from the whole set.
// With an empty set it is a no-op and returns the current view.
func (c *Controller) RandomEvent(context context.Context) (View, error) {
	events := c.catalog.Events()
	if len(events) == 0 {
		return c.View(), nil
	}

	picked := events[c.intn(len(events))]
	return c.Dispatch(context, PickEvent(picked.ID))
}

// push must be called with c.mu held.
func (c *Controller) push(context context.Context, view View) {
	if c.sinks.List != nil {
		c.sinks.List.RenderList(context, view)
	}
	if c.sinks.Map != nil {
		c.sinks.Map.SetPointData(context, view.Points)
	}
	if c.sinks.Timeline != nil {
		c.sinks.Timeline.MarkActive(context, view)
	}
}

func (c *Controller) focus(context context.Context, generation uint64, target *Focus) error {
	if c.sinks.Map == nil {
		return nil
	}

	c.mu.Lock()
	c.closePopup(context)
	c.mu.Unlock()

	select {
	case <-c.sinks.Map.FlyTo(context, target.Camera):
	case <-context.Done():
		return context.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		c.logger.DebugContext(context, "selection_popup_superseded", slog.String("event_id", target.Event.ID))
		return nil
	}

	c.closePopup(context)
	c.sinks.Map.OpenPopup(context, target.Event)
	c.popupOpen = true

	return nil
}

// closePopup must be called with c.mu held.
func (c *Controller) closePopup(context context.Context) {
	if !c.popupOpen {
		return
	}
	c.sinks.Map.ClosePopup(context)
	c.popupOpen = false
}
