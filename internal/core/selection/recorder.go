// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package selection

import (
	"context"
	"sync"

	"github.com/taibuivan/chronomap/internal/core/event"
)

// Recorder is an in-memory implementation of every sink. It backs the HTTP
// session API, where the client renders the returned view itself, and the
// controller tests.
//
// Camera moves complete immediately unless Hold is set, in which case the
// channel returned by FlyTo stays open until [Recorder.Settle] is called.
type Recorder struct {
	mu sync.Mutex

	Hold bool

	lists   int
	points  []event.FeatureCollection
	marks   []View
	flights []Camera
	pending []chan struct{}

	popup  string
	opened []string
	closed int

	// overlaps counts popups opened while another one was still open.
	overlaps int
}

// Sinks returns the recorder wired as all three sinks.
func (r *Recorder) Sinks() Sinks {
	return Sinks{List: r, Map: r, Timeline: r}
}

func (r *Recorder) RenderList(_ context.Context, _ View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists++
}

func (r *Recorder) SetPointData(_ context.Context, points event.FeatureCollection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.points = append(r.points, points)
}

func (r *Recorder) MarkActive(_ context.Context, view View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.marks = append(r.marks, view)
}

func (r *Recorder) FlyTo(_ context.Context, camera Camera) <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.flights = append(r.flights, camera)

	done := make(chan struct{})
	if r.Hold {
		r.pending = append(r.pending, done)
	} else {
		close(done)
	}
	return done
}

func (r *Recorder) OpenPopup(_ context.Context, target event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.popup != "" {
		r.overlaps++
	}
	r.popup = target.ID
	r.opened = append(r.opened, target.ID)
}

func (r *Recorder) ClosePopup(_ context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.popup != "" {
		r.closed++
	}
	r.popup = ""
}

// Settle completes every held camera move.
func (r *Recorder) Settle() {
	r.mu.Lock()
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()

	for _, done := range pending {
		close(done)
	}
}

// Popup returns the id of the open popup, or "".
func (r *Recorder) Popup() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.popup
}

// Opened returns the ids of every popup opened so far.
func (r *Recorder) Opened() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.opened...)
}

// Flights returns every requested camera move.
func (r *Recorder) Flights() []Camera {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Camera(nil), r.flights...)
}

// LastPoints returns the latest point layer, if any.
func (r *Recorder) LastPoints() (event.FeatureCollection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.points) == 0 {
		return event.FeatureCollection{}, false
	}
	return r.points[len(r.points)-1], true
}

// LastMarks returns the latest timeline markers, if any.
func (r *Recorder) LastMarks() (View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.marks) == 0 {
		return View{}, false
	}
	return r.marks[len(r.marks)-1], true
}

// Renders returns how many times the list was rendered.
func (r *Recorder) Renders() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lists
}

// Overlaps returns how many popups were opened on top of an open one.
func (r *Recorder) Overlaps() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overlaps
}
