// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/chronomap/internal/platform/apperr"
	"github.com/taibuivan/chronomap/pkg/slice"
)

// # Errors

// FetchError reports that the event store could not be read.
//
// It is surfaced once at startup; the service keeps running with an empty
// event set and shows [FetchError.Error] in place of the event list.
type FetchError struct {
	// Status is the non-success HTTP status, zero for transport failures.
	Status int
	// Body is the (truncated) error body returned by the store.
	Body string
	// Cause is the underlying transport or database error.
	Cause error
}

// Error implements the error interface with a single human-readable line.
func (e *FetchError) Error() string {
	switch {
	case e.Status != 0 && e.Body != "":
		return fmt.Sprintf("unable to load events: store returned %d: %s", e.Status, e.Body)
	case e.Status != 0:
		return fmt.Sprintf("unable to load events: store returned %d", e.Status)
	case e.Cause != nil:
		return "unable to load events: " + e.Cause.Error()
	default:
		return "unable to load events"
	}
}

// Unwrap exposes the cause to [errors.Is] and [errors.As].
func (e *FetchError) Unwrap() error { return e.Cause }

// # Service Layer

// Service loads and normalizes the event set.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
LoadAll reads every row from the store and normalizes it.

Description: The store's ordering (start date ascending) is kept as-is.
Any failure is returned as a [*FetchError] so the caller can show a single
message and continue with zero events.

Parameters:
  - context: context.Context

Returns:
  - []Event: Normalized events
  - error: *FetchError on transport or status failure
*/
func (service *Service) LoadAll(context context.Context) ([]Event, error) {
	startTime := time.Now()

	rows, err := service.repo.ListRows(context)
	if err != nil {
		var fetchErr *FetchError
		if errors.As(err, &fetchErr) {
			return nil, fetchErr
		}

		// Storage errors wrapped for HTTP hide their cause; the startup
		// message needs it.
		if appErr := apperr.As(err); appErr != nil && appErr.Cause != nil {
			err = appErr.Cause
		}
		return nil, &FetchError{Cause: err}
	}

	events := slice.Map(rows, func(row Row) Event { return Normalize(row, service.logger) })
	if events == nil {
		events = []Event{}
	}

	swapped := slice.Reduce(events, 0, func(count int, ev Event) int {
		if ev.DatesSwapped {
			return count + 1
		}
		return count
	})
	undated := slice.Reduce(events, 0, func(count int, ev Event) int {
		if !ev.IsDated() {
			return count + 1
		}
		return count
	})

	service.logger.Info("events_loaded",
		slog.Int("count", len(events)),
		slog.Int("swapped", swapped),
		slog.Int("undated", undated),
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	)

	return events, nil
}

// Snapshot is the outcome of the one-time startup load.
type Snapshot struct {
	// Events is empty when the load failed.
	Events []Event
	// Notice is the single message shown in place of the event list.
	Notice string
}

// LoadSnapshot runs [Service.LoadAll] and degrades a failure into an empty
// set plus a notice. The service keeps running either way.
func (service *Service) LoadSnapshot(context context.Context) Snapshot {
	events, err := service.LoadAll(context)
	if err != nil {
		service.logger.Error("events_load_failed", slog.Any("error", err))
		return Snapshot{Notice: err.Error()}
	}
	return Snapshot{Events: events}
}
