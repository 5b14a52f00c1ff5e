// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package event

import (
	"errors"
	"log/slog"

	"github.com/taibuivan/chronomap/internal/core/chrono"
	"github.com/taibuivan/chronomap/pkg/pointer"
)

// Normalize converts a raw [Row] into an [Event].
//
// Years are derived from the date tokens with [chrono.ParseYear]. A missing or
// unreadable end year falls back to the start year. When the end precedes the
// start, the (token, year) pairs are swapped together and the event is flagged
// with DatesSwapped so the source data can be fixed upstream.
func Normalize(row Row, logger *slog.Logger) Event {
	ev := Event{
		ID:      row.ID,
		Title:   row.Title,
		Summary: pointer.Val(row.Summary),
		Start:   pointer.Val(row.StartDate),
		End:     pointer.Val(row.EndDate),
		Lat:     pointer.Val(row.Lat),
		Lng:     pointer.Val(row.Lng),
		YouTube: pointer.Val(row.YouTubeURL),
	}

	startYear, err := chrono.ParseYear(ev.Start)
	if err != nil {
		// Undated events stay listed but never match a year filter.
		if !errors.Is(err, chrono.ErrNoDate) {
			logger.Warn("event_start_date_unreadable",
				slog.String("event_id", ev.ID),
				slog.String("token", ev.Start),
				slog.Any("error", err),
			)
		}
		return ev
	}

	endYear, err := chrono.ParseYear(ev.End)
	if err != nil {
		if !errors.Is(err, chrono.ErrNoDate) {
			logger.Warn("event_end_date_unreadable",
				slog.String("event_id", ev.ID),
				slog.String("token", ev.End),
				slog.Any("error", err),
			)
		}
		endYear = startYear
	}

	if endYear < startYear {
		ev.Start, ev.End = ev.End, ev.Start
		startYear, endYear = endYear, startYear
		ev.DatesSwapped = true

		logger.Warn("event_dates_swapped",
			slog.String("event_id", ev.ID),
			slog.String("start", ev.Start),
			slog.String("end", ev.End),
		)
	}

	ev.StartYear = pointer.To(startYear)
	ev.EndYear = pointer.To(endYear)

	return ev
}
