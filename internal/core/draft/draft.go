// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package draft builds event submissions for manual review.

An author fills a form and picks a point on the map; [Build] turns both into
a single YAML record in the shape of an events row. Nothing is written to
the store: the document is handed back to the author.
*/
package draft

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/chronomap/internal/core/chrono"
	"github.com/taibuivan/chronomap/internal/platform/validate"
	"github.com/taibuivan/chronomap/pkg/slug"
)

const (
	// coordinatePrecision is the number of decimals kept for lat/lng (about 1 m).
	coordinatePrecision = 5

	maxTitleLength   = 200
	maxSummaryLength = 2000
)

// Form is the author's input.
type Form struct {
	// ID overrides the generated identifier when set.
	ID      string `json:"id"`
	Title   string `json:"title"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Summary string `json:"summary"`
	YouTube string `json:"youtube_url"`
}

// Point is the coordinate picked on the map.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Record is the exported event, keyed like the events table.
type Record struct {
	ID         string  `yaml:"id" json:"id"`
	Title      string  `yaml:"title" json:"title"`
	StartDate  string  `yaml:"start_date" json:"start_date"`
	EndDate    string  `yaml:"end_date" json:"end_date"`
	Lat        float64 `yaml:"lat" json:"lat"`
	Lng        float64 `yaml:"lng" json:"lng"`
	Summary    string  `yaml:"summary" json:"summary"`
	YouTubeURL string  `yaml:"youtube_url" json:"youtube_url"`
}

/*
Build validates the form and point and returns the record with its YAML
rendering.

Description: The end date defaults to the start date. The identifier is the
form's ID, else the slug of the title, else "evt-<unix ms>". Coordinates are
rounded to five decimals.

Errors:
  - VALIDATION_ERROR: Missing title, start date, video URL or point, or
    unreadable dates
*/
func Build(form Form, point *Point, now time.Time) (Record, string, error) {
	form = trim(form)

	v := &validate.Validator{}
	v.Required("title", form.Title).
		MaxLen("title", form.Title, maxTitleLength).
		Required("start", form.Start).
		Required("youtube_url", form.YouTube).
		MaxLen("summary", form.Summary, maxSummaryLength).
		Custom("point", point == nil, "Pick a location on the map")

	if form.ID != "" {
		v.Slug("id", form.ID)
	}
	if form.YouTube != "" {
		v.URL("youtube_url", form.YouTube)
	}

	v.Custom("start", form.Start != "" && !readable(form.Start), "Must be YYYY-MM-DD, optionally followed by BC")
	v.Custom("end", form.End != "" && !readable(form.End), "Must be YYYY-MM-DD, optionally followed by BC")
	v.Custom("end", precedes(form.End, form.Start), "Must not precede the start date")

	if point != nil {
		v.FloatRange("point.lat", point.Lat, -90, 90)
		v.FloatRange("point.lng", point.Lng, -180, 180)
	}

	if err := v.Err(); err != nil {
		return Record{}, "", err
	}

	record := Record{
		ID:         identifier(form, now),
		Title:      form.Title,
		StartDate:  form.Start,
		EndDate:    form.End,
		Lat:        round(point.Lat),
		Lng:        round(point.Lng),
		Summary:    form.Summary,
		YouTubeURL: form.YouTube,
	}
	if record.EndDate == "" {
		record.EndDate = record.StartDate
	}

	document, err := yaml.Marshal(record)
	if err != nil {
		return Record{}, "", fmt.Errorf("draft: encode record: %w", err)
	}

	return record, string(document), nil
}

func trim(form Form) Form {
	form.ID = strings.TrimSpace(form.ID)
	form.Title = strings.TrimSpace(form.Title)
	form.Start = strings.TrimSpace(form.Start)
	form.End = strings.TrimSpace(form.End)
	form.Summary = strings.TrimSpace(form.Summary)
	form.YouTube = strings.TrimSpace(form.YouTube)
	return form
}

func identifier(form Form, now time.Time) string {
	if form.ID != "" {
		return form.ID
	}
	if id := slug.From(form.Title); id != "" {
		return id
	}
	return fmt.Sprintf("evt-%d", now.UnixMilli())
}

func readable(token string) bool {
	_, err := chrono.ParseYear(token)
	return err == nil || errors.Is(err, chrono.ErrNoDate)
}

// precedes reports whether both tokens carry a year and end is earlier.
func precedes(end, start string) bool {
	endYear, err := chrono.ParseYear(end)
	if err != nil {
		return false
	}
	startYear, err := chrono.ParseYear(start)
	if err != nil {
		return false
	}
	return endYear < startYear
}

func round(value float64) float64 {
	scale := math.Pow10(coordinatePrecision)
	return math.Round(value*scale) / scale
}
