// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package event

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// restTimeout bounds the single startup read.
	restTimeout = 15 * time.Second

	// restErrorBodyLimit caps how much of an error body ends up in the message.
	restErrorBodyLimit = 512
)

// RestRepository implements [Repository] against a PostgREST endpoint
// (Supabase and compatible hosts).
type RestRepository struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewRestRepository constructs a PostgREST backed event store.
//
// # Parameters
//   - baseURL: Project URL, e.g. "https://xyz.supabase.co".
//   - apiKey: Publishable key sent as both "apikey" and bearer token.
//   - client: Optional HTTP client; nil uses a client with [restTimeout].
func NewRestRepository(baseURL, apiKey string, client *http.Client) *RestRepository {
	if client == nil {
		client = &http.Client{Timeout: restTimeout}
	}
	return &RestRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

// restRow mirrors [Row] but tolerates numeric identifiers.
type restRow struct {
	ID         json.RawMessage `json:"id"`
	Title      string          `json:"title"`
	StartDate  *string         `json:"start_date"`
	EndDate    *string         `json:"end_date"`
	Lat        *float64        `json:"lat"`
	Lng        *float64        `json:"lng"`
	Summary    *string         `json:"summary"`
	YouTubeURL *string         `json:"youtube_url"`
}

// ListRows issues "GET /rest/v1/events?select=*&order=start_date.asc".
func (repository *RestRepository) ListRows(context context.Context) ([]Row, error) {
	endpoint := repository.baseURL + "/rest/v1/events?select=*&order=start_date.asc"

	request, err := http.NewRequestWithContext(context, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("event_rest_request_build_failed: %w", err)
	}

	request.Header.Set("apikey", repository.apiKey)
	request.Header.Set("Authorization", "Bearer "+repository.apiKey)
	request.Header.Set("Accept", "application/json")

	response, err := repository.client.Do(request)
	if err != nil {
		return nil, &FetchError{Cause: err}
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(response.Body, restErrorBodyLimit))
		return nil, &FetchError{Status: response.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var raw []restRow
	if err := json.NewDecoder(response.Body).Decode(&raw); err != nil {
		return nil, &FetchError{Cause: fmt.Errorf("decode rows: %w", err)}
	}

	rows := make([]Row, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, Row{
			ID:         rawID(r.ID),
			Title:      r.Title,
			StartDate:  r.StartDate,
			EndDate:    r.EndDate,
			Lat:        r.Lat,
			Lng:        r.Lng,
			Summary:    r.Summary,
			YouTubeURL: r.YouTubeURL,
		})
	}

	return rows, nil
}

// rawID renders a JSON string or number identifier as plain text.
func rawID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}
