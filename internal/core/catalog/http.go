// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/chronomap/internal/core/event"
	"github.com/taibuivan/chronomap/internal/core/filter"
	"github.com/taibuivan/chronomap/internal/platform/apperr"
	requestutil "github.com/taibuivan/chronomap/internal/platform/request"
	"github.com/taibuivan/chronomap/internal/platform/respond"
	"github.com/taibuivan/chronomap/internal/platform/validate"
	"github.com/taibuivan/chronomap/pkg/pagination"
	"github.com/taibuivan/chronomap/pkg/pointer"
)

// # Handler Implementation

// Handler exposes read-only catalog endpoints: events, timeline and search.
type Handler struct {
	catalog *Catalog
}

// NewHandler constructs a new catalog [Handler].
func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// EventRoutes returns the router mounted under /events.
func (handler *Handler) EventRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listEvents)
	router.Get("/geojson", handler.eventPoints)
	router.Get("/random", handler.randomEvent)
	router.Get("/{id}", handler.getEvent)
	return router
}

// TimelineRoutes returns the router mounted under /timeline.
func (handler *Handler) TimelineRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/years", handler.listYears)
	router.Get("/blocks", handler.listBlocks)
	router.Get("/blocks/{index}/years", handler.listBlockTicks)
	return router
}

// SearchRoutes returns the router mounted under /search.
func (handler *Handler) SearchRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/resolve", handler.resolveSearch)
	router.Get("/suggest", handler.suggest)
	return router
}

// # Event Endpoints

/*
GET /api/v1/events.

Description: Lists events, optionally narrowed by a single year, a year
range and free text. Without a date filter, undated events are included.

Request:
  - year: int
  - from, to: int (inclusive range, both required)
  - q: string
  - page, limit: int

Response:
  - 200: []Event: Paginated list
  - 400: VALIDATION_ERROR: Non-numeric year parameters
*/
func (handler *Handler) listEvents(writer http.ResponseWriter, request *http.Request) {
	query, err := parseQuery(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	events := handler.catalog.Filter(query)
	page := pagination.FromRequest(request)

	start := min(page.Offset(), len(events))
	end := min(start+page.Limit, len(events))

	respond.Paginated(writer, events[start:end], pagination.NewMeta(page.Page, page.Limit, len(events)))
}

/*
GET /api/v1/events/geojson.

Description: Same filters as the listing, rendered as the map point layer.
*/
func (handler *Handler) eventPoints(writer http.ResponseWriter, request *http.Request) {
	query, err := parseQuery(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, event.ToFeatureCollection(handler.catalog.Filter(query)))
}

/*
GET /api/v1/events/random.

Response:
  - 200: Event: One event chosen uniformly at random
  - 404: NOT_FOUND: The catalog is empty
*/
func (handler *Handler) randomEvent(writer http.ResponseWriter, request *http.Request) {
	events := handler.catalog.Events()
	if len(events) == 0 {
		respond.Error(writer, request, apperr.NotFound("Event"))
		return
	}

	respond.OK(writer, events[rand.IntN(len(events))])
}

/*
GET /api/v1/events/{id}.
*/
func (handler *Handler) getEvent(writer http.ResponseWriter, request *http.Request) {
	ev, ok := handler.catalog.FindEvent(requestutil.ID(request, "id"))
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Event"))
		return
	}

	respond.OK(writer, ev)
}

// # Timeline Endpoints

/*
GET /api/v1/timeline/years.

Description: Per-year timeline from the earliest to the latest event year.
*/
func (handler *Handler) listYears(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.catalog.Timeline().Years())
}

/*
GET /api/v1/timeline/blocks.

Description: Era blocks with their open end resolved.
*/
func (handler *Handler) listBlocks(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.catalog.Timeline().Blocks())
}

/*
GET /api/v1/timeline/blocks/{index}/years.

Response:
  - 200: []int: Ticks of the block (possibly empty)
  - 404: NOT_FOUND: Unknown block index
*/
func (handler *Handler) listBlockTicks(writer http.ResponseWriter, request *http.Request) {
	index, err := strconv.Atoi(requestutil.Param(request, "index"))
	if err != nil {
		respond.Error(writer, request, apperr.NotFound("Block"))
		return
	}

	ticks, ok := handler.catalog.Ticks(index)
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Block"))
		return
	}

	respond.OK(writer, ticks)
}

// # Search Endpoints

// resolveResponse describes how a query was interpreted.
type resolveResponse struct {
	Query  string        `json:"query"`
	Kind   string        `json:"kind"`
	Label  string        `json:"label,omitempty"`
	Start  *int          `json:"start,omitempty"`
	End    *int          `json:"end,omitempty"`
	Events []event.Event `json:"events"`
}

/*
GET /api/v1/search/resolve.

Description: Resolves q to a period preset when possible, returning every
event overlapping its range; otherwise returns the plain text matches.
*/
func (handler *Handler) resolveSearch(writer http.ResponseWriter, request *http.Request) {
	raw := request.URL.Query().Get("q")
	normalized := filter.NormalizeQuery(raw)

	if preset, ok := handler.catalog.Resolver().Resolve(normalized); ok {
		respond.OK(writer, resolveResponse{
			Query:  raw,
			Kind:   "range",
			Label:  handler.catalog.Locale().FormatYearRange(preset.Start, preset.End),
			Start:  pointer.To(preset.Start),
			End:    pointer.To(preset.End),
			Events: filter.ByYearRange(handler.catalog.Events(), preset.Start, preset.End),
		})
		return
	}

	respond.OK(writer, resolveResponse{
		Query:  raw,
		Kind:   "text",
		Events: filter.ByText(handler.catalog.Events(), normalized),
	})
}

/*
GET /api/v1/search/suggest.

Response:
  - 200: []Suggestion: Up to six period suggestions (empty below two characters)
*/
func (handler *Handler) suggest(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.catalog.Resolver().Suggest(request.URL.Query().Get("q")))
}

// # Helpers

// parseQuery reads the year, from, to and q parameters.
func parseQuery(request *http.Request) (Query, error) {
	params := request.URL.Query()
	query := Query{Text: params.Get("q")}

	var err error
	if query.Year, err = optionalInt(params.Get("year"), "year"); err != nil {
		return Query{}, err
	}
	if query.From, err = optionalInt(params.Get("from"), "from"); err != nil {
		return Query{}, err
	}
	if query.To, err = optionalInt(params.Get("to"), "to"); err != nil {
		return Query{}, err
	}

	return query, nil
}

func optionalInt(raw, field string) (*int, error) {
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, validate.Single(field, "Must be an integer year")
	}
	return &value, nil
}
