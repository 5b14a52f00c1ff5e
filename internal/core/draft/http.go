// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package draft

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/chronomap/internal/platform/request"
	"github.com/taibuivan/chronomap/internal/platform/respond"
)

// Handler serves the authoring export.
type Handler struct {
	now func() time.Time
}

// NewHandler constructs a new draft [Handler].
func NewHandler() *Handler {
	return &Handler{now: time.Now}
}

// Register adds the export endpoint to the events router.
func (handler *Handler) Register(router chi.Router) {
	router.Post("/draft", handler.export)
}

// exportRequest is the form plus the picked map point.
type exportRequest struct {
	Form
	Point *Point `json:"point"`
}

// exportResponse carries the record and its YAML document.
type exportResponse struct {
	Record   Record `json:"record"`
	Document string `json:"document"`
}

/*
POST /api/v1/events/draft.

Description: Builds an event submission. With ?format=yaml the document is
returned as-is instead of wrapped in JSON.

Request:
  - exportRequest: JSON body

Response:
  - 200: exportResponse
  - 400: VALIDATION_ERROR: Missing or unreadable fields
*/
func (handler *Handler) export(writer http.ResponseWriter, request *http.Request) {
	var input exportRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, document, err := Build(input.Form, input.Point, handler.now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	requestutil.Logger(request).InfoContext(request.Context(), "event_draft_exported", slog.String("draft_id", record.ID))

	if request.URL.Query().Get("format") == "yaml" {
		writer.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		writer.WriteHeader(http.StatusOK)
		_, _ = writer.Write([]byte(document))
		return
	}

	respond.OK(writer, exportResponse{Record: record, Document: document})
}
