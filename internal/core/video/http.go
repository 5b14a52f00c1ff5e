// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/chronomap/internal/platform/apperr"
	requestutil "github.com/taibuivan/chronomap/internal/platform/request"
	"github.com/taibuivan/chronomap/internal/platform/respond"
	"github.com/taibuivan/chronomap/internal/platform/validate"
)

// Handler resolves video links for the player modal.
type Handler struct{}

// NewHandler constructs a new video [Handler].
func NewHandler() *Handler {
	return &Handler{}
}

// Routes returns the router mounted under /video.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/embed", handler.embed)
	return router
}

// Embed is the player payload.
type Embed struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

/*
GET /api/v1/video/embed.

Request:
  - url: string (required)

Response:
  - 200: Embed
  - 400: VALIDATION_ERROR: Missing url
  - 404: NOT_FOUND: Unrecognised link shape
*/
func (handler *Handler) embed(writer http.ResponseWriter, request *http.Request) {
	link := request.URL.Query().Get("url")

	v := &validate.Validator{}
	if err := v.Required("url", link).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, ok := ExtractID(link)
	if !ok {
		requestutil.Logger(request).DebugContext(request.Context(), "video_link_unrecognized", slog.String("url", link))
		respond.Error(writer, request, apperr.NotFound("Video"))
		return
	}

	respond.OK(writer, Embed{ID: id, URL: EmbedURL(id)})
}
