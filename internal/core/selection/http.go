// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package selection

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/chronomap/internal/core/catalog"
	"github.com/taibuivan/chronomap/internal/platform/apperr"
	requestutil "github.com/taibuivan/chronomap/internal/platform/request"
	"github.com/taibuivan/chronomap/internal/platform/respond"
	"github.com/taibuivan/chronomap/internal/platform/validate"
	"github.com/taibuivan/chronomap/pkg/uuid"
)

// # Handler Implementation

// Handler serves selection sessions: a stored timeline position that the
// client drives with actions and renders from the returned view.
type Handler struct {
	catalog *catalog.Catalog
	store   Store
}

// NewHandler constructs a new session [Handler].
func NewHandler(cat *catalog.Catalog, store Store) *Handler {
	return &Handler{catalog: cat, store: store}
}

// Routes returns the router mounted under /sessions.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.createSession)
	router.Get("/{id}", handler.getSession)
	router.Post("/{id}/actions", handler.dispatchAction)
	return router
}

// sessionResponse is the payload of every session endpoint.
type sessionResponse struct {
	ID    string `json:"id"`
	State State  `json:"state"`
	View  View   `json:"view"`

	// Popup is the event whose detail popup is open after the action.
	Popup string `json:"popup,omitempty"`
}

/*
POST /api/v1/sessions.

Description: Starts a session on the most recent populated block.

Response:
  - 201: sessionResponse
*/
func (handler *Handler) createSession(writer http.ResponseWriter, request *http.Request) {
	sessionID := uuid.New()
	state := Initial(handler.catalog)

	if err := handler.store.Save(request.Context(), sessionID, state); err != nil {
		respond.Error(writer, request, err)
		return
	}

	requestutil.Logger(request).InfoContext(request.Context(), "session_created", slog.String("session_id", sessionID))

	respond.Created(writer, sessionResponse{
		ID:    sessionID,
		State: state,
		View:  Render(state, handler.catalog),
	})
}

/*
GET /api/v1/sessions/{id}.

Response:
  - 200: sessionResponse
  - 404: NOT_FOUND: Unknown or expired session
*/
func (handler *Handler) getSession(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := pathSessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.store.Load(request.Context(), sessionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessionResponse{
		ID:    sessionID,
		State: state,
		View:  Render(state, handler.catalog),
	})
}

/*
POST /api/v1/sessions/{id}/actions.

Description: Applies one action to the session and returns the new view.

Request:
  - Action: JSON body

Response:
  - 200: sessionResponse
  - 400: VALIDATION_ERROR: Unknown type or missing parameters
  - 404: NOT_FOUND: Unknown session, event or suggestion
*/
func (handler *Handler) dispatchAction(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := pathSessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var action Action
	if err := requestutil.DecodeJSON(request, &action); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.validateAction(action); err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.store.Load(request.Context(), sessionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	recorder := &Recorder{}
	logger := requestutil.Logger(request).With(slog.String("session_id", sessionID))
	controller := NewController(handler.catalog, state, recorder.Sinks(), logger)

	view, err := controller.Dispatch(request.Context(), action)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	next := controller.State()
	if err := handler.store.Save(request.Context(), sessionID, next); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessionResponse{
		ID:    sessionID,
		State: next,
		View:  view,
		Popup: recorder.Popup(),
	})
}

// pathSessionID reads the {id} parameter. Session ids are UUIDs; anything
// else cannot exist and is reported as not found.
func pathSessionID(request *http.Request) (string, error) {
	sessionID := requestutil.ID(request, "id")
	if (&validate.Validator{}).UUID("id", sessionID).HasErrors() {
		return "", apperr.NotFound("Session")
	}
	return sessionID, nil
}

// validateAction checks the parameters each action type needs and that
// referenced events, blocks and suggestions exist.
func (handler *Handler) validateAction(action Action) error {
	v := &validate.Validator{}
	v.OneOf("type", string(action.Type),
		string(ActionSelectYear),
		string(ActionSelectBlock),
		string(ActionSearch),
		string(ActionPickSuggestion),
		string(ActionClearSearch),
		string(ActionRandom),
		string(ActionPickEvent),
		string(ActionClickPoint),
	)

	switch action.Type {
	case ActionSelectYear:
		v.Custom("year", action.Year == nil, "This field is required")
	case ActionSelectBlock:
		v.Custom("block", action.Block == nil, "This field is required")
	case ActionPickSuggestion:
		v.Required("label", action.Label)
	case ActionPickEvent, ActionClickPoint:
		v.Required("event_id", action.EventID)
	}

	if err := v.Err(); err != nil {
		return err
	}

	switch action.Type {
	case ActionSelectBlock:
		if _, ok := handler.catalog.Timeline().Block(*action.Block); !ok {
			return apperr.NotFound("Block")
		}
	case ActionPickSuggestion:
		if _, ok := handler.catalog.Resolver().FindByLabel(action.Label); !ok {
			return apperr.NotFound("Suggestion")
		}
	case ActionPickEvent, ActionClickPoint:
		if _, ok := handler.catalog.FindEvent(action.EventID); !ok {
			return apperr.NotFound("Event")
		}
	}

	return nil
}
