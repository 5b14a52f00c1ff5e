// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/chronomap/internal/core/catalog"
)

func newRouter(cat *catalog.Catalog) http.Handler {
	handler := catalog.NewHandler(cat)

	router := chi.NewRouter()
	router.Mount("/events", handler.EventRoutes())
	router.Mount("/timeline", handler.TimelineRoutes())
	router.Mount("/search", handler.SearchRoutes())
	return router
}

func get(t *testing.T, router http.Handler, path string) (int, map[string]any) {
	t.Helper()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, body
}

/*
TestHandler_ListEvents filters by year and paginates.
*/
func TestHandler_ListEvents(t *testing.T) {
	router := newRouter(fixture(t))

	status, body := get(t, router, "/events?year=1944")
	require.Equal(t, http.StatusOK, status)

	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "dday", data[0].(map[string]any)["id"])
	assert.Equal(t, float64(1), body["meta"].(map[string]any)["total"])

	status, body = get(t, router, "/events?year=abc")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

/*
TestHandler_Timeline returns blocks and ticks.
*/
func TestHandler_Timeline(t *testing.T) {
	router := newRouter(fixture(t))

	status, body := get(t, router, "/timeline/blocks")
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["data"])

	status, body = get(t, router, "/timeline/blocks/8/years")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{float64(1944)}, body["data"])

	status, _ = get(t, router, "/timeline/blocks/99/years")
	assert.Equal(t, http.StatusNotFound, status)
}

/*
TestHandler_ResolveSearch distinguishes presets from text queries.
*/
func TestHandler_ResolveSearch(t *testing.T) {
	router := newRouter(fixture(t))

	_, body := get(t, router, "/search/resolve?q=ww2")
	data := body["data"].(map[string]any)
	assert.Equal(t, "range", data["kind"])
	assert.Equal(t, "1939–1945", data["label"])
	assert.Len(t, data["events"], 1)

	_, body = get(t, router, "/search/resolve?q=normandie")
	data = body["data"].(map[string]any)
	assert.Equal(t, "text", data["kind"])
	assert.Len(t, data["events"], 2)

	_, body = get(t, router, "/search/suggest?q=ww")
	assert.Len(t, body["data"], 2)
}

/*
TestHandler_RandomEvent_Empty returns 404 on an empty catalog.
*/
func TestHandler_RandomEvent_Empty(t *testing.T) {
	router := newRouter(catalog.New(catalog.Options{}))

	status, _ := get(t, router, "/events/random")
	assert.Equal(t, http.StatusNotFound, status)
}

/*
TestHandler_ListEvents_PageBeyondRange returns an empty page for any page
number, including one whose offset overflows an int.
*/
func TestHandler_ListEvents_PageBeyondRange(t *testing.T) {
	router := newRouter(fixture(t))

	for _, page := range []string{"2", "9223372036854775807"} {
		t.Run(page, func(t *testing.T) {
			status, body := get(t, router, "/events?page="+page)
			require.Equal(t, http.StatusOK, status)

			assert.Empty(t, body["data"])
			assert.Equal(t, float64(3), body["meta"].(map[string]any)["total"])
		})
	}
}
