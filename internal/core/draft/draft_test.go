// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package draft_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/taibuivan/chronomap/internal/core/draft"
	"github.com/taibuivan/chronomap/internal/platform/apperr"
)

var fixedNow = time.UnixMilli(1760000000000)

func validForm() draft.Form {
	return draft.Form{
		Title:   "Bataille de Verdun",
		Start:   "1916-02-21",
		Summary: "Front ouest",
		YouTube: "https://youtu.be/abc",
	}
}

/*
TestBuild fills defaults and renders the YAML record.
*/
func TestBuild(t *testing.T) {
	record, document, err := draft.Build(validForm(), &draft.Point{Lat: 49.2075123, Lng: 5.4213987}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "bataille-de-verdun", record.ID)
	assert.Equal(t, "1916-02-21", record.EndDate)
	assert.Equal(t, 49.20751, record.Lat)
	assert.Equal(t, 5.4214, record.Lng)

	var decoded draft.Record
	require.NoError(t, yaml.Unmarshal([]byte(document), &decoded))
	assert.Equal(t, record, decoded)
	assert.Contains(t, document, "youtube_url: https://youtu.be/abc")
}

/*
TestBuild_Identifier prefers the given id, then the slug, then a timestamp.
*/
func TestBuild_Identifier(t *testing.T) {
	point := &draft.Point{}

	form := validForm()
	form.ID = "verdun-1916"
	record, _, err := draft.Build(form, point, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "verdun-1916", record.ID)

	form = validForm()
	form.Title = "!!!"
	record, _, err = draft.Build(form, point, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "evt-1760000000000", record.ID)
}

/*
TestBuild_Validation reports every missing or unreadable field.
*/
func TestBuild_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*draft.Form)
		point  *draft.Point
		fields []string
	}{
		{"Missing title", func(f *draft.Form) { f.Title = " " }, &draft.Point{}, []string{"title"}},
		{"Missing start", func(f *draft.Form) { f.Start = "" }, &draft.Point{}, []string{"start"}},
		{"Missing video", func(f *draft.Form) { f.YouTube = "" }, &draft.Point{}, []string{"youtube_url"}},
		{"Missing point", func(*draft.Form) {}, nil, []string{"point"}},
		{"Unreadable start", func(f *draft.Form) { f.Start = "vers 1916" }, &draft.Point{}, []string{"start"}},
		{"End before start", func(f *draft.Form) { f.End = "1915-01-01" }, &draft.Point{}, []string{"end"}},
		{"Latitude out of range", func(*draft.Form) {}, &draft.Point{Lat: 91}, []string{"point.lat"}},
		{"Relative video link", func(f *draft.Form) { f.YouTube = "watch?v=abc" }, &draft.Point{}, []string{"youtube_url"}},
		{"Invalid id", func(f *draft.Form) { f.ID = "Verdun 1916" }, &draft.Point{}, []string{"id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			_, document, err := draft.Build(form, tt.point, fixedNow)
			require.Error(t, err)
			assert.Empty(t, document)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

			var fields []string
			for _, detail := range appErr.Details {
				fields = append(fields, detail.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

/*
TestHandler_Export serves JSON and raw YAML.
*/
func TestHandler_Export(t *testing.T) {
	router := chi.NewRouter()
	draft.NewHandler().Register(router)

	body := `{"title":"Bataille de Verdun","start":"1916-02-21","youtube_url":"https://youtu.be/abc","point":{"lat":49.2,"lng":5.4}}`

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/draft?format=yaml", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "id: bataille-de-verdun")

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/draft", strings.NewReader(`{"title":"x"}`)))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
