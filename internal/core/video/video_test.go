// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/chronomap/internal/core/video"
)

/*
TestExtractID covers the three supported link shapes and rejects the rest.
*/
func TestExtractID(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
		ok   bool
	}{
		{"Short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"Short link with params", "https://youtu.be/dQw4w9WgXcQ?t=42", "dQw4w9WgXcQ", true},
		{"Watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=x", "dQw4w9WgXcQ", true},
		{"Embed URL", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"Channel page", "https://www.youtube.com/@history", "", false},
		{"Empty short link", "https://youtu.be/", "", false},
		{"Not a URL", "not a url", "", false},
		{"Empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := video.ExtractID(tt.link)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestEmbedURL builds the autoplaying player URL.
*/
func TestEmbedURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube-nocookie.com/embed/abc?autoplay=1&rel=0", video.EmbedURL("abc"))
}

/*
TestHandler_Embed resolves links and reports unknown shapes as 404.
*/
func TestHandler_Embed(t *testing.T) {
	router := video.NewHandler().Routes()

	tests := []struct {
		name   string
		link   string
		status int
	}{
		{"Recognised", "https://youtu.be/abc", http.StatusOK},
		{"Unrecognised", "https://vimeo.com/1234", http.StatusNotFound},
		{"Missing", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/embed?url="+url.QueryEscape(tt.link), nil))
			assert.Equal(t, tt.status, recorder.Code)

			if tt.status != http.StatusOK {
				return
			}

			var body struct {
				Data video.Embed `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, "abc", body.Data.ID)
		})
	}
}
