// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package video turns event video links into embeddable player URLs.
package video

import (
	"net/url"
	"strings"
)

// embedBase is the privacy-enhanced player host.
const embedBase = "https://www.youtube-nocookie.com/embed/"

// ExtractID returns the provider video id of link.
//
// Recognised shapes:
//
//	https://youtu.be/<id>
//	https://www.youtube.com/watch?v=<id>
//	https://www.youtube.com/embed/<id>
//
// Anything else, including unparseable input, reports false.
func ExtractID(link string) (string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(link))
	if err != nil || parsed.Host == "" {
		return "", false
	}

	if strings.Contains(parsed.Hostname(), "youtu.be") {
		id, _, _ := strings.Cut(strings.TrimPrefix(parsed.Path, "/"), "/")
		return id, id != ""
	}

	if id := parsed.Query().Get("v"); id != "" {
		return id, true
	}

	segments := strings.Split(parsed.Path, "/")
	for i, segment := range segments {
		if segment == "embed" && i+1 < len(segments) && segments[i+1] != "" {
			return segments[i+1], true
		}
	}

	return "", false
}

// EmbedURL returns the autoplaying player URL for id.
func EmbedURL(id string) string {
	return embedBase + url.PathEscape(id) + "?autoplay=1&rel=0"
}
