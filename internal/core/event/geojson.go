// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package event

// # Map Point Layer

// FeatureCollection is the GeoJSON payload consumed by the map point source.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single GeoJSON point feature.
type Feature struct {
	Type       string            `json:"type"`
	Geometry   Geometry          `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

// Geometry is a GeoJSON point. Coordinates are [lng, lat].
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// FeatureProperties carries the fields needed by the popup.
type FeatureProperties struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Summary string `json:"summary"`
	YouTube string `json:"youtube"`
}

// ToFeatureCollection converts events into a point feature collection.
// An empty input yields an empty (non-nil) feature list.
func ToFeatureCollection(events []Event) FeatureCollection {
	features := make([]Feature, 0, len(events))
	for _, e := range events {
		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: [2]float64{e.Lng, e.Lat},
			},
			Properties: FeatureProperties{
				ID:      e.ID,
				Title:   e.Title,
				Start:   e.Start,
				End:     e.End,
				Summary: e.Summary,
				YouTube: e.YouTube,
			},
		})
	}

	return FeatureCollection{Type: "FeatureCollection", Features: features}
}
