package schema

// PublicEventsTable represents the 'public.events' table
type PublicEventsTable struct {
	Table      string
	ID         string
	Title      string
	StartDate  string
	EndDate    string
	Lat        string
	Lng        string
	Summary    string
	YouTubeURL string
	CreatedAt  string
}

// PublicEvents is the schema definition for public.events
var PublicEvents = PublicEventsTable{
	Table:      "public.events",
	ID:         "id",
	Title:      "title",
	StartDate:  "start_date",
	EndDate:    "end_date",
	Lat:        "lat",
	Lng:        "lng",
	Summary:    "summary",
	YouTubeURL: "youtube_url",
	CreatedAt:  "created_at",
}
