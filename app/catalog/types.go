package catalog

import (
	"time"
)

// Status literal used by the source catalog for finished translations.
// Any other status counts as "in progress" for stats purposes.
const StatusCompleted = "Завершен"

// Item is a normalized, validated catalog record. Once constructed it is
// never mutated; a refresh always builds a fresh snapshot.
type Item struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	ReleaseDate    string     `json:"release_date"`
	ReleasedAt     *time.Time `json:"released_at,omitempty"`
	OriginalAuthor string     `json:"original_author"`
	ImageURL       string     `json:"image_url"`
	DownloadURL    string     `json:"download_url"`
	SourceURL      string     `json:"source_url,omitempty"`
	Mirrors        []string   `json:"mirrors"`
	Tags           []string   `json:"tags"`
	Warnings       []string   `json:"warnings"`
	SizeMb         *float64   `json:"size_mb,omitempty"`

	// Haystack is the pre-lowered searchable text blob, built once at
	// normalization time. Text search never touches any other field.
	Haystack string `json:"-"`
}

// Stats is the aggregate triple shown above the card grid.
type Stats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
}

// Sort keys recognized by the view engine.
const (
	SortDateDesc = "date_desc"
	SortDateAsc  = "date_asc"
	SortNameAsc  = "name_asc"
	SortNameDesc = "name_desc"
)

// StatusAll disables status filtering.
const StatusAll = "all"

// QueryState is the search/filter/sort triple driving the visible view.
type QueryState struct {
	Query  string `json:"query"`
	Status string `json:"status"`
	Sort   string `json:"sort"`
}
