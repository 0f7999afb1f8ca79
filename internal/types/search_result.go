package types

import "time"

// SearchResult is a single web search hit used as classification evidence.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	// PublishedAt is nil when the publication date is unknown; unknown is a valid value.
	PublishedAt *time.Time `json:"published_at,omitempty"`
	// Query is the search string that produced this result
	Query string `json:"search_query,omitempty"`
}

// Valid reports whether the result can be used as evidence.
func (r SearchResult) Valid() bool {
	return r.URL != ""
}

// DaysOld returns the age of the result in whole days, or -1 when the date is unknown.
func (r SearchResult) DaysOld(now time.Time) int {
	if r.PublishedAt == nil {
		return -1
	}
	return int(now.Sub(*r.PublishedAt).Hours() / 24)
}
