// Package types provides type definitions for the trend records, search evidence and
// classifications that flow through the trend resolution pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Origin identifies the source a trend was harvested from.
type Origin string

// Origins in deduplication priority order (highest first).
const (
	// OriginGoogleTrends is the Google Trends trending page (source_a)
	OriginGoogleTrends Origin = "google_trends"
	// OriginTMDB is the TMDB weekly trending feed (source_b)
	OriginTMDB Origin = "tmdb"
	// OriginReddit is the Reddit /r/movies hot listing (source_c)
	OriginReddit Origin = "reddit"
	// OriginTwitter is the trends24 Twitter trends page (source_d)
	OriginTwitter Origin = "twitter"
	// OriginFallback is the static keyword list used when every source is empty
	OriginFallback Origin = "fallback"
)

// OriginPriority lists the harvested origins in the order they win deduplication.
var OriginPriority = []Origin{OriginGoogleTrends, OriginTMDB, OriginReddit, OriginTwitter}

// Rank returns the deduplication rank of an origin; lower wins. Unknown origins rank last.
func (o Origin) Rank() int {
	for i, p := range OriginPriority {
		if p == o {
			return i
		}
	}
	if o == OriginFallback {
		return len(OriginPriority)
	}
	return len(OriginPriority) + 1
}

// RawTrendRecord is a trend exactly as a source adapter produced it.
type RawTrendRecord struct {
	Trend       string `json:"trend"`
	Breakdown   string `json:"breakdown,omitempty"`
	Link        string `json:"link,omitempty"`
	Origin      Origin `json:"source"`
	ContentType string `json:"content_type,omitempty"` // movie / tv when the source tags it
}

// TrendCandidate is one deduplicated topic under evaluation.
// Text is the deduplication key and is kept exactly as observed.
type TrendCandidate struct {
	Text            string `json:"trend"`
	Origin          Origin `json:"source"`
	Context         string `json:"breakdown,omitempty"`
	SourceURL       string `json:"link,omitempty"`
	ContentTypeHint string `json:"content_type,omitempty"`
	// ArticleContent is scraped enrichment attached before model query generation
	ArticleContent string `json:"article_content,omitempty"`
}

// CandidateFromRecord converts a raw record into a candidate.
func CandidateFromRecord(r RawTrendRecord) TrendCandidate {
	return TrendCandidate{
		Text:            r.Trend,
		Origin:          r.Origin,
		Context:         r.Breakdown,
		SourceURL:       r.Link,
		ContentTypeHint: r.ContentType,
	}
}

// HasContext reports whether the candidate carries a context hint distinct from its text.
func (c TrendCandidate) HasContext() bool {
	ctx := strings.TrimSpace(c.Context)
	return ctx != "" && ctx != c.Text
}

// WithArticle returns a copy of the candidate carrying scraped article text.
func (c TrendCandidate) WithArticle(content string) TrendCandidate {
	c.ArticleContent = content
	return c
}

// QueryTier names the generator that produced a query.
type QueryTier string

const (
	// TierManual marks template-generated queries
	TierManual QueryTier = "manual"
	// TierModel marks language-model generated queries
	TierModel QueryTier = "model"
)

// Query is a single search string tagged with its generation tier.
type Query struct {
	Text string    `json:"text"`
	Tier QueryTier `json:"tier"`
}

// QueryTexts returns the raw strings of a query slice.
func QueryTexts(queries []Query) []string {
	out := make([]string, len(queries))
	for i, q := range queries {
		out[i] = q.Text
	}
	return out
}
