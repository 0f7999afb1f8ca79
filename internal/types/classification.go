package types

import "strings"

// ContentType is the kind of entertainment content a trend refers to.
type ContentType string

// Content types a classification may carry.
const (
	ContentMovie             ContentType = "movie"
	ContentTVShow            ContentType = "tv_show"
	ContentWebSeries         ContentType = "web_series"
	ContentEntertainmentNews ContentType = "entertainment_news"
	ContentActor             ContentType = "actor"
	ContentDirector          ContentType = "director"
	ContentOther             ContentType = "other"
	ContentUnknown           ContentType = "unknown"
)

// ParseContentType normalizes free-form content type labels ("TV show", "tv", "web series")
// into a ContentType. Unrecognized labels map to ContentOther; empty maps to ContentUnknown.
func ParseContentType(s string) ContentType {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	switch norm {
	case "":
		return ContentUnknown
	case "movie", "film":
		return ContentMovie
	case "tv_show", "tv", "tvshow", "tv_series", "television":
		return ContentTVShow
	case "web_series", "webseries":
		return ContentWebSeries
	case "entertainment_news", "news":
		return ContentEntertainmentNews
	case "actor", "actress":
		return ContentActor
	case "director":
		return ContentDirector
	case "unknown":
		return ContentUnknown
	default:
		return ContentOther
	}
}

// Classification is the verdict for one candidate at one tier.
type Classification struct {
	IsEntertainment bool        `json:"is_entertainment"`
	Confidence      float64     `json:"confidence"`
	ContentType     ContentType `json:"content_type"`
	SpecificContent string      `json:"specific_content"`
	Reasoning       string      `json:"reasoning"`
}

// NoEvidence is the defined classification for a candidate with zero search results.
func NoEvidence() Classification {
	return Classification{
		IsEntertainment: false,
		Confidence:      0.0,
		ContentType:     ContentUnknown,
		SpecificContent: "",
		Reasoning:       "no evidence",
	}
}

// ClampConfidence bounds a confidence value to [0, 1].
func ClampConfidence(v float64) float64 {
	if v != v { // NaN
		return 0
	}
	return max(0, min(1, v))
}

// ResolvedAt names the pipeline state whose classification is final for a trend.
type ResolvedAt string

const (
	// ResolvedManual means the trend stopped after the manual tier
	ResolvedManual ResolvedAt = "manual"
	// ResolvedModel means the trend stopped after the model tier
	ResolvedModel ResolvedAt = "model"
	// ResolvedFinal means the trend went through the exhaustive final pass
	ResolvedFinal ResolvedAt = "final"
)

// ClassifiedTrend is the final per-candidate record ready for identifier resolution.
type ClassifiedTrend struct {
	Candidate           TrendCandidate `json:"candidate"`
	FinalSearchResults  []SearchResult `json:"final_search_results"`
	FinalClassification Classification `json:"final_classification"`
	ResolvedAt          ResolvedAt     `json:"resolved_at"`
}

// PersistableRecord is one stored row: a single evidence result of an entertainment trend.
type PersistableRecord struct {
	Keyword         string  `json:"keyword"`
	Title           string  `json:"movie_name"`
	IMDbID          string  `json:"imdb_id"`
	Source          string  `json:"source"`
	Link            string  `json:"link"`
	SearchQuery     string  `json:"search_query"`
	Snippet         string  `json:"snippet"`
	ContentType     string  `json:"content_type"`
	Confidence      float64 `json:"confidence"`
	Reasoning       string  `json:"reasoning"`
	SpecificContent string  `json:"specific_content"`
	ArticleContent  string  `json:"article_content"`
	// DaysOld is the result's age when the run finished, -1 when its date is unknown
	DaysOld int `json:"days_old"`
}

// RecordsFor expands a classified trend into persistable rows, one per final search result.
// Non-entertainment trends produce no rows. Result ages are measured from now.
func RecordsFor(t ClassifiedTrend, canonicalID string, now time.Time) []PersistableRecord {
	if !t.FinalClassification.IsEntertainment {
		return nil
	}
	records := make([]PersistableRecord, 0, len(t.FinalSearchResults))
	for _, r := range t.FinalSearchResults {
		records = append(records, PersistableRecord{
			Keyword:         t.Candidate.Text,
			Title:           r.Title,
			IMDbID:          canonicalID,
			Source:          string(t.Candidate.Origin),
			Link:            r.URL,
			SearchQuery:     r.Query,
			Snippet:         r.Snippet,
			ContentType:     string(t.FinalClassification.ContentType),
			Confidence:      t.FinalClassification.Confidence,
			Reasoning:       t.FinalClassification.Reasoning,
			SpecificContent: t.FinalClassification.SpecificContent,
			ArticleContent:  t.Candidate.ArticleContent,
			DaysOld:         r.DaysOld(now),
		})
	}
	return records
}
