// Package queries builds the web search queries used to probe whether a trend is entertainment.
//
// Manual queries come from fixed templates and never fail. Model queries come from the
// language model and are only requested for escalated candidates.
package queries

import (
	"fmt"
	"strings"

	"github.com/jonathan/trend-resolver/internal/types"
)

// MaxQueries caps the queries produced per candidate by either generator.
const MaxQueries = 5

var entertainmentSuffixes = []string{
	"movie",
	"TV show",
	"series",
	"film",
	"trailer",
	"cast",
	"director",
	"IMDb",
	"review",
	"streaming",
	"Netflix",
	"Disney",
	"HBO",
	"Amazon Prime",
	"release date",
	"box office",
	"rating",
	"plot",
	"genre",
	"entertainment news",
}

var contextSuffixes = []string{"movie", "show", "entertainment"}

var contentTypeSuffixes = map[string][]string{
	"movie": {"movie review", "film analysis", "cinema"},
	"tv":    {"TV series", "show episodes", "television"},
}

// Manual returns the template queries for a candidate, deduplicated case-insensitively in
// first-seen order and capped at MaxQueries. The result depends only on the candidate.
func Manual(c types.TrendCandidate) []types.Query {
	trend := strings.TrimSpace(c.Text)
	if trend == "" {
		return nil
	}

	raw := make([]string, 0, len(entertainmentSuffixes)+6)
	for _, s := range entertainmentSuffixes {
		raw = append(raw, trend+" "+s)
	}
	if c.HasContext() {
		ctx := strings.TrimSpace(c.Context)
		for _, s := range contextSuffixes {
			raw = append(raw, fmt.Sprintf("%s %s %s", trend, ctx, s))
		}
	}
	if extra, ok := contentTypeSuffixes[normalizeHint(c.ContentTypeHint)]; ok {
		for _, s := range extra {
			raw = append(raw, trend+" "+s)
		}
	}

	return dedupe(raw, types.TierManual)
}

func normalizeHint(hint string) string {
	switch types.ParseContentType(hint) {
	case types.ContentMovie:
		return "movie"
	case types.ContentTVShow:
		return "tv"
	default:
		return ""
	}
}

// dedupe trims, drops empties and case-insensitive repeats, and caps at MaxQueries.
func dedupe(raw []string, tier types.QueryTier) []types.Query {
	seen := make(map[string]struct{}, len(raw))
	out := make([]types.Query, 0, MaxQueries)
	for _, q := range raw {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		key := strings.ToLower(q)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, types.Query{Text: q, Tier: tier})
		if len(out) == MaxQueries {
			break
		}
	}
	return out
}
