package classify

import (
	"fmt"
	"strings"

	"github.com/jonathan/trend-resolver/internal/types"
)

// Keyword fallback thresholds. A trend is entertainment only when the entertainment
// ratio clears entertainmentFloor, beats the non-entertainment ratio, and the
// non-entertainment ratio stays under nonEntertainmentCeiling.
const (
	entertainmentFloor      = 0.4
	nonEntertainmentCeiling = 0.3
)

var entertainmentKeywords = []string{
	"movie", "film", "cinema", "tv show", "series", "television", "streaming",
	"netflix", "disney", "hbo", "amazon prime", "hulu", "imdb", "trailer",
	"cast", "director", "actor", "actress", "studio", "entertainment",
	"box office", "rating", "review", "episode", "season", "premiere",
	"web series", "documentary", "animation", "comedy", "drama",
	"thriller", "horror", "romance", "action", "sci-fi", "fantasy",
}

var nonEntertainmentKeywords = []string{
	"sport", "football", "basketball", "soccer", "baseball", "hockey", "tennis",
	"golf", "cricket", "rugby", "olympics", "championship", "tournament",
	"politics", "election", "government", "president", "minister", "parliament",
	"technology", "gadget", "app", "software", "hardware", "computer",
	"business", "finance", "economy", "stock", "market", "investment",
	"science", "health", "medical", "education", "school", "university",
	"food", "restaurant", "cooking", "recipe", "travel", "tourism", "vacation",
}

// KeywordScore counts results containing at least one keyword of each set.
type KeywordScore struct {
	Entertainment    int
	NonEntertainment int
	Total            int
}

// Ratios returns both scores divided by the result count (0 when there are no results).
func (s KeywordScore) Ratios() (ent, nonEnt float64) {
	if s.Total == 0 {
		return 0, 0
	}
	return float64(s.Entertainment) / float64(s.Total), float64(s.NonEntertainment) / float64(s.Total)
}

// ScoreResults scores every result; each keyword set counts at most once per result.
// Matching is a case-insensitive substring test over title, snippet and URL.
func ScoreResults(results []types.SearchResult) KeywordScore {
	score := KeywordScore{Total: len(results)}
	for _, r := range results {
		text := strings.ToLower(r.Title + " " + r.Snippet + " " + r.URL)
		if containsAny(text, entertainmentKeywords) {
			score.Entertainment++
		}
		if containsAny(text, nonEntertainmentKeywords) {
			score.NonEntertainment++
		}
	}
	return score
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// KeywordClassify is the deterministic fallback classifier. It is biased toward
// precision: mixed evidence is classified as not entertainment.
func KeywordClassify(trend string, results []types.SearchResult) types.Classification {
	if len(results) == 0 {
		return types.NoEvidence()
	}

	score := ScoreResults(results)
	ent, nonEnt := score.Ratios()
	isEnt := ent > entertainmentFloor && ent > nonEnt && nonEnt < nonEntertainmentCeiling

	c := types.Classification{
		IsEntertainment: isEnt,
		Confidence:      types.ClampConfidence(ent),
		ContentType:     types.ContentOther,
		Reasoning: fmt.Sprintf("Keyword-based classification (entertainment: %d, non-entertainment: %d, total: %d)",
			score.Entertainment, score.NonEntertainment, score.Total),
	}
	if isEnt {
		c.ContentType = types.ContentMovie
		c.SpecificContent = trend
	}
	return c
}
