package aggregate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/trend-resolver/internal/types"
)

func texts(cs []types.TrendCandidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Text
	}
	return out
}

func TestCandidates_FirstOccurrenceWins(t *testing.T) {
	google := []types.RawTrendRecord{
		{Trend: "Deadpool & Wolverine", Origin: types.OriginGoogleTrends, Breakdown: "deadpool box office"},
		{Trend: "Super Bowl 2025", Origin: types.OriginGoogleTrends},
	}
	tmdb := []types.RawTrendRecord{
		{Trend: "Deadpool & Wolverine", Origin: types.OriginTMDB, ContentType: "movie"},
		{Trend: "The Bear", Origin: types.OriginTMDB, ContentType: "tv"},
	}

	got := Candidates(google, tmdb)
	require.Len(t, got, 3)
	if diff := cmp.Diff([]string{"Deadpool & Wolverine", "Super Bowl 2025", "The Bear"}, texts(got)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, types.OriginGoogleTrends, got[0].Origin)
	assert.Equal(t, "deadpool box office", got[0].Context)
	assert.Empty(t, got[0].ContentTypeHint, "losing duplicate contributes nothing")
}

func TestCandidates_CaseSensitiveKey(t *testing.T) {
	got := Candidates([]types.RawTrendRecord{
		{Trend: "Barbie", Origin: types.OriginReddit},
		{Trend: "barbie", Origin: types.OriginReddit},
	})
	assert.Len(t, got, 2)
}

func TestCandidates_DropsBlank(t *testing.T) {
	got := Candidates([]types.RawTrendRecord{
		{Trend: "", Origin: types.OriginTwitter},
		{Trend: "   \t", Origin: types.OriginTwitter},
		{Trend: "#Oscars", Origin: types.OriginTwitter},
	})
	assert.Equal(t, []string{"#Oscars"}, texts(got))
}

func TestCandidates_Empty(t *testing.T) {
	assert.Empty(t, Candidates())
	assert.Empty(t, Candidates(nil, nil))
}

