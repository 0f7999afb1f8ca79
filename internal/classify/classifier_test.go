package classify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jonathan/trend-resolver/internal/llm"
	"github.com/jonathan/trend-resolver/internal/llm/llmtest"
	"github.com/jonathan/trend-resolver/internal/types"
)

var deadpoolEvidence = []types.SearchResult{
	{Title: "Deadpool & Wolverine (2024) - IMDb", URL: "https://www.imdb.com/title/tt6263850/", Snippet: "Marvel film starring Ryan Reynolds"},
	{Title: "Deadpool & Wolverine box office", URL: "https://variety.com/x", Snippet: "record opening"},
}

func TestClassify_ModelVerdict(t *testing.T) {
	fake := &llmtest.Fake{Responses: []string{"```json\n" + `{
		"is_entertainment": true,
		"confidence": 0.95,
		"content_type": "movie",
		"specific_content": " Deadpool & Wolverine ",
		"reasoning": "Results are about the film"
	}` + "\n```"}}
	c := New(fake, zaptest.NewLogger(t))

	got, err := c.Classify(context.Background(), types.TrendCandidate{Text: "Deadpool & Wolverine"}, deadpoolEvidence)
	require.NoError(t, err)
	assert.True(t, got.IsEntertainment)
	assert.Equal(t, 0.95, got.Confidence)
	assert.Equal(t, types.ContentMovie, got.ContentType)
	assert.Equal(t, "Deadpool & Wolverine", got.SpecificContent)
}

func TestClassify_NoEvidenceSkipsModel(t *testing.T) {
	fake := &llmtest.Fake{}
	c := New(fake, zaptest.NewLogger(t))

	got, err := c.Classify(context.Background(), types.TrendCandidate{Text: "Ghost"}, nil)
	require.NoError(t, err)
	assert.Equal(t, types.NoEvidence(), got)
	assert.Zero(t, fake.Calls())
}

func TestClassify_FallbackOnMalformedOutput(t *testing.T) {
	tests := []struct {
		name string
		resp string
	}{
		{"prose", "It is a movie, definitely."},
		{"missing field", `{"is_entertainment": true, "confidence": 0.9, "content_type": "movie", "specific_content": "X"}`},
		{"confidence out of range", `{"is_entertainment": true, "confidence": 9, "content_type": "movie", "specific_content": "X", "reasoning": "r"}`},
		{"wrong type", `{"is_entertainment": "true", "confidence": 0.9, "content_type": "movie", "specific_content": "X", "reasoning": "r"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(&llmtest.Fake{Responses: []string{tt.resp}}, zaptest.NewLogger(t))

			got, err := c.Classify(context.Background(), types.TrendCandidate{Text: "Deadpool & Wolverine"}, deadpoolEvidence)
			var outErr *ModelOutputError
			require.ErrorAs(t, err, &outErr)
			assert.Equal(t, "Deadpool & Wolverine", outErr.Trend)

			assert.Equal(t, KeywordClassify("Deadpool & Wolverine", deadpoolEvidence), got)
		})
	}
}

func TestClassify_FallbackOnModelFailure(t *testing.T) {
	callErr := &llm.Error{Kind: llm.ErrRequestFailed, Message: "timeout"}
	c := New(&llmtest.Fake{Err: callErr}, zaptest.NewLogger(t))

	got, err := c.Classify(context.Background(), types.TrendCandidate{Text: "Deadpool & Wolverine"}, deadpoolEvidence)
	assert.True(t, errors.Is(err, callErr))
	assert.True(t, got.IsEntertainment)
	assert.Contains(t, got.Reasoning, "Keyword-based")
}

func TestClassify_NilClientUsesKeywords(t *testing.T) {
	c := New(nil, nil)
	got, err := c.Classify(context.Background(), types.TrendCandidate{Text: "Deadpool & Wolverine"}, deadpoolEvidence)
	require.NoError(t, err)
	assert.Contains(t, got.Reasoning, "Keyword-based")
}

func TestParseVerdict_ClearsTitleWhenNotEntertainment(t *testing.T) {
	got, err := ParseVerdict("Super Bowl 2025", `{
		"is_entertainment": false, "confidence": 0.1, "content_type": "other",
		"specific_content": "Super Bowl LIX", "reasoning": "sports event"}`)
	require.NoError(t, err)
	assert.False(t, got.IsEntertainment)
	assert.Empty(t, got.SpecificContent)
	assert.Equal(t, types.ContentOther, got.ContentType)
}

func TestParseVerdict_NormalizesContentType(t *testing.T) {
	got, err := ParseVerdict("The Bear", `{"is_entertainment": true, "confidence": 1, "content_type": "TV show",
		"specific_content": "The Bear", "reasoning": "FX series"}`)
	require.NoError(t, err)
	assert.Equal(t, types.ContentTVShow, got.ContentType)
}

func TestBuildPrompt(t *testing.T) {
	results := make([]types.SearchResult, 7)
	for i := range results {
		results[i] = types.SearchResult{Title: "t", URL: "https://example.com", Snippet: "s"}
	}
	cand := types.TrendCandidate{
		Text:           "Wednesday",
		Context:        "Netflix series",
		ArticleContent: strings.Repeat("a", 800),
	}

	prompt, err := New(nil, nil).BuildPrompt(cand, results)
	require.NoError(t, err)
	assert.Contains(t, prompt, `trending topic "Wednesday"`)
	assert.Contains(t, prompt, "Result 5:")
	assert.NotContains(t, prompt, "Result 6:")
	assert.Contains(t, prompt, "Trend breakdown: Netflix series")
	assert.Contains(t, prompt, strings.Repeat("a", 500)+"...")
	assert.NotContains(t, prompt, strings.Repeat("a", 501))
	assert.Contains(t, prompt, `"specific_content"`)
	assert.NotContains(t, prompt, "{{.")
}

func TestBuildPrompt_NoContext(t *testing.T) {
	prompt, err := New(nil, nil).BuildPrompt(types.TrendCandidate{Text: "Oscars"}, deadpoolEvidence)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Trend context:\n(none)")
}
