package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ClassificationPrompt(t *testing.T) {
	prompt, err := Get(ClassificationFile, ClassifyTrendKey)
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Trend}}")
	assert.Contains(t, prompt, "{{.Results}}")
	assert.Contains(t, prompt, "Super Bowl 2025")
}

func TestGet_QueriesPrompt(t *testing.T) {
	prompt, err := Get(QueriesFile, SearchQueriesKey)
	require.NoError(t, err)
	assert.Contains(t, prompt, "one per line")
}

func TestGet_InvalidFile(t *testing.T) {
	_, err := Get("nonexistent.json", "some-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	_, err := Get(QueriesFile, "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFormat(t *testing.T) {
	out := Format("Trend {{.Trend}} from {{.Source}} ({{.Missing}})", map[string]string{
		"Trend":  "Barbie",
		"Source": "tmdb",
	})
	assert.Equal(t, "Trend Barbie from tmdb ({{.Missing}})", out)
}

func TestFormat_ValueContainingPlaceholder(t *testing.T) {
	// Substituted values are not re-expanded.
	out := Format("{{.A}} {{.B}}", map[string]string{"A": "{{.B}}", "B": "b"})
	assert.Equal(t, "{{.B}} b", out)
}

func TestRender(t *testing.T) {
	out, err := Render(QueriesFile, SearchQueriesKey, map[string]string{
		"Trend": "Wednesday", "Breakdown": "Netflix series", "Source": "tmdb", "Article": "",
	})
	require.NoError(t, err)
	assert.Contains(t, out, `Trending topic: "Wednesday"`)
	assert.NotContains(t, out, "{{.Trend}}")
}

func TestList(t *testing.T) {
	keys, err := List(ClassificationFile)
	require.NoError(t, err)
	assert.Equal(t, []string{ClassifyTrendKey}, keys)
}
