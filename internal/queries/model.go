package queries

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/trend-resolver/internal/llm"
	"github.com/jonathan/trend-resolver/internal/prompts"
	"github.com/jonathan/trend-resolver/internal/types"
)

// DefaultArticlePrefix is how much scraped article text goes into the prompt.
const DefaultArticlePrefix = 1000

// ModelGenerator asks the language model for context-aware search queries.
type ModelGenerator struct {
	Client        llm.Client
	Tier          llm.ModelTier
	ArticlePrefix int
	Logger        *zap.Logger
}

// NewModelGenerator returns a generator using the lite model tier.
func NewModelGenerator(client llm.Client, logger *zap.Logger) *ModelGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModelGenerator{
		Client:        client,
		Tier:          llm.TierLite,
		ArticlePrefix: DefaultArticlePrefix,
		Logger:        logger,
	}
}

// BuildPrompt renders the query-generation prompt for a candidate.
func (g *ModelGenerator) BuildPrompt(c types.TrendCandidate) (string, error) {
	article := ""
	if c.ArticleContent != "" {
		article = fmt.Sprintf("\nArticle content (first %d chars):\n%s\n",
			g.ArticlePrefix, llm.Truncate(c.ArticleContent, g.ArticlePrefix))
	}
	return prompts.Render(prompts.QueriesFile, prompts.SearchQueriesKey, map[string]string{
		"Trend":     c.Text,
		"Breakdown": c.Context,
		"Source":    string(c.Origin),
		"Article":   article,
	})
}

// Generate returns up to MaxQueries model-suggested queries. Any failure yields an empty
// slice together with the error; callers treat that as "no new queries".
func (g *ModelGenerator) Generate(ctx context.Context, c types.TrendCandidate) ([]types.Query, error) {
	if strings.TrimSpace(c.Text) == "" {
		return nil, nil
	}
	if g.Client == nil {
		return nil, &llm.Error{Kind: llm.ErrNotConfigured, Message: "no language model configured"}
	}

	prompt, err := g.BuildPrompt(c)
	if err != nil {
		return nil, fmt.Errorf("failed to build query prompt: %w", err)
	}

	text, err := g.Client.GenerateText(ctx, prompt, g.Tier)
	if err != nil {
		return nil, err
	}

	out := ParseModelQueries(text)
	g.Logger.Debug("model queries generated", zap.String("trend", c.Text), zap.Int("count", len(out)))
	return out, nil
}

var listMarker = regexp.MustCompile(`^(?:\d+[.)]|[*•])\s+`)

// ParseModelQueries splits a model response into queries: one per line, comment lines
// (# or //), dash lines and headings ending in ':' discarded, list numbering and quote
// marks stripped, capped at MaxQueries.
func ParseModelQueries(text string) []types.Query {
	var raw []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") ||
			strings.HasPrefix(line, "-") || strings.HasSuffix(line, ":") || strings.HasPrefix(line, "```") {
			continue
		}
		line = listMarker.ReplaceAllString(line, "")
		line = strings.ReplaceAll(line, `"`, "")
		line = strings.Trim(line, "'` ")
		raw = append(raw, line)
	}
	return dedupe(raw, types.TierModel)
}
