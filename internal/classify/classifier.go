// Package classify decides whether a trend is entertainment from its search evidence.
//
// The language model is asked first and its answer must pass strict schema validation;
// anything else falls back to deterministic keyword scoring.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/trend-resolver/internal/llm"
	"github.com/jonathan/trend-resolver/internal/prompts"
	"github.com/jonathan/trend-resolver/internal/schemas"
	"github.com/jonathan/trend-resolver/internal/types"
)

// Defaults for prompt construction.
const (
	MaxEvidence          = 5
	DefaultContextPrefix = 500
	noContextPlaceholder = "(none)"
)

// ModelOutputError means the model answered but the answer was unusable.
type ModelOutputError struct {
	Trend   string
	Message string
	Raw     string
	Cause   error
}

func (e *ModelOutputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed classification for %q: %s: %v", e.Trend, e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed classification for %q: %s", e.Trend, e.Message)
}

func (e *ModelOutputError) Unwrap() error {
	return e.Cause
}

// Classifier turns search evidence into a Classification.
type Classifier struct {
	Client        llm.Client
	Tier          llm.ModelTier
	ContextPrefix int
	Logger        *zap.Logger
}

// New creates a classifier. A nil client makes every call use the keyword fallback.
func New(client llm.Client, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		Client:        client,
		Tier:          llm.TierStandard,
		ContextPrefix: DefaultContextPrefix,
		Logger:        logger,
	}
}

type modelVerdict struct {
	IsEntertainment bool    `json:"is_entertainment"`
	Confidence      float64 `json:"confidence"`
	ContentType     string  `json:"content_type"`
	SpecificContent string  `json:"specific_content"`
	Reasoning       string  `json:"reasoning"`
}

// Classify always returns a usable Classification. With no results it returns the
// no-evidence verdict without calling the model. When the model path fails the keyword
// fallback is returned together with the model error (*llm.Error or *ModelOutputError).
func (c *Classifier) Classify(ctx context.Context, cand types.TrendCandidate, results []types.SearchResult) (types.Classification, error) {
	if len(results) == 0 {
		return types.NoEvidence(), nil
	}
	if c.Client == nil {
		return KeywordClassify(cand.Text, results), nil
	}

	verdict, err := c.classifyWithModel(ctx, cand, results)
	if err != nil {
		c.Logger.Warn("model classification failed, using keyword fallback",
			zap.String("trend", cand.Text), zap.Error(err))
		return KeywordClassify(cand.Text, results), err
	}
	return verdict, nil
}

func (c *Classifier) classifyWithModel(ctx context.Context, cand types.TrendCandidate, results []types.SearchResult) (types.Classification, error) {
	prompt, err := c.BuildPrompt(cand, results)
	if err != nil {
		return types.Classification{}, fmt.Errorf("failed to build classification prompt: %w", err)
	}

	raw, err := c.Client.GenerateJSON(ctx, prompt, c.Tier)
	if err != nil {
		return types.Classification{}, err
	}
	return ParseVerdict(cand.Text, raw)
}

// ParseVerdict validates a raw model response and converts it to a Classification.
func ParseVerdict(trend, raw string) (types.Classification, error) {
	cleaned := llm.CleanJSONBlock(raw)
	if err := schemas.ValidateClassification(cleaned); err != nil {
		return types.Classification{}, &ModelOutputError{Trend: trend, Message: "response failed schema validation", Raw: raw, Cause: err}
	}

	var v modelVerdict
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		return types.Classification{}, &ModelOutputError{Trend: trend, Message: "response is not valid JSON", Raw: raw, Cause: err}
	}

	out := types.Classification{
		IsEntertainment: v.IsEntertainment,
		Confidence:      types.ClampConfidence(v.Confidence),
		ContentType:     types.ParseContentType(v.ContentType),
		SpecificContent: strings.TrimSpace(v.SpecificContent),
		Reasoning:       v.Reasoning,
	}
	if !out.IsEntertainment {
		out.SpecificContent = ""
	}
	return out, nil
}

// BuildPrompt renders the classification prompt from the top results and the trend context.
func (c *Classifier) BuildPrompt(cand types.TrendCandidate, results []types.SearchResult) (string, error) {
	var rb strings.Builder
	for i, r := range results[:min(len(results), MaxEvidence)] {
		fmt.Fprintf(&rb, "Result %d:\nTitle: %s\nSnippet: %s\nURL: %s\n\n", i+1, r.Title, r.Snippet, r.URL)
	}

	var cb strings.Builder
	if ctxText := strings.TrimSpace(cand.Context); ctxText != "" {
		fmt.Fprintf(&cb, "Trend breakdown: %s\n", ctxText)
	}
	if cand.ArticleContent != "" {
		fmt.Fprintf(&cb, "Article context: %s...\n", llm.Truncate(cand.ArticleContent, c.ContextPrefix))
	}
	trendContext := cb.String()
	if trendContext == "" {
		trendContext = noContextPlaceholder
	}

	return prompts.Render(prompts.ClassificationFile, prompts.ClassifyTrendKey, map[string]string{
		"Trend":   cand.Text,
		"Context": trendContext,
		"Results": strings.TrimSpace(rb.String()),
		"Schema":  llm.ClassificationSchema().Format(),
	})
}
