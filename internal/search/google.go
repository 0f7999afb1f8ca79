package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/jonathan/trend-resolver/internal/fetch"
	"github.com/jonathan/trend-resolver/internal/types"
)

// googleMaxNum is the Custom Search API's per-request result cap.
const googleMaxNum = 10

// GoogleProvider searches with the Google Custom Search JSON API.
type GoogleProvider struct {
	svc *customsearch.Service
	cx  string
}

// NewGoogleProvider creates a provider for the given API key and search engine ID.
func NewGoogleProvider(ctx context.Context, apiKey, cx string, opts ...option.ClientOption) (*GoogleProvider, error) {
	if apiKey == "" || cx == "" {
		return nil, fmt.Errorf("google custom search requires an API key and engine ID")
	}
	svc, err := customsearch.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &GoogleProvider{svc: svc, cx: cx}, nil
}

// Name implements Provider.
func (g *GoogleProvider) Name() string { return "google" }

// Search implements Provider.
func (g *GoogleProvider) Search(ctx context.Context, req Request) ([]types.SearchResult, error) {
	call := g.svc.Cse.List().Cx(g.cx).Q(req.Query).Num(int64(min(max(req.Limit, 1), googleMaxNum))).Context(ctx)
	if req.MaxAgeDays > 0 {
		call = call.DateRestrict(fmt.Sprintf("d%d", req.MaxAgeDays))
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]types.SearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil || item.Link == "" {
			continue
		}
		results = append(results, types.SearchResult{
			Title:       item.Title,
			URL:         item.Link,
			Snippet:     item.Snippet,
			PublishedAt: pagemapDate(item.Pagemap),
		})
	}
	return results, nil
}

// pagemapDate reads a publication date out of a result's pagemap metatags.
func pagemapDate(raw []byte) *time.Time {
	if len(raw) == 0 {
		return nil
	}
	var pm struct {
		Metatags []map[string]string `json:"metatags"`
	}
	if err := json.Unmarshal(raw, &pm); err != nil {
		return nil
	}
	for _, tags := range pm.Metatags {
		for _, key := range []string{"article:published_time", "og:updated_time", "date", "pubdate"} {
			if t, ok := fetch.ParseDate(tags[key]); ok {
				return &t
			}
		}
	}
	return nil
}
