package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/trend-resolver/internal/fetch"
	"github.com/jonathan/trend-resolver/internal/types"
)

// DefaultTrends24URL is the United States page of trends24.in.
const DefaultTrends24URL = "https://trends24.in/united-states/"

// trendLinkSelectors locate topic links, current layout first.
var trendLinkSelectors = []string{
	".trend-card__list li a",
	"ol.trend-card__list a",
	"a.trend-link",
}

// Trends24 scrapes Twitter trending topics from trends24.in.
type Trends24 struct {
	URL     string
	Options *fetch.Options
}

// NewTrends24 creates a trends24 source.
func NewTrends24() *Trends24 {
	opts := fetch.DefaultOptions()
	opts.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	return &Trends24{URL: DefaultTrends24URL, Options: opts}
}

// Origin implements Source.
func (t *Trends24) Origin() types.Origin { return types.OriginTwitter }

// Fetch implements Source.
func (t *Trends24) Fetch(ctx context.Context) ([]types.RawTrendRecord, error) {
	res, err := fetch.URL(ctx, t.URL, t.Options)
	if err != nil {
		return nil, err
	}
	return parseTrends24(res.HTML)
}

func parseTrends24(html string) ([]types.RawTrendRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("trends24: failed to parse page: %w", err)
	}

	seen := make(map[string]struct{})
	var out []types.RawTrendRecord
	for _, selector := range trendLinkSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			topic := fetch.CollapseWhitespace(s.Text())
			if topic == "" || strings.HasPrefix(topic, "http") {
				return
			}
			if _, dup := seen[topic]; dup {
				return
			}
			seen[topic] = struct{}{}
			out = append(out, types.RawTrendRecord{
				Trend:     topic,
				Breakdown: "Twitter trending topic",
				Link:      "https://twitter.com/search?" + url.Values{"q": {topic}}.Encode(),
				Origin:    types.OriginTwitter,
			})
		})
		if len(out) > 0 {
			break
		}
	}
	return out, nil
}
