package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jonathan/trend-resolver/internal/fetch"
	"github.com/jonathan/trend-resolver/internal/types"
)

// DefaultGoogleTrendsURL is the US trending-now page.
const DefaultGoogleTrendsURL = "https://trends.google.com/trending?geo=US"

// RenderFunc renders a JavaScript-built page and returns its HTML.
type RenderFunc func(ctx context.Context, url string, opts fetch.BrowserOptions) (string, error)

// GoogleTrendsSelectors locate the parts of one trending row.
type GoogleTrendsSelectors struct {
	Row       string
	Title     string
	Breakdown string
}

// DefaultGoogleTrendsSelectors matches the trending-now table.
var DefaultGoogleTrendsSelectors = GoogleTrendsSelectors{
	Row:       "tr[data-row-id]",
	Title:     ".mZ3RIc",
	Breakdown: "[data-term]",
}

// GoogleTrends renders the trending-now page in headless Chrome and reads its table.
type GoogleTrends struct {
	URL       string
	Geo       string
	Selectors GoogleTrendsSelectors
	Render    RenderFunc
	Timeout   time.Duration
	Logger    *zap.Logger
}

// NewGoogleTrends creates a Google Trends source rendering through chromedp.
func NewGoogleTrends(logger *zap.Logger) *GoogleTrends {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoogleTrends{
		URL:       DefaultGoogleTrendsURL,
		Geo:       "US",
		Selectors: DefaultGoogleTrendsSelectors,
		Render:    fetch.WithBrowser,
		Timeout:   45 * time.Second,
		Logger:    logger,
	}
}

// Origin implements Source.
func (g *GoogleTrends) Origin() types.Origin { return types.OriginGoogleTrends }

// Fetch implements Source.
func (g *GoogleTrends) Fetch(ctx context.Context) ([]types.RawTrendRecord, error) {
	html, err := g.Render(ctx, g.URL, fetch.BrowserOptions{
		Timeout:      g.Timeout,
		WaitSelector: g.Selectors.Row,
		Settle:       2 * time.Second,
		Logger:       g.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("google trends: %w", err)
	}
	return g.parse(html)
}

func (g *GoogleTrends) parse(html string) ([]types.RawTrendRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("google trends: failed to parse page: %w", err)
	}

	var out []types.RawTrendRecord
	doc.Find(g.Selectors.Row).Each(func(_ int, row *goquery.Selection) {
		trend := fetch.CollapseWhitespace(row.Find(g.Selectors.Title).First().Text())
		if len(trend) <= 3 {
			return
		}
		var terms []string
		row.Find(g.Selectors.Breakdown).Each(func(_ int, s *goquery.Selection) {
			if term, ok := s.Attr("data-term"); ok && term != "" && term != trend {
				terms = append(terms, term)
			}
		})
		out = append(out, types.RawTrendRecord{
			Trend:     trend,
			Breakdown: strings.Join(terms, ", "),
			Link:      g.exploreURL(trend),
			Origin:    types.OriginGoogleTrends,
		})
	})
	return out, nil
}

func (g *GoogleTrends) exploreURL(trend string) string {
	v := url.Values{"q": {trend}}
	if g.Geo != "" {
		v.Set("geo", g.Geo)
	}
	return "https://trends.google.com/trends/explore?" + v.Encode()
}
