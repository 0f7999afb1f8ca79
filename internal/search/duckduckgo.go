package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/trend-resolver/internal/fetch"
	"github.com/jonathan/trend-resolver/internal/types"
)

// DefaultDuckDuckGoURL is the JavaScript-free DuckDuckGo results page.
const DefaultDuckDuckGoURL = "https://html.duckduckgo.com/html/"

// DuckDuckGoProvider scrapes the DuckDuckGo HTML endpoint. It needs no API key and
// never knows publication dates.
type DuckDuckGoProvider struct {
	BaseURL string
	Options *fetch.Options
}

// NewDuckDuckGoProvider returns a provider pointed at the public endpoint.
func NewDuckDuckGoProvider() *DuckDuckGoProvider {
	return &DuckDuckGoProvider{BaseURL: DefaultDuckDuckGoURL, Options: fetch.DefaultOptions()}
}

// Name implements Provider.
func (d *DuckDuckGoProvider) Name() string { return "duckduckgo" }

// Search implements Provider.
func (d *DuckDuckGoProvider) Search(ctx context.Context, req Request) ([]types.SearchResult, error) {
	endpoint := d.BaseURL + "?" + url.Values{"q": {req.Query}}.Encode()
	res, err := fetch.URL(ctx, endpoint, d.Options)
	if err != nil {
		return nil, err
	}
	return parseDuckDuckGo(res.HTML, req.Limit)
}

func parseDuckDuckGo(html string, limit int) ([]types.SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}

	var results []types.SearchResult
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.HasClass("result--ad") {
			return true
		}
		link := s.Find("a.result__a").First()
		href, _ := link.Attr("href")
		target := resolveRedirect(href)
		if target == "" {
			return true
		}
		results = append(results, types.SearchResult{
			Title:   fetch.CollapseWhitespace(link.Text()),
			URL:     target,
			Snippet: fetch.CollapseWhitespace(s.Find(".result__snippet").Text()),
		})
		return limit <= 0 || len(results) < limit
	})
	return results, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect links.
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	if !fetch.IsHTTPURL(href) {
		return ""
	}
	return href
}
