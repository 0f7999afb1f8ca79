package fetch

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DateProbeTimeout bounds the page fetch used to infer a publication date.
const DateProbeTimeout = 5 * time.Second

var dateSelectors = []string{
	`meta[property="article:published_time"]`,
	`meta[name="date"]`,
	`meta[name="pubdate"]`,
	`meta[name="publishdate"]`,
	`time[datetime]`,
	`.date`,
	`.published`,
	`.pubdate`,
	`.publish-date`,
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// ParseDate tries the known publication date layouts in order.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ExtractPublishedAt finds the first parseable publication date in an HTML page.
func ExtractPublishedAt(html string) (time.Time, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return time.Time{}, false
	}

	for _, selector := range dateSelectors {
		var found time.Time
		ok := false
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			var raw string
			switch goquery.NodeName(s) {
			case "meta":
				raw, _ = s.Attr("content")
			case "time":
				raw, _ = s.Attr("datetime")
			default:
				raw = s.Text()
			}
			found, ok = ParseDate(raw)
			return !ok
		})
		if ok {
			return found, true
		}
	}
	return time.Time{}, false
}

// PublishedAt fetches a page with a short timeout and returns its publication date,
// or nil when it cannot be determined.
func PublishedAt(ctx context.Context, link string, opts *Options) *time.Time {
	if !IsHTTPURL(link) {
		return nil
	}
	probe := DefaultOptions()
	if opts != nil {
		copied := *opts
		probe = &copied
	}
	probe.Timeout = DateProbeTimeout

	ctx, cancel := context.WithTimeout(ctx, DateProbeTimeout)
	defer cancel()

	res, err := URL(ctx, link, probe)
	if err != nil {
		return nil
	}
	t, ok := ExtractPublishedAt(res.HTML)
	if !ok {
		return nil
	}
	return &t
}
