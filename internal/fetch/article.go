package fetch

import (
	"context"

	"go.uber.org/zap"
)

// DefaultArticleLength is the scrape cap used for trend enrichment.
const DefaultArticleLength = 2000

// Scraper pulls article text for trend enrichment.
type Scraper struct {
	Options *Options
	Logger  *zap.Logger
}

// NewScraper returns a Scraper with default options.
func NewScraper(logger *zap.Logger) *Scraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scraper{Options: DefaultOptions(), Logger: logger}
}

// ScrapeArticle fetches link and returns its main text, whitespace-collapsed and truncated
// to maxLength runes with "..." appended when cut. It returns "" on any failure and for
// links that are not articles.
func (s *Scraper) ScrapeArticle(ctx context.Context, link string, maxLength int) string {
	if !IsHTTPURL(link) || IsNonArticleSource(link) {
		return ""
	}
	if maxLength <= 0 {
		maxLength = DefaultArticleLength
	}

	res, err := URL(ctx, link, s.Options)
	if err != nil {
		s.Logger.Debug("article scrape failed", zap.String("url", link), zap.Error(err))
		return ""
	}

	text, err := ExtractMainText(res.HTML, SiteSelectors(link), NoiseSelectors()...)
	if err != nil {
		s.Logger.Debug("article parse failed", zap.String("url", link), zap.Error(err))
		return ""
	}

	runes := []rune(text)
	if len(runes) > maxLength {
		text = string(runes[:maxLength]) + "..."
	}
	return text
}
