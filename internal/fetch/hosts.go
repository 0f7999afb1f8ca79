package fetch

import (
	"net/url"
	"strings"
)

// nonArticleHosts are link targets that never carry an article body.
var nonArticleHosts = []string{
	"trends.google.com",
	"trends24.in",
	"twitter.com",
	"x.com",
}

// IsNonArticleSource reports whether a link points at a page with no article to scrape.
func IsNonArticleSource(link string) bool {
	parsed, err := url.Parse(link)
	if err != nil {
		return true
	}
	host := strings.ToLower(parsed.Hostname())
	for _, h := range nonArticleHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// ArticleSelectors returns content selectors for news and review pages, most specific last.
func ArticleSelectors() []string {
	return []string{
		"article",
		".article-content",
		".post-content",
		".entry-content",
		".content",
		"main",
		".main-content",
		"[role=\"main\"]",
		".story-body",
		".article-body",
	}
}

// SiteSelectors returns content selectors tuned for a host, falling back to ArticleSelectors.
func SiteSelectors(link string) []string {
	parsed, err := url.Parse(link)
	if err != nil {
		return ArticleSelectors()
	}
	host := strings.ToLower(parsed.Hostname())
	switch {
	case strings.HasSuffix(host, "themoviedb.org"):
		return append([]string{".overview", "section.header"}, ArticleSelectors()...)
	case strings.HasSuffix(host, "reddit.com"):
		return append([]string{"shreddit-post", "[data-test-id=\"post-content\"]"}, ArticleSelectors()...)
	case strings.HasSuffix(host, "wikipedia.org"):
		return append([]string{"#mw-content-text"}, ArticleSelectors()...)
	default:
		return ArticleSelectors()
	}
}

// NoiseSelectors returns page chrome stripped before text extraction.
func NoiseSelectors() []string {
	return []string{"nav", "footer", "header", ".ad", ".advertisement", ".ads", ".sidebar", ".cookie-banner", ".popup"}
}
