package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestScrapeArticle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><header>Site</header>
			<div class="article-body">Inside Out 2 breaks   box office records.</div></body></html>`))
	}))
	defer server.Close()

	s := NewScraper(zaptest.NewLogger(t))
	assert.Equal(t, "Inside Out 2 breaks box office records.", s.ScrapeArticle(context.Background(), server.URL, 2000))
}

func TestScrapeArticle_Truncates(t *testing.T) {
	body := strings.Repeat("word ", 100)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<article>" + body + "</article>"))
	}))
	defer server.Close()

	out := NewScraper(nil).ScrapeArticle(context.Background(), server.URL, 20)
	assert.Equal(t, "word word word word ...", out)
}

func TestScrapeArticle_Failures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	s := NewScraper(zaptest.NewLogger(t))
	ctx := context.Background()
	assert.Empty(t, s.ScrapeArticle(ctx, server.URL, 100))
	assert.Empty(t, s.ScrapeArticle(ctx, "", 100))
	assert.Empty(t, s.ScrapeArticle(ctx, "https://trends.google.com/trending?geo=US", 100))
}
