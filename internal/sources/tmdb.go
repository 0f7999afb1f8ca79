package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/trend-resolver/internal/fetch"
	"github.com/jonathan/trend-resolver/internal/llm"
	"github.com/jonathan/trend-resolver/internal/types"
)

// DefaultTMDBURL is the TMDB v3 API root.
const DefaultTMDBURL = "https://api.themoviedb.org/3"

const overviewPrefix = 100

// TMDB reads the weekly trending movies and TV shows.
type TMDB struct {
	APIKey  string
	BaseURL string
	Options *fetch.Options
	Logger  *zap.Logger
}

// NewTMDB creates a TMDB source.
func NewTMDB(apiKey string, logger *zap.Logger) *TMDB {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := fetch.DefaultOptions()
	opts.Headers = map[string]string{"Accept": "application/json"}
	return &TMDB{APIKey: apiKey, BaseURL: DefaultTMDBURL, Options: opts, Logger: logger}
}

type tmdbPage struct {
	Results []struct {
		ID       int    `json:"id"`
		Title    string `json:"title"`
		Name     string `json:"name"`
		Overview string `json:"overview"`
	} `json:"results"`
}

// Origin implements Source.
func (t *TMDB) Origin() types.Origin { return types.OriginTMDB }

// Fetch implements Source. A failing endpoint is skipped; the error is reported only when
// both fail.
func (t *TMDB) Fetch(ctx context.Context) ([]types.RawTrendRecord, error) {
	if t.APIKey == "" {
		return nil, errors.New("tmdb: no API key configured")
	}

	movies, movieErr := t.trending(ctx, "movie")
	if movieErr != nil {
		t.Logger.Warn("tmdb movies failed", zap.Error(movieErr))
	}
	shows, tvErr := t.trending(ctx, "tv")
	if tvErr != nil {
		t.Logger.Warn("tmdb tv failed", zap.Error(tvErr))
	}
	if movieErr != nil && tvErr != nil {
		return nil, errors.Join(movieErr, tvErr)
	}
	return append(movies, shows...), nil
}

func (t *TMDB) trending(ctx context.Context, kind string) ([]types.RawTrendRecord, error) {
	endpoint := fmt.Sprintf("%s/trending/%s/week?%s", t.BaseURL, kind, url.Values{"api_key": {t.APIKey}}.Encode())
	res, err := fetch.URL(ctx, endpoint, t.Options)
	if err != nil {
		return nil, err
	}

	var page tmdbPage
	if err := json.Unmarshal([]byte(res.HTML), &page); err != nil {
		return nil, fmt.Errorf("tmdb %s: failed to decode response: %w", kind, err)
	}

	label, minLen := "Movie", 1
	if kind == "tv" {
		label, minLen = "TV Show", 3
	}

	var out []types.RawTrendRecord
	for _, item := range page.Results {
		title := item.Title
		if kind == "tv" {
			title = item.Name
		}
		if len(title) < minLen {
			continue
		}
		out = append(out, types.RawTrendRecord{
			Trend:       title,
			Breakdown:   fmt.Sprintf("%s - %s...", label, llm.Truncate(item.Overview, overviewPrefix)),
			Link:        "https://www.themoviedb.org/" + kind + "/" + strconv.Itoa(item.ID),
			Origin:      types.OriginTMDB,
			ContentType: kind,
		})
	}
	return out, nil
}
