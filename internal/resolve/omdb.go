// Package resolve maps resolved entertainment titles to canonical IMDb identifiers.
package resolve

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/trend-resolver/internal/fetch"
)

// DefaultOMDbURL is the OMDb API endpoint.
const DefaultOMDbURL = "https://www.omdbapi.com/"

// ErrNoAPIKey is returned when the OMDb client has no key.
var ErrNoAPIKey = errors.New("omdb: no API key configured")

// searchTypes are the OMDb result types accepted from a title search.
var searchTypes = map[string]bool{"movie": true, "series": true}

// OMDb resolves titles through an exact lookup, then a title search.
type OMDb struct {
	APIKey  string
	BaseURL string
	Options *fetch.Options
	Logger  *zap.Logger
}

// NewOMDb creates an OMDb resolver.
func NewOMDb(apiKey string, logger *zap.Logger) *OMDb {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := fetch.DefaultOptions()
	opts.Timeout = 15 * time.Second
	return &OMDb{APIKey: apiKey, BaseURL: DefaultOMDbURL, Options: opts, Logger: logger}
}

type omdbTitle struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
	Title    string `json:"Title"`
	Type     string `json:"Type"`
	IMDbID   string `json:"imdbID"`
}

type omdbSearch struct {
	Response string      `json:"Response"`
	Error    string      `json:"Error"`
	Search   []omdbTitle `json:"Search"`
}

// Resolve returns the IMDb ID for a title. ok is false when OMDb knows no match.
func (o *OMDb) Resolve(ctx context.Context, title string) (string, bool, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", false, nil
	}
	if o.APIKey == "" {
		return "", false, ErrNoAPIKey
	}

	var exact omdbTitle
	if err := o.get(ctx, url.Values{"t": {title}}, &exact); err != nil {
		return "", false, err
	}
	if exact.Response == "True" && exact.IMDbID != "" {
		o.Logger.Debug("omdb exact match", zap.String("title", title), zap.String("imdb_id", exact.IMDbID))
		return strings.TrimSpace(exact.IMDbID), true, nil
	}

	var found omdbSearch
	if err := o.get(ctx, url.Values{"s": {title}}, &found); err != nil {
		return "", false, err
	}
	if found.Response != "True" {
		return "", false, nil
	}
	for _, item := range found.Search {
		if searchTypes[item.Type] && item.IMDbID != "" {
			o.Logger.Debug("omdb search match", zap.String("title", title), zap.String("match", item.Title))
			return strings.TrimSpace(item.IMDbID), true, nil
		}
	}
	return "", false, nil
}

func (o *OMDb) get(ctx context.Context, params url.Values, into any) error {
	params.Set("apikey", o.APIKey)
	res, err := fetch.URL(ctx, o.BaseURL+"?"+params.Encode(), o.Options)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(res.HTML), into); err != nil {
		return fmt.Errorf("omdb: failed to decode response: %w", err)
	}
	return nil
}
