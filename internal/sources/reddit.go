package sources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/trend-resolver/internal/fetch"
	"github.com/jonathan/trend-resolver/internal/types"
)

// DefaultRedditURL is the hot listing of /r/movies.
const DefaultRedditURL = "https://www.reddit.com/r/movies/hot.json?limit=50"

// Reddit reads post titles from a subreddit listing.
type Reddit struct {
	URL     string
	Options *fetch.Options
}

// NewReddit creates a Reddit source for /r/movies.
func NewReddit() *Reddit {
	return &Reddit{URL: DefaultRedditURL, Options: fetch.DefaultOptions()}
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title     string `json:"title"`
				Subreddit string `json:"subreddit"`
				Permalink string `json:"permalink"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Origin implements Source.
func (r *Reddit) Origin() types.Origin { return types.OriginReddit }

// Fetch implements Source. Titles of five characters or fewer are skipped.
func (r *Reddit) Fetch(ctx context.Context) ([]types.RawTrendRecord, error) {
	res, err := fetch.URL(ctx, r.URL, r.Options)
	if err != nil {
		return nil, err
	}

	var listing redditListing
	if err := json.Unmarshal([]byte(res.HTML), &listing); err != nil {
		return nil, fmt.Errorf("reddit: failed to decode listing: %w", err)
	}

	var out []types.RawTrendRecord
	for _, child := range listing.Data.Children {
		post := child.Data
		if len(post.Title) <= 5 {
			continue
		}
		sub := post.Subreddit
		if sub == "" {
			sub = "movies"
		}
		out = append(out, types.RawTrendRecord{
			Trend:     post.Title,
			Breakdown: "Reddit post - " + sub,
			Link:      "https://reddit.com" + post.Permalink,
			Origin:    types.OriginReddit,
		})
	}
	return out, nil
}
