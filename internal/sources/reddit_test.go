package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/trend-resolver/internal/types"
)

func TestReddit_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"children":[
			{"data":{"title":"Official Discussion: Furiosa","subreddit":"movies","permalink":"/r/movies/comments/abc/"}},
			{"data":{"title":"Short","subreddit":"movies","permalink":"/r/movies/comments/def/"}},
			{"data":{"title":"Nosferatu first trailer","permalink":"/r/movies/comments/ghi/"}}
		]}}`))
	}))
	defer srv.Close()

	src := NewReddit()
	src.URL = srv.URL

	records, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, types.RawTrendRecord{
		Trend:     "Official Discussion: Furiosa",
		Breakdown: "Reddit post - movies",
		Link:      "https://reddit.com/r/movies/comments/abc/",
		Origin:    types.OriginReddit,
	}, records[0])
	assert.Equal(t, "Reddit post - movies", records[1].Breakdown)
}

func TestReddit_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>blocked</html>`))
	}))
	defer srv.Close()

	src := NewReddit()
	src.URL = srv.URL

	_, err := src.Fetch(context.Background())
	assert.Error(t, err)
}
