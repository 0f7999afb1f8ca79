package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestPagemapDate(t *testing.T) {
	raw := []byte(`{"metatags": [{"og:title": "x"}, {"article:published_time": "2024-07-26T09:00:00Z"}]}`)
	got := pagemapDate(raw)
	require.NotNil(t, got)
	assert.Equal(t, 26, got.Day())

	assert.Nil(t, pagemapDate(nil))
	assert.Nil(t, pagemapDate([]byte(`{"metatags": [{"date": "whenever"}]}`)))
	assert.Nil(t, pagemapDate([]byte(`not json`)))
}

func TestNewGoogleProvider_RequiresCredentials(t *testing.T) {
	_, err := NewGoogleProvider(context.Background(), "", "cx")
	assert.Error(t, err)
	_, err = NewGoogleProvider(context.Background(), "key", "")
	assert.Error(t, err)
}

func TestGoogleProvider_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Inside Out 2 movie", q.Get("q"))
		assert.Equal(t, "engine", q.Get("cx"))
		assert.Equal(t, "6", q.Get("num"))
		assert.Equal(t, "d30", q.Get("dateRestrict"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": [
			{"title": "Inside Out 2 (2024)", "link": "https://www.imdb.com/title/tt22022452/", "snippet": "Riley's emotions",
			 "pagemap": {"metatags": [{"article:published_time": "2024-07-20"}]}},
			{"title": "No link"},
			{"title": "Pixar", "link": "https://www.pixar.com/inside-out-2", "snippet": "Official"}
		]}`))
	}))
	defer server.Close()

	g, err := NewGoogleProvider(context.Background(), "key", "engine",
		option.WithEndpoint(server.URL+"/"), option.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	got, err := g.Search(context.Background(), Request{Query: "Inside Out 2 movie", Limit: 6, MaxAgeDays: 30})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "https://www.imdb.com/title/tt22022452/", got[0].URL)
	require.NotNil(t, got[0].PublishedAt)
	assert.Nil(t, got[1].PublishedAt)
}

func TestGoogleProvider_Integration(t *testing.T) {
	key, cx := os.Getenv("GOOGLE_SEARCH_API_KEY"), os.Getenv("GOOGLE_SEARCH_CX")
	if key == "" || cx == "" {
		t.Skip("GOOGLE_SEARCH_API_KEY / GOOGLE_SEARCH_CX not set")
	}
	g, err := NewGoogleProvider(context.Background(), key, cx)
	require.NoError(t, err)

	got, err := g.Search(context.Background(), Request{Query: "Oppenheimer film", Limit: 3})
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}
