package sources

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jonathan/trend-resolver/internal/types"
)

type stubSource struct {
	origin  types.Origin
	records []types.RawTrendRecord
	err     error
}

func (s stubSource) Origin() types.Origin { return s.origin }

func (s stubSource) Fetch(context.Context) ([]types.RawTrendRecord, error) {
	return s.records, s.err
}

func rec(trend string, o types.Origin) types.RawTrendRecord {
	return types.RawTrendRecord{Trend: trend, Origin: o}
}

func TestHarvest_PriorityOrder(t *testing.T) {
	srcs := []Source{
		stubSource{origin: types.OriginTwitter, records: []types.RawTrendRecord{rec("Dune", types.OriginTwitter)}},
		stubSource{origin: types.OriginGoogleTrends, records: []types.RawTrendRecord{rec("Dune", types.OriginGoogleTrends)}},
		stubSource{origin: types.OriginReddit, err: errors.New("429 too many requests")},
		stubSource{origin: types.OriginTMDB, records: []types.RawTrendRecord{rec("Wednesday", types.OriginTMDB)}},
	}

	batches := Harvest(context.Background(), srcs, zaptest.NewLogger(t))

	require.Len(t, batches, 4)
	assert.Equal(t, types.OriginGoogleTrends, batches[0][0].Origin)
	assert.Equal(t, types.OriginTMDB, batches[1][0].Origin)
	assert.Empty(t, batches[2])
	assert.Equal(t, types.OriginTwitter, batches[3][0].Origin)
}

func TestHarvest_FallbackWhenEverythingEmpty(t *testing.T) {
	srcs := []Source{
		stubSource{origin: types.OriginGoogleTrends, err: errors.New("chrome not found")},
		stubSource{origin: types.OriginTMDB},
	}

	batches := Harvest(context.Background(), srcs, nil)

	require.Len(t, batches, 1)
	assert.Equal(t, Fallback(), batches[0])
	for _, r := range batches[0] {
		assert.Equal(t, types.OriginFallback, r.Origin)
	}
}

func TestHarvest_FailedSourceRecordsDiscarded(t *testing.T) {
	srcs := []Source{
		stubSource{origin: types.OriginTMDB, records: []types.RawTrendRecord{rec("Partial", types.OriginTMDB)}, err: errors.New("boom")},
		stubSource{origin: types.OriginReddit, records: []types.RawTrendRecord{rec("Kept title", types.OriginReddit)}},
	}

	batches := Harvest(context.Background(), srcs, nil)

	require.Len(t, batches, 2)
	assert.Empty(t, batches[0])
	assert.Len(t, batches[1], 1)
}

func TestFallbackSource(t *testing.T) {
	records, err := FallbackSource{}.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, len(fallbackKeywords))
	assert.Equal(t, "Deadpool & Wolverine", records[0].Trend)
	assert.Equal(t, "Fallback entertainment keyword", records[0].Breakdown)
}
