// Package sources harvests raw trending topics from external trend feeds.
package sources

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/trend-resolver/internal/types"
)

// Source fetches one feed of raw trend records. Returned records stay usable when err is
// non-nil, but Harvest discards them.
type Source interface {
	Origin() types.Origin
	Fetch(ctx context.Context) ([]types.RawTrendRecord, error)
}

// Harvest fetches every source concurrently and returns one batch per source in origin
// priority order, ready for aggregation. A failing source contributes an empty batch.
// When every batch is empty the fallback keyword list is returned as the only batch.
func Harvest(ctx context.Context, srcs []Source, logger *zap.Logger) [][]types.RawTrendRecord {
	if logger == nil {
		logger = zap.NewNop()
	}

	ordered := append([]Source(nil), srcs...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Origin().Rank() < ordered[j].Origin().Rank()
	})

	// each goroutine writes only its own slot
	batches := make([][]types.RawTrendRecord, len(ordered))
	g, gCtx := errgroup.WithContext(ctx)
	for i, src := range ordered {
		g.Go(func() error {
			records, err := src.Fetch(gCtx)
			if err != nil {
				logger.Warn("trend source failed", zap.String("source", string(src.Origin())), zap.Error(err))
				return nil
			}
			logger.Info("trend source fetched", zap.String("source", string(src.Origin())), zap.Int("records", len(records)))
			batches[i] = records
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, b := range batches {
		total += len(b)
	}
	if total == 0 {
		logger.Warn("every trend source was empty, using fallback keywords")
		return [][]types.RawTrendRecord{Fallback()}
	}
	return batches
}
