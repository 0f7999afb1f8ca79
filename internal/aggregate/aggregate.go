// Package aggregate merges raw per-source trend records into one deduplicated candidate list.
package aggregate

import (
	"strings"

	"github.com/jonathan/trend-resolver/internal/types"
)

// Candidates merges batches of raw records, given in source priority order, into a single
// ordered candidate list. Deduplication is by exact trend text and the first occurrence wins.
// Records with blank text are dropped.
func Candidates(batches ...[]types.RawTrendRecord) []types.TrendCandidate {
	seen := make(map[string]struct{})
	var out []types.TrendCandidate
	for _, batch := range batches {
		for _, rec := range batch {
			if strings.TrimSpace(rec.Trend) == "" {
				continue
			}
			if _, dup := seen[rec.Trend]; dup {
				continue
			}
			seen[rec.Trend] = struct{}{}
			out = append(out, types.CandidateFromRecord(rec))
		}
	}
	return out
}
