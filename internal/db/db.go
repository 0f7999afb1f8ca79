// Package db stores classified trend evidence and run bookkeeping in PostgreSQL or SQLite.
package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/trend-resolver/internal/types"
)

// Store is the persistence surface used by the pipeline driver and the history command.
type Store interface {
	// Persist inserts every record in one transaction and returns the count stored.
	// On error nothing is stored.
	Persist(ctx context.Context, runID string, records []types.PersistableRecord) (int, error)
	CreateRun(ctx context.Context, runID string, candidates int) error
	CompleteRun(ctx context.Context, runID, status string, counts RunCounts) error
	History(ctx context.Context, f HistoryFilter) ([]TrendRow, error)
	Runs(ctx context.Context, limit int) ([]Run, error)
	Close() error
}

// Open picks a backend from the DSN: postgres:// and postgresql:// URLs use PostgreSQL,
// anything else is treated as a SQLite path (optionally prefixed with sqlite://).
func Open(ctx context.Context, dsn string) (Store, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return Connect(ctx, dsn)
	case dsn == "":
		return nil, fmt.Errorf("no database configured")
	default:
		return OpenSQLite(ctx, strings.TrimPrefix(dsn, "sqlite://"))
	}
}
