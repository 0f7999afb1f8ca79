package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/trend-resolver/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

var _ Store = (*DB)(nil)

// Connect establishes a connection pool and applies the schema.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() error {
	if db.pool != nil {
		db.pool.Close()
	}
	return nil
}

func parseRunID(runID string) (any, error) {
	if runID == "" {
		return nil, nil
	}
	id, err := uuid.Parse(runID)
	if err != nil {
		return nil, fmt.Errorf("invalid run id %q: %w", runID, err)
	}
	return id, nil
}

// CreateRun records a new batch in the running state.
func (db *DB) CreateRun(ctx context.Context, runID string, candidates int) error {
	id, err := parseRunID(runID)
	if err != nil {
		return err
	}
	query, args, err := postgresStatements.insertRun(id, candidates)
	if err != nil {
		return fmt.Errorf("failed to build run insert: %w", err)
	}
	if _, err := db.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// CompleteRun stores final counts and status for a batch.
func (db *DB) CompleteRun(ctx context.Context, runID, status string, counts RunCounts) error {
	id, err := parseRunID(runID)
	if err != nil {
		return err
	}
	query, args, err := postgresStatements.completeRun(id, status, counts, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to build run update: %w", err)
	}
	if _, err := db.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// Persist implements Store.
func (db *DB) Persist(ctx context.Context, runID string, records []types.PersistableRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	id, err := parseRunID(runID)
	if err != nil {
		return 0, err
	}
	query, args, err := postgresStatements.insertTrends(id, records)
	if err != nil {
		return 0, fmt.Errorf("failed to build insert: %w", err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert trends: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit trends: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// History returns stored rows newest first.
func (db *DB) History(ctx context.Context, f HistoryFilter) ([]TrendRow, error) {
	id, err := parseRunID(f.RunID)
	if err != nil {
		return nil, err
	}
	query, args, err := postgresStatements.selectTrends(f, id)
	if err != nil {
		return nil, fmt.Errorf("failed to build history query: %w", err)
	}
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var out []TrendRow
	for rows.Next() {
		row, err := scanTrendRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Runs returns the most recent batches.
func (db *DB) Runs(ctx context.Context, limit int) ([]Run, error) {
	query, args, err := postgresStatements.selectRuns(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build runs query: %w", err)
	}
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
