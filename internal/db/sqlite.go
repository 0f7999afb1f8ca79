package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jonathan/trend-resolver/internal/types"
)

// DefaultSQLitePath is the local database file used when no DSN is configured.
const DefaultSQLitePath = "trends.db"

// SQLite is the single-file backend.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens (creating if needed) a SQLite database and applies the schema.
// Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		path = DefaultSQLitePath
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// one connection: :memory: databases are per-connection and writers serialize anyway
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &SQLite{db: conn}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func nullable(runID string) any {
	if runID == "" {
		return nil
	}
	return runID
}

// CreateRun implements Store.
func (s *SQLite) CreateRun(ctx context.Context, runID string, candidates int) error {
	query, args, err := sqliteStatements.insertRun(runID, candidates)
	if err != nil {
		return fmt.Errorf("failed to build run insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// CompleteRun implements Store.
func (s *SQLite) CompleteRun(ctx context.Context, runID, status string, counts RunCounts) error {
	query, args, err := sqliteStatements.completeRun(runID, status, counts, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to build run update: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// Persist implements Store.
func (s *SQLite) Persist(ctx context.Context, runID string, records []types.PersistableRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	query, args, err := sqliteStatements.insertTrends(nullable(runID), records)
	if err != nil {
		return 0, fmt.Errorf("failed to build insert: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert trends: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit trends: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return len(records), nil
	}
	return int(n), nil
}

// History implements Store.
func (s *SQLite) History(ctx context.Context, f HistoryFilter) ([]TrendRow, error) {
	query, args, err := sqliteStatements.selectTrends(f, nullable(f.RunID))
	if err != nil {
		return nil, fmt.Errorf("failed to build history query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

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

// Runs implements Store.
func (s *SQLite) Runs(ctx context.Context, limit int) ([]Run, error) {
	query, args, err := sqliteStatements.selectRuns(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build runs query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

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
