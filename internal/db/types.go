package db

import (
	"time"

	"github.com/jonathan/trend-resolver/internal/types"
)

// Run status values.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Run represents one persisted pipeline batch
type Run struct {
	ID               string     `json:"id"`
	Status           string     `json:"status"`
	Candidates       int        `json:"candidates"`
	Entertainment    int        `json:"entertainment"`
	NonEntertainment int        `json:"non_entertainment"`
	Saved            int        `json:"saved"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// RunCounts are the totals recorded when a run completes.
type RunCounts struct {
	Entertainment    int
	NonEntertainment int
	Saved            int
}

// TrendRow is a stored evidence row read back from the trends table.
type TrendRow struct {
	ID    int64  `json:"id"`
	RunID string `json:"run_id,omitempty"`
	types.PersistableRecord
	CreatedAt time.Time `json:"created_at"`
}
