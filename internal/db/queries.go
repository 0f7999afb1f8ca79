package db

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/jonathan/trend-resolver/internal/types"
)

// statements builds SQL for one dialect. asText renders a UUID/TEXT id column as text.
type statements struct {
	sq.StatementBuilderType
	asText func(col string) string
}

var (
	postgresStatements = statements{
		StatementBuilderType: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		asText:               func(col string) string { return "COALESCE(" + col + "::text, '')" },
	}
	sqliteStatements = statements{
		StatementBuilderType: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		asText:               func(col string) string { return "COALESCE(" + col + ", '')" },
	}
)

func (s statements) insertTrends(runID any, records []types.PersistableRecord) (string, []any, error) {
	if len(records) == 0 {
		return "", nil, fmt.Errorf("no records to insert")
	}
	q := s.Insert(tableTrends).Columns(trendColumns...)
	for _, r := range records {
		q = q.Values(runID, r.Keyword, r.Title, r.IMDbID, r.Source, r.Link, r.SearchQuery, r.Snippet,
			r.ContentType, r.Confidence, r.Reasoning, r.SpecificContent, r.ArticleContent, r.DaysOld)
	}
	return q.ToSql()
}

func (s statements) insertRun(runID any, candidates int) (string, []any, error) {
	return s.Insert(tableRuns).
		Columns("id", "status", "candidates").
		Values(runID, RunStatusRunning, candidates).
		ToSql()
}

func (s statements) completeRun(runID any, status string, counts RunCounts, at time.Time) (string, []any, error) {
	return s.Update(tableRuns).
		Set("status", status).
		Set("entertainment", counts.Entertainment).
		Set("non_entertainment", counts.NonEntertainment).
		Set("saved", counts.Saved).
		Set("completed_at", at).
		Where(sq.Eq{"id": runID}).
		ToSql()
}

// HistoryFilter narrows a history query.
type HistoryFilter struct {
	Keyword string
	RunID   string
	Limit   int
}

// DefaultHistoryLimit caps history queries without an explicit limit.
const DefaultHistoryLimit = 20

// selectTrends reads rows newest first. runID is the already-typed filter value, nil for none.
func (s statements) selectTrends(f HistoryFilter, runID any) (string, []any, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	cols := []string{"id", s.asText("run_id")}
	for _, c := range trendColumns[1:] {
		cols = append(cols, "COALESCE("+c+", "+zeroFor(c)+")")
	}
	cols = append(cols, "created_at")
	q := s.Select(cols...).
		From(tableTrends).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))
	if f.Keyword != "" {
		q = q.Where(sq.Eq{"keyword": f.Keyword})
	}
	if runID != nil {
		q = q.Where(sq.Eq{"run_id": runID})
	}
	return q.ToSql()
}

func (s statements) selectRuns(limit int) (string, []any, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.Select(s.asText("id"), "status", "candidates", "entertainment", "non_entertainment", "saved", "created_at", "completed_at").
		From(tableRuns).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
}

func zeroFor(col string) string {
	switch col {
	case "confidence":
		return "0"
	case "days_old":
		return "-1"
	}
	return "''"
}
