package db

import "fmt"

// scanner is satisfied by pgx.Rows and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTrendRow(s scanner) (TrendRow, error) {
	var row TrendRow
	r := &row.PersistableRecord
	err := s.Scan(&row.ID, &row.RunID, &r.Keyword, &r.Title, &r.IMDbID, &r.Source, &r.Link, &r.SearchQuery,
		&r.Snippet, &r.ContentType, &r.Confidence, &r.Reasoning, &r.SpecificContent, &r.ArticleContent, &r.DaysOld, &row.CreatedAt)
	if err != nil {
		return TrendRow{}, fmt.Errorf("failed to scan trend row: %w", err)
	}
	return row, nil
}

func scanRun(s scanner) (Run, error) {
	var run Run
	err := s.Scan(&run.ID, &run.Status, &run.Candidates, &run.Entertainment, &run.NonEntertainment,
		&run.Saved, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		return Run{}, fmt.Errorf("failed to scan run: %w", err)
	}
	return run, nil
}
