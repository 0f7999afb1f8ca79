// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/trend-resolver/internal/db"
	"github.com/jonathan/trend-resolver/internal/pipeline"
	"github.com/jonathan/trend-resolver/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", fit(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %s │\n", fit(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// fit pads or truncates a line to exactly width runes.
func fit(line string, width int) string {
	r := []rune(line)
	if len(r) > width {
		return string(r[:width-3]) + "..."
	}
	return line + strings.Repeat(" ", width-len(r))
}

// PrintProgress outputs a one-line progress event.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(e pipeline.ProgressEvent) {
	fmt.Fprintf(p.out, "▸ %-24s %s\n", e.State, e.Message)
}

// PrintReport outputs the end-of-run summary and the resolved entertainment trends.
func (p *Printer) PrintReport(r *pipeline.Report) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:                  %s\n", r.RunID))
	sb.WriteString(fmt.Sprintf("Candidates:           %d\n", r.Summary.Candidates))
	sb.WriteString(fmt.Sprintf("Entertainment trends: %d\n", r.Summary.Entertainment))
	sb.WriteString(fmt.Sprintf("Non-entertainment:    %d\n", r.Summary.NonEntertainment))
	sb.WriteString(fmt.Sprintf("Escalated / upgraded: %d / %d\n", r.Summary.Escalated, r.Summary.Upgraded))
	sb.WriteString(fmt.Sprintf("Without evidence:     %d\n", r.Summary.NoEvidence))
	sb.WriteString(fmt.Sprintf("Saved to database:    %d\n", r.Saved))
	if len(r.Summary.Failures) > 0 {
		sb.WriteString("Recovered failures:\n")
		for _, kind := range []pipeline.ErrorKind{
			pipeline.KindSourceUnavailable, pipeline.KindMalformedModelOutput, pipeline.KindPersistenceFailure,
		} {
			if n := r.Summary.Failures[kind]; n > 0 {
				sb.WriteString(fmt.Sprintf("  • %s: %d\n", kind, n))
			}
		}
	}
	p.printBox("RUN SUMMARY", sb.String())

	p.PrintClassified(r.Results, r.CanonicalIDs)
}

// PrintClassified outputs one line per entertainment trend:
// trend → content type (specific title) [confidence].
func (p *Printer) PrintClassified(results []types.ClassifiedTrend, ids map[string]string) {
	var sb strings.Builder
	n := 0
	for _, t := range results {
		cls := t.FinalClassification
		if !cls.IsEntertainment {
			continue
		}
		n++
		specific := cls.SpecificContent
		if specific == "" {
			specific = "N/A"
		}
		sb.WriteString(fmt.Sprintf("%d. %s → %s (%s) [%.2f]", n, t.Candidate.Text, cls.ContentType, specific, cls.Confidence))
		if id := ids[t.Candidate.Text]; id != "" {
			sb.WriteString(" " + id)
		}
		sb.WriteString("\n")
	}
	if n == 0 {
		sb.WriteString("No entertainment trends found\n")
	}
	p.printBox("CLASSIFIED ENTERTAINMENT CONTENT", sb.String())
}

// PrintClassification outputs the full verdict for a single trend.
func (p *Printer) PrintClassification(t types.ClassifiedTrend) {
	cls := t.FinalClassification
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Trend:        %s\n", t.Candidate.Text))
	sb.WriteString(fmt.Sprintf("Entertainment: %t\n", cls.IsEntertainment))
	sb.WriteString(fmt.Sprintf("Content type: %s\n", cls.ContentType))
	if cls.SpecificContent != "" {
		sb.WriteString(fmt.Sprintf("Title:        %s\n", cls.SpecificContent))
	}
	sb.WriteString(fmt.Sprintf("Confidence:   %.2f\n", cls.Confidence))
	sb.WriteString(fmt.Sprintf("Decided at:   %s\n", t.ResolvedAt))
	sb.WriteString(fmt.Sprintf("Reasoning:    %s\n", cls.Reasoning))

	if len(t.FinalSearchResults) > 0 {
		sb.WriteString("\nEvidence:\n")
		count := min(len(t.FinalSearchResults), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", t.FinalSearchResults[i].Title))
		}
		if len(t.FinalSearchResults) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(t.FinalSearchResults)-maxItemsToShow))
		}
	}
	p.printBox("CLASSIFICATION", sb.String())
}

// PrintQueries outputs the query set generated for a trend.
func (p *Printer) PrintQueries(trend string, queries []types.Query) {
	var sb strings.Builder
	for i, q := range queries {
		sb.WriteString(fmt.Sprintf("%d. %s  [%s]\n", i+1, q.Text, q.Tier))
	}
	if len(queries) == 0 {
		sb.WriteString("No queries generated\n")
	}
	p.printBox("QUERIES: "+trend, sb.String())
}

// PrintHistory outputs stored rows, newest first.
func (p *Printer) PrintHistory(rows []db.TrendRow) {
	var sb strings.Builder
	for _, r := range rows {
		id := r.IMDbID
		if id == "" {
			id = "-"
		}
		sb.WriteString(fmt.Sprintf("%s  %s → %s (%s) %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Keyword, r.ContentType, r.Title, id))
	}
	if len(rows) == 0 {
		sb.WriteString("No stored trends\n")
	}
	p.printBox("STORED TRENDS", sb.String())
}

// PrintRuns outputs recent run bookkeeping.
func (p *Printer) PrintRuns(runs []db.Run) {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(fmt.Sprintf("%s  %-9s candidates=%d ent=%d saved=%d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Status, r.Candidates, r.Entertainment, r.Saved))
	}
	if len(runs) == 0 {
		sb.WriteString("No runs recorded\n")
	}
	p.printBox("RECENT RUNS", sb.String())
}
