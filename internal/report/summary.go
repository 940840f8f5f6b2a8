// Package report renders the user-facing run summary.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"retailetl/internal/models"
)

// RuleCount is the number of records that violated one rule.
type RuleCount struct {
	Tag   string
	Count int
}

// TableCount is the number of rows emitted into one output table.
type TableCount struct {
	Table string
	Count int
}

// Summary aggregates the observable outcome of one pipeline run.
type Summary struct {
	RunID       string
	Input       int
	Accepted    int
	Rejected    int
	RuleCounts  []RuleCount
	TableCounts []TableCount
	Duration    time.Duration
}

// NewSummary derives rule counts from the run's verdicts.
func NewSummary(runID string, verdicts []models.Verdict) *Summary {
	s := &Summary{
		RunID: runID,
		Input: len(verdicts),
	}

	order := []string{}
	counts := map[string]int{}

	for i := range verdicts {
		v := &verdicts[i]
		if v.Accepted() {
			s.Accepted++
			continue
		}

		s.Rejected++

		for _, viol := range v.Violations {
			tag := viol.Tag()
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}

			counts[tag]++
		}
	}

	for _, tag := range order {
		s.RuleCounts = append(s.RuleCounts, RuleCount{Tag: tag, Count: counts[tag]})
	}

	return s
}

// AddTableCount appends one output-table row count.
func (s *Summary) AddTableCount(table string, count int) {
	s.TableCounts = append(s.TableCounts, TableCount{Table: table, Count: count})
}

// Render formats the summary as aligned text tables.
func (s *Summary) Render() string {
	var b strings.Builder

	b.WriteString("Run Summary (" + s.RunID + ")\n")

	pct := func(n int) string {
		if s.Input == 0 {
			return "0.00%"
		}

		return fmt.Sprintf("%.2f%%", float64(n)/float64(s.Input)*100)
	}

	rows := [][]string{
		{"Stage", "Records", "Share"},
		{"Input", fmt.Sprintf("%d", s.Input), "100.00%"},
		{"Accepted", fmt.Sprintf("%d", s.Accepted), pct(s.Accepted)},
		{"Rejected", fmt.Sprintf("%d", s.Rejected), pct(s.Rejected)},
	}
	b.WriteString(renderTable(rows))

	if len(s.RuleCounts) > 0 {
		b.WriteString("\nViolations by rule\n")

		rows = [][]string{{"Rule", "Records"}}
		for _, rc := range s.RuleCounts {
			rows = append(rows, []string{rc.Tag, fmt.Sprintf("%d", rc.Count)})
		}

		b.WriteString(renderTable(rows))
	}

	if len(s.TableCounts) > 0 {
		b.WriteString("\nOutput tables\n")

		rows = [][]string{{"Table", "Rows"}}
		for _, tc := range s.TableCounts {
			rows = append(rows, []string{tc.Table, fmt.Sprintf("%d", tc.Count)})
		}

		b.WriteString(renderTable(rows))
	}

	if s.Duration > 0 {
		b.WriteString(fmt.Sprintf("\nDuration: %v\n", s.Duration.Round(time.Millisecond)))
	}

	return b.String()
}

// renderTable pads every column to its widest cell, measuring display width
// so wide runes keep the grid aligned.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	widths := make([]int, colCount)

	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder

	for rowIdx, row := range rows {
		b.WriteString("|")

		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			pad := widths[i] - runewidth.StringWidth(cell)
			b.WriteString(" " + cell + strings.Repeat(" ", pad) + " |")
		}

		b.WriteString("\n")

		if rowIdx == 0 {
			b.WriteString("|")

			for i := 0; i < colCount; i++ {
				b.WriteString(strings.Repeat("-", widths[i]+2) + "|")
			}

			b.WriteString("\n")
		}
	}

	return b.String()
}
