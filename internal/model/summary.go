package model

import (
	"fmt"
	"time"
)

// Summary describes the outcome of one enrichment run.
type Summary struct {
	// Command is the enricher name, e.g. "location" or "annotations".
	Command string `json:"command"`

	// InputCSV and OutputCSV are the paths read and written.
	InputCSV  string `json:"input_csv"`
	OutputCSV string `json:"output_csv"`

	// Rows is the number of data rows written.
	Rows int `json:"rows"`

	// EnrichedRows counts rows that received at least one non-empty derived value.
	EnrichedRows int `json:"enriched_rows"`

	// CounterLabel names EnrichedRows in the summary line,
	// e.g. "rows_with_location".
	CounterLabel string `json:"counter_label"`

	// Columns lists the derived columns in declared order.
	Columns []string `json:"columns"`

	// ColumnFill maps each derived column to its number of non-empty cells.
	ColumnFill map[string]int `json:"column_fill"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// NewSummary creates an empty summary for the given enricher.
func NewSummary(command, counterLabel string, columns []string) *Summary {
	return &Summary{
		Command:      command,
		CounterLabel: counterLabel,
		Columns:      columns,
		ColumnFill:   make(map[string]int, len(columns)),
		StartedAt:    time.Now(),
	}
}

// Duration returns how long the run took.
func (s *Summary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// Line returns the one-line summary printed at the end of a run.
func (s *Summary) Line() string {
	return fmt.Sprintf("Wrote %s (rows=%d, %s=%d)", s.OutputCSV, s.Rows, s.CounterLabel, s.EnrichedRows)
}
