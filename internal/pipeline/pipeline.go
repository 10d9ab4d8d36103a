package pipeline

import (
	"log/slog"
	"time"

	"github.com/nao1215/savedindex/internal/model"
	"github.com/nao1215/savedindex/internal/table"
)

// Step defines the interface that all enrichment steps must implement.
type Step interface {
	// Name returns the step's name for logging and run history.
	Name() string

	// Columns returns the columns this step appends, in output order.
	Columns() []string

	// CounterLabel names the enriched-row counter in the summary line.
	CounterLabel() string

	// Enrich derives the step's columns for one row, writing them into row.
	// It reports whether at least one derived value is non-empty.
	// Enrich must not fail; faults degrade to empty values.
	Enrich(row model.Row) bool
}

// Pipeline runs steps over a table in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// Execute runs every step over every row of t, modifying t in place.
// Each step first merges its columns into the header and then enriches the
// rows. One summary is returned per step, in step order; input and output
// paths are left for the caller to fill in.
func (p *Pipeline) Execute(t *model.Table) []*model.Summary {
	summaries := make([]*model.Summary, 0, len(p.steps))

	for _, step := range p.steps {
		summary := model.NewSummary(step.Name(), step.CounterLabel(), step.Columns())
		t.Header = table.MergeHeader(t.Header, step.Columns())

		p.logger.Info("executing step",
			"step", step.Name(),
			"rows", t.Len(),
		)

		for _, row := range t.Rows {
			if step.Enrich(row) {
				summary.EnrichedRows++
			}
			for _, col := range summary.Columns {
				if row[col] != "" {
					summary.ColumnFill[col]++
				}
			}
		}

		summary.Rows = t.Len()
		summary.FinishedAt = time.Now()

		p.logger.Debug("step completed",
			"step", step.Name(),
			"rows", summary.Rows,
			summary.CounterLabel, summary.EnrichedRows,
			"elapsed", summary.Duration(),
		)

		summaries = append(summaries, summary)
	}

	return summaries
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
