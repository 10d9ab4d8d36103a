package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/nao1215/savedindex/internal/database"
	"github.com/nao1215/savedindex/internal/model"
)

// SimpleWriter outputs plain text for terminal display.
// Without verbose it prints exactly the one-line run summary.
type SimpleWriter struct {
	baseWriter

	// verbose adds per-column fill statistics after the summary line.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables per-column statistics.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the summary line.
func (w *SimpleWriter) Write(summary *model.Summary) (int, error) {
	var sb strings.Builder
	sb.WriteString(summary.Line())
	sb.WriteString("\n")

	if w.verbose {
		for _, col := range summary.Columns {
			fmt.Fprintf(&sb, "  %-16s %d/%d (%s)\n",
				col+":", summary.ColumnFill[col], summary.Rows,
				coverage(summary.ColumnFill[col], summary.Rows))
		}
	}

	return io.WriteString(w.output, sb.String())
}

// WriteHistory outputs the runs as an aligned table.
func (w *SimpleWriter) WriteHistory(runs []database.Run) (int, error) {
	if len(runs) == 0 {
		return io.WriteString(w.output, "No runs recorded.\n")
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCOMMAND\tSTARTED\tROWS\tENRICHED\tOUTPUT")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			strconv.FormatInt(run.ID, 10),
			run.Command,
			run.StartedAt.Local().Format(time.DateTime),
			run.Rows,
			run.EnrichedRows,
			run.OutputCSV,
		)
	}
	if err := tw.Flush(); err != nil {
		return 0, err
	}

	return io.WriteString(w.output, sb.String())
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}
