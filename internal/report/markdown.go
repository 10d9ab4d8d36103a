package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/savedindex/internal/database"
	"github.com/nao1215/savedindex/internal/model"
)

// MarkdownWriter outputs reports in GitHub Flavored Markdown.
// Tables, alerts and the mermaid chart come from nao1215/markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs a run report.
func (w *MarkdownWriter) Write(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeColumns(md, summary)
	w.writeAlert(md, summary)

	return len(md.String()), md.Build()
}

// writeHeader writes the run properties table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, s *model.Summary) {
	md.H1("Saved Index Enrichment Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Enricher", "`" + s.Command + "`"},
			{"Input CSV", "`" + s.InputCSV + "`"},
			{"Output CSV", "`" + s.OutputCSV + "`"},
			{"Run Date", s.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", s.Duration().Round(time.Millisecond).String()},
			{"Rows", strconv.Itoa(s.Rows)},
			{s.CounterLabel, strconv.Itoa(s.EnrichedRows)},
		},
	})
	md.PlainText("")
}

// writeColumns writes fill statistics for every derived column.
func (w *MarkdownWriter) writeColumns(md *markdown.Markdown, s *model.Summary) {
	md.H2("Derived Columns")
	md.PlainText("")

	rows := make([][]string, 0, len(s.Columns))
	for _, col := range s.Columns {
		filled := s.ColumnFill[col]
		rows = append(rows, []string{
			"`" + col + "`",
			strconv.Itoa(filled),
			strconv.Itoa(s.Rows - filled),
			coverage(filled, s.Rows),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Column", "Filled", "Empty", "Coverage"},
		Rows:   rows,
	})
	md.PlainText("")

	if s.Rows > 0 {
		w.writePieChart(md, s)
	}
}

// writePieChart writes a mermaid pie chart of enriched vs untouched rows.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s *model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Rows Enriched"),
		piechart.WithShowData(true),
	)

	if s.EnrichedRows > 0 {
		chart.LabelAndIntValue("Enriched", uint64(s.EnrichedRows))
	}
	if rest := s.Rows - s.EnrichedRows; rest > 0 {
		chart.LabelAndIntValue("Unchanged", uint64(rest))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes a closing alert based on how many rows were enriched.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, s *model.Summary) {
	switch {
	case s.Rows == 0:
		md.Note("The input CSV has no data rows.")
	case s.EnrichedRows == 0:
		md.Warningf("No row received a value. Check that the %s inputs match the saved index.", s.Command)
	case s.EnrichedRows == s.Rows:
		md.Tip("Every row received at least one value.")
	default:
		md.Importantf("%d of %d rows received at least one value.", s.EnrichedRows, s.Rows)
	}
	md.PlainText("")
}

// WriteHistory outputs the runs as a Markdown table.
func (w *MarkdownWriter) WriteHistory(runs []database.Run) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Run History")
	md.PlainText("")

	if len(runs) == 0 {
		md.PlainText("No runs recorded.")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			strconv.FormatInt(run.ID, 10),
			run.Command,
			run.StartedAt.Local().Format(time.DateTime),
			strconv.Itoa(run.Rows),
			strconv.Itoa(run.EnrichedRows),
			coverage(run.EnrichedRows, run.Rows),
			"`" + run.OutputCSV + "`",
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"ID", "Enricher", "Started", "Rows", "Enriched", "Coverage", "Output"},
		Rows:   rows,
	})

	return len(md.String()), md.Build()
}
