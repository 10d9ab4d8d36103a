package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nao1215/savedindex/internal/annotation"
	"github.com/nao1215/savedindex/internal/config"
	"github.com/nao1215/savedindex/internal/database"
	"github.com/nao1215/savedindex/internal/metadata"
	"github.com/nao1215/savedindex/internal/model"
	"github.com/nao1215/savedindex/internal/pipeline"
	"github.com/nao1215/savedindex/internal/report"
	"github.com/nao1215/savedindex/internal/table"
)

// errInputNotFound is wrapped when neither annotation input CSV exists.
var errInputNotFound = errors.New("input CSV not found")

// runLocation reads the saved index, appends the location columns and
// writes the result.
func runLocation(paths config.LocationPaths, logger *slog.Logger) (*model.Summary, error) {
	tbl, err := table.Read(paths.InputCSV)
	if err != nil {
		return nil, err
	}
	if !tbl.HasColumn(model.ColumnJSONFilename) {
		logger.Warn("input CSV has no json_filename column; every location will be empty",
			"input", paths.InputCSV)
	}

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddStep(pipeline.NewLocationStep(metadata.NewExtractor(paths.SavedDir, logger)))

	return executeAndWrite(p, tbl, paths.InputCSV, paths.OutputCSV, logger)
}

// runAnnotations merges the annotation store into the saved index.
// The input is InputCSV when it exists and FallbackInputCSV otherwise.
func runAnnotations(paths config.AnnotationPaths, logger *slog.Logger) (*model.Summary, error) {
	input := resolveAnnotationInput(paths)
	if !fileExists(input) {
		return nil, fmt.Errorf("%w: %s", errInputNotFound, input)
	}

	store, err := annotation.Load(paths.AnnotationsJSON)
	if err != nil {
		return nil, err
	}
	logger.Info("annotation store loaded", "path", paths.AnnotationsJSON, "entries", len(store))

	tbl, err := table.Read(input)
	if err != nil {
		return nil, err
	}

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddStep(pipeline.NewAnnotationStep(store))

	return executeAndWrite(p, tbl, input, paths.OutputCSV, logger)
}

// resolveAnnotationInput picks the annotation enricher's input CSV.
func resolveAnnotationInput(paths config.AnnotationPaths) string {
	if fileExists(paths.InputCSV) || paths.FallbackInputCSV == "" {
		return paths.InputCSV
	}
	return paths.FallbackInputCSV
}

// executeAndWrite runs a single-step pipeline and writes the table.
func executeAndWrite(p *pipeline.Pipeline, tbl *model.Table, input, output string, logger *slog.Logger) (*model.Summary, error) {
	logger.Debug("enriching", "input", input, "rows", tbl.Len(), "steps", p.StepNames())

	summary := p.Execute(tbl)[0]
	summary.InputCSV = input
	summary.OutputCSV = output

	if err := table.Write(output, tbl); err != nil {
		return nil, err
	}
	summary.FinishedAt = time.Now()

	return summary, nil
}

// finishRun prints the summary lines, writes the optional Markdown report
// and records the runs in the history database.
// Only printing and the report can fail; history problems are logged.
func finishRun(ctx context.Context, out io.Writer, cfg *config.Config, logger *slog.Logger, summaries ...*model.Summary) error {
	var w report.Writer = report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose))

	var reportFile *os.File
	if cfg.ReportFile != "" {
		f, err := createReportFile(cfg.ReportFile)
		if err != nil {
			return err
		}
		reportFile = f
		w = report.NewMultiWriter(w, report.NewMarkdownWriter(f))
	}

	for _, s := range summaries {
		if _, err := w.Write(s); err != nil {
			if reportFile != nil {
				_ = reportFile.Close()
			}
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	if reportFile != nil {
		if err := reportFile.Close(); err != nil {
			return fmt.Errorf("failed to close report file: %w", err)
		}
	}

	if cfg.SaveHistory {
		recordRuns(ctx, cfg.DBDir, logger, summaries)
	}

	return nil
}

// createReportFile creates the Markdown report file and its parent directories.
func createReportFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}
	return f, nil
}

// recordRuns saves the summaries to the history database.
func recordRuns(ctx context.Context, dbDir string, logger *slog.Logger, summaries []*model.Summary) {
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		logger.Warn("failed to open history database", "dir", dbDir, "error", err)
		return
	}
	defer db.Close()

	for _, s := range summaries {
		id, err := db.SaveRun(ctx, s)
		if err != nil {
			logger.Warn("failed to record run", "command", s.Command, "error", err)
			continue
		}
		logger.Debug("run recorded", "id", id, "command", s.Command, "db", db.Path())
	}
}
