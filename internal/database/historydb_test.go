package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nao1215/savedindex/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *HistoryDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// newSummary builds a finished summary for tests.
func newSummary(command string, rows, enriched int) *model.Summary {
	s := model.NewSummary(command, "rows_with_"+command, model.LocationColumns())
	s.InputCSV = "in.csv"
	s.OutputCSV = "out.csv"
	s.Rows = rows
	s.EnrichedRows = enriched
	s.ColumnFill[model.ColumnLocationCity] = enriched
	s.FinishedAt = s.StartedAt.Add(250 * time.Millisecond)
	return s
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dbDir, DBFileName)); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
		if db.Path() != filepath.Join(dbDir, DBFileName) {
			t.Errorf("unexpected path %q", db.Path())
		}
	})

	t.Run("CreateIfNotExists=false fails for missing database", func(t *testing.T) {
		t.Parallel()

		_, err := Open(filepath.Join(t.TempDir(), "missing"), Options{CreateIfNotExists: false})
		if err == nil {
			t.Error("expected error for missing database")
		}
	})

	t.Run("reopens existing database", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		db, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		if _, err := db.SaveRun(context.Background(), newSummary("location", 3, 1)); err != nil {
			t.Fatalf("failed to save run: %v", err)
		}
		_ = db.Close()

		db, err = Open(dir, Options{CreateIfNotExists: false})
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer db.Close()

		runs, err := db.ListRuns(context.Background(), "", 10)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 1 {
			t.Errorf("expected 1 run after reopen, got %d", len(runs))
		}
	})
}

// TestSaveAndListRuns tests the run round trip.
func TestSaveAndListRuns(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)

	first := newSummary("location", 10, 4)
	second := newSummary("annotations", 10, 2)
	third := newSummary("location", 12, 5)

	for _, s := range []*model.Summary{first, second, third} {
		if _, err := db.SaveRun(ctx, s); err != nil {
			t.Fatalf("failed to save run: %v", err)
		}
	}

	t.Run("lists newest first", func(t *testing.T) {
		runs, err := db.ListRuns(ctx, "", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(runs) != 3 {
			t.Fatalf("expected 3 runs, got %d", len(runs))
		}
		if runs[0].Rows != 12 || runs[2].Rows != 10 {
			t.Errorf("unexpected order: %d, %d", runs[0].Rows, runs[2].Rows)
		}
	})

	t.Run("filters by command and honours limit", func(t *testing.T) {
		runs, err := db.ListRuns(ctx, "location", 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(runs) != 1 || runs[0].EnrichedRows != 5 {
			t.Errorf("unexpected runs: %+v", runs)
		}
	})

	t.Run("restores summary fields", func(t *testing.T) {
		run, err := db.LatestRun(ctx, "annotations")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if run.CounterLabel != "rows_with_annotations" {
			t.Errorf("unexpected counter label %q", run.CounterLabel)
		}
		if run.ColumnFill[model.ColumnLocationCity] != 2 {
			t.Errorf("unexpected column fill %v", run.ColumnFill)
		}
		if len(run.Columns) != 3 {
			t.Errorf("unexpected columns %v", run.Columns)
		}
		if run.Duration() != 250*time.Millisecond {
			t.Errorf("expected 250ms duration, got %v", run.Duration())
		}
	})

	t.Run("latest run of unknown command", func(t *testing.T) {
		_, err := db.LatestRun(ctx, "unknown")
		if !errors.Is(err, ErrNoRuns) {
			t.Errorf("expected ErrNoRuns, got %v", err)
		}
	})
}

// TestParseTimestamp tests timestamp parsing fallbacks.
func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	if parseTimestamp("2025-01-02T03:04:05.123Z").IsZero() {
		t.Error("expected RFC3339Nano to parse")
	}
	if parseTimestamp("2025-01-02 03:04:05").IsZero() {
		t.Error("expected SQLite datetime to parse")
	}
	if !parseTimestamp("garbage").IsZero() {
		t.Error("expected zero time for garbage")
	}
}
