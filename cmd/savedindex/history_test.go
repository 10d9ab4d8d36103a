package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/savedindex/internal/database"
)

func TestRunHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("empty history", func(t *testing.T) {
		t.Parallel()

		stdout, err := runCLI(t, "history", "--db-dir", t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "No runs recorded.") {
			t.Errorf("expected empty history message, got %q", stdout)
		}
	})

	t.Run("records successful runs", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		dbDir := filepath.Join(dir, "db")
		index, savedDir := savedFixture(t, dir)
		output := filepath.Join(dir, "out.csv")

		for range 2 {
			if _, err := runCLI(t, "location", "--db-dir", dbDir,
				"--input-csv", index, "--saved-dir", savedDir, "--output-csv", output); err != nil {
				t.Fatalf("location run: %v", err)
			}
		}

		stdout, err := runCLI(t, "history", "--db-dir", dbDir, "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var runs []database.Run
		if err := json.Unmarshal([]byte(stdout), &runs); err != nil {
			t.Fatalf("history output is not JSON: %v\n%s", err, stdout)
		}
		if len(runs) != 2 {
			t.Fatalf("expected 2 runs, got %d", len(runs))
		}
		if runs[0].Command != "location" || runs[0].Rows != 3 || runs[0].EnrichedRows != 1 {
			t.Errorf("unexpected run: %+v", runs[0])
		}
		if runs[0].ID <= runs[1].ID {
			t.Errorf("expected newest run first, got ids %d, %d", runs[0].ID, runs[1].ID)
		}

		stdout, err = runCLI(t, "history", "--db-dir", dbDir, "--latest", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		runs = nil
		if err := json.Unmarshal([]byte(stdout), &runs); err != nil {
			t.Fatalf("history output is not JSON: %v", err)
		}
		if len(runs) != 1 {
			t.Errorf("expected 1 run with --latest, got %d", len(runs))
		}
	})

	t.Run("failed runs are not recorded", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		dbDir := filepath.Join(dir, "db")

		if _, err := runCLI(t, "location", "--db-dir", dbDir,
			"--input-csv", filepath.Join(dir, "nope.csv"), "--saved-dir", dir,
			"--output-csv", filepath.Join(dir, "out.csv")); err == nil {
			t.Fatal("expected location run to fail")
		}

		stdout, err := runCLI(t, "history", "--db-dir", dbDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "No runs recorded.") {
			t.Errorf("expected empty history, got %q", stdout)
		}
	})

	t.Run("json and markdown are exclusive", func(t *testing.T) {
		t.Parallel()

		_, err := runCLI(t, "history", "--db-dir", t.TempDir(), "--json", "--markdown")
		if err == nil {
			t.Error("expected error for --json with --markdown")
		}
	})

	t.Run("invalid limit", func(t *testing.T) {
		t.Parallel()

		_, err := runCLI(t, "history", "--db-dir", t.TempDir(), "--limit", "0")
		if err == nil {
			t.Error("expected error for --limit 0")
		}
	})
}
