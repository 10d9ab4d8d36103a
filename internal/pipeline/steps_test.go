package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"

	"github.com/nao1215/savedindex/internal/annotation"
	"github.com/nao1215/savedindex/internal/metadata"
	"github.com/nao1215/savedindex/internal/model"
)

func writeXZ(t *testing.T, path, content string) {
	t.Helper()

	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("failed to create xz writer: %v", err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("failed to compress: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close xz writer: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
}

func TestLocationStep(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeXZ(t, filepath.Join(dir, "a.json.xz"),
		`{"node": {"location": {"name": "Senkoji", "address_json": "{\"city_name\": \"Onomichi, Hiroshima\"}"}}}`)

	step := NewLocationStep(metadata.NewExtractor(dir, nil))

	if step.Name() != LocationStepName {
		t.Errorf("unexpected name %q", step.Name())
	}

	t.Run("fills columns from metadata", func(t *testing.T) {
		t.Parallel()

		row := model.Row{model.ColumnJSONFilename: "a.json.xz"}
		if !step.Enrich(row) {
			t.Error("expected row to be counted")
		}
		if row[model.ColumnLocationCity] != "Onomichi" || row[model.ColumnLocationRegion] != "Hiroshima" {
			t.Errorf("unexpected location: %v", row)
		}
	})

	t.Run("unresolvable row gets empty triple", func(t *testing.T) {
		t.Parallel()

		row := model.Row{
			model.ColumnJSONFilename:   "missing.json.xz",
			model.ColumnLocationRegion: "stale",
		}
		if step.Enrich(row) {
			t.Error("expected row not to be counted")
		}
		for _, col := range model.LocationColumns() {
			if v, ok := row[col]; !ok || v != "" {
				t.Errorf("expected %s to be empty, got %q", col, v)
			}
		}
	})
}

func TestAnnotationStep(t *testing.T) {
	t.Parallel()

	store, err := annotation.Parse([]byte(`{
		"ABC": {"tags": ["a", "b"], "flags": {"northstar": "yes"}},
		"file.json.xz": {"notes": "by filename"},
		"EMPTY": {"tags": [], "flags": {"northstar": "perhaps"}}
	}`))
	if err != nil {
		t.Fatalf("failed to parse store: %v", err)
	}
	step := NewAnnotationStep(store)

	t.Run("shortcode match", func(t *testing.T) {
		t.Parallel()

		row := model.Row{model.ColumnShortcode: "ABC"}
		if !step.Enrich(row) {
			t.Error("expected row to be counted")
		}
		if row[model.ColumnMyTags] != "a,b" || row[model.ColumnMyNorthstar] != "True" {
			t.Errorf("unexpected row: %v", row)
		}
	})

	t.Run("filename match", func(t *testing.T) {
		t.Parallel()

		row := model.Row{model.ColumnShortcode: "XYZ", model.ColumnJSONFilename: "file.json.xz"}
		if !step.Enrich(row) {
			t.Error("expected row to be counted")
		}
		if row[model.ColumnMyNotes] != "by filename" {
			t.Errorf("unexpected notes: %q", row[model.ColumnMyNotes])
		}
	})

	t.Run("unmatched row gets empty columns and is not counted", func(t *testing.T) {
		t.Parallel()

		row := model.Row{model.ColumnShortcode: "NOPE"}
		if step.Enrich(row) {
			t.Error("expected row not to be counted")
		}
		for _, col := range model.AnnotationColumns() {
			if v, ok := row[col]; !ok || v != "" {
				t.Errorf("expected %s to be empty, got %q", col, v)
			}
		}
	})

	t.Run("matched annotation with only blank fields is not counted", func(t *testing.T) {
		t.Parallel()

		row := model.Row{model.ColumnShortcode: "EMPTY"}
		if step.Enrich(row) {
			t.Error("expected row not to be counted")
		}
		if row[model.ColumnMyNorthstar] != "" {
			t.Errorf("expected unknown northstar, got %q", row[model.ColumnMyNorthstar])
		}
	})
}
