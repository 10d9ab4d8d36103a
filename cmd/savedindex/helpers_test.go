package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"
)

// runCLI executes the root command with args and returns its standard output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// writeFile creates path with content, including parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// writeXZ compresses content into path as an xz container.
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
	writeFile(t, path, buf.String())
}

// readFile returns the content of path.
func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path) //nolint:gosec // test fixture path
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// savedFixture lays out a saved index with one resolvable metadata document.
// It returns the index path and the metadata directory.
func savedFixture(t *testing.T, dir string) (string, string) {
	t.Helper()

	savedDir := filepath.Join(dir, "saved")
	writeXZ(t, filepath.Join(savedDir, "a.json.xz"),
		`{"node":{"location":{"name":" Golden Gate ","address_json":"{\"city_name\": \"San Francisco, California\"}"}}}`)
	writeXZ(t, filepath.Join(savedDir, "c.json.xz"), `{"node":{"caption":"no location"}}`)

	index := filepath.Join(dir, "saved_index.csv")
	writeFile(t, index, "shortcode,json_filename,caption\n"+
		"A1,a.json.xz,hello\n"+
		"B2,missing.json.xz,\n"+
		"C3,c.json.xz,x\n")

	return index, savedDir
}
