package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/nao1215/savedindex/internal/model"
)

// Read loads the CSV at path into memory.
func Read(path string) (*model.Table, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open input CSV: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses a CSV stream into a Table.
// The first record is the header; every following record becomes a row.
func Decode(r io.Reader) (*model.Table, error) {
	// BOMOverride strips a UTF-8 BOM (and decodes UTF-16 when one is present);
	// the UTF-8 fallback replaces invalid byte sequences instead of failing.
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	t := &model.Table{
		Header: slices.Clone(header),
		Rows:   make([]model.Row, 0),
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", len(t.Rows)+1, err)
		}
		t.Rows = append(t.Rows, toRow(t.Header, record))
	}

	return t, nil
}

// toRow maps a record onto the header.
// Short records read the missing cells as ""; surplus cells are dropped.
func toRow(header, record []string) model.Row {
	row := make(model.Row, len(header))
	for i, col := range header {
		if i < len(record) {
			row[col] = record[i]
		} else {
			row[col] = ""
		}
	}
	return row
}

// MergeHeader returns header followed by each column of extra that header
// does not already contain, in the order given.
// Columns already present keep their original position.
func MergeHeader(header, extra []string) []string {
	merged := slices.Clone(header)
	for _, col := range extra {
		if !slices.Contains(merged, col) {
			merged = append(merged, col)
		}
	}
	return merged
}

// Write stores t at path, creating parent directories as needed.
// The file is written in place; a failure midway leaves a partial file.
func Write(path string, t *model.Table) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return fmt.Errorf("failed to create output CSV: %w", err)
	}

	if err := Encode(f, t); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output CSV: %w", err)
	}
	return nil
}

// Encode writes t as CSV to w.
// For every row only the header columns are emitted; other keys are ignored
// and missing keys are written as empty cells.
// Records end with CRLF while line breaks inside quoted cells are written
// exactly as read.
func Encode(w io.Writer, t *model.Table) error {
	rw := newRecordWriter(w)

	if err := rw.write(t.Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(t.Header))
	for i, row := range t.Rows {
		for j, col := range t.Header {
			record[j] = row[col]
		}
		if err := rw.write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}
	return nil
}

// recordWriter encodes one record at a time and swaps the trailing LF for
// CRLF. csv.Writer.UseCRLF would also rewrite line breaks inside cells.
type recordWriter struct {
	out io.Writer
	buf bytes.Buffer
	csv *csv.Writer
}

func newRecordWriter(out io.Writer) *recordWriter {
	rw := &recordWriter{out: out}
	rw.csv = csv.NewWriter(&rw.buf)
	return rw
}

func (rw *recordWriter) write(record []string) error {
	rw.buf.Reset()
	if err := rw.csv.Write(record); err != nil {
		return err
	}
	rw.csv.Flush()
	if err := rw.csv.Error(); err != nil {
		return err
	}

	line := bytes.TrimSuffix(rw.buf.Bytes(), []byte("\n"))
	if _, err := rw.out.Write(line); err != nil {
		return err
	}
	_, err := io.WriteString(rw.out, "\r\n")
	return err
}
