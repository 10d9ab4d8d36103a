package model

import (
	"slices"
	"strings"
)

// Well-known saved index columns read by the enrichers.
const (
	// ColumnShortcode is the public post identifier.
	ColumnShortcode = "shortcode"

	// ColumnJSONFilename names the compressed per-post metadata document.
	ColumnJSONFilename = "json_filename"
)

// Row is a single saved index record keyed by column name.
type Row map[string]string

// Get returns the trimmed value of column, or "" when the column is absent.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// SetDefault stores value under column unless the row already has the column.
func (r Row) SetDefault(column, value string) {
	if _, ok := r[column]; !ok {
		r[column] = value
	}
}

// Table is an in-memory CSV table.
// Header defines the output column order; rows may carry keys outside of it,
// which are ignored on write.
type Table struct {
	Header []string
	Rows   []Row
}

// HasColumn reports whether the header contains column.
func (t *Table) HasColumn(column string) bool {
	return slices.Contains(t.Header, column)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}
