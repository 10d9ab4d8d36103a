// Package report renders run summaries and run history.
//
// This package contains writers for different output formats:
//   - SimpleWriter: the one-line summary printed after every run
//   - MarkdownWriter: a shareable report with fill statistics and a chart
//   - JSONWriter: structured output for scripts
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed with MultiWriter.
package report
