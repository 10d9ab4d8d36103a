// Package database provides SQLite-based run history for savedindex.
//
// Every successful enrichment run is recorded with its input and output
// paths, row counts and per-column fill statistics, so that successive runs
// over a growing saved index can be compared with the history command.
//
// The database is a single SQLite file (modernc.org/sqlite) under the XDG
// data directory, one row per run.
package database
