// Package pipeline runs enrichment steps over a saved index table.
//
// Every enricher follows the same shape: the whole table is already in
// memory, each step declares the columns it appends, and then derives those
// columns row by row. Steps never fail on a single row; per-row lookups
// degrade to empty values so the output table stays rectangular.
//
// The pipeline owns the header merge, row counting and per-column
// statistics shared by all steps.
package pipeline
