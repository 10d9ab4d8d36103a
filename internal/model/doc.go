// Package model defines the data structures shared across savedindex.
//
// The saved index is a CSV export where each row describes one saved post.
// Enrichers never replace a row; they append derived columns such as the
// location triple or the user's annotations.
//
// Rows are plain column → value maps; every input column survives the
// round trip untouched.
package model
