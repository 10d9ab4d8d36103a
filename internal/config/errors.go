package config

import "errors"

// Configuration validation errors.
// These errors are returned by the Validate methods and provide specific
// information about what is wrong with the configuration.
// Check them with errors.Is.
var (
	// ErrEmptyInputCSV is returned when no input CSV path is configured.
	ErrEmptyInputCSV = errors.New("invalid input CSV: path must not be empty")

	// ErrEmptyOutputCSV is returned when no output CSV path is configured.
	ErrEmptyOutputCSV = errors.New("invalid output CSV: path must not be empty")

	// ErrEmptySavedDir is returned when the metadata directory is not configured.
	ErrEmptySavedDir = errors.New("invalid saved dir: path must not be empty")

	// ErrEmptyAnnotationsJSON is returned when the annotation store path is not configured.
	ErrEmptyAnnotationsJSON = errors.New("invalid annotations json: path must not be empty")

	// ErrInvalidHistoryLimit is returned when the history listing limit is not positive.
	ErrInvalidHistoryLimit = errors.New("invalid history limit: must be positive")
)
