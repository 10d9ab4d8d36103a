package table

import "errors"

// ErrNoHeader is returned when the input CSV is empty and has no header row.
var ErrNoHeader = errors.New("input CSV has no header")
