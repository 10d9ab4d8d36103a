// Package log provides privacy-aware logging built on the standard slog
// package.
//
// The saved index and the annotation store carry user-authored free text:
// personal notes, captions, owner names. None of it is needed to debug an
// enrichment run, and logs get pasted into issues, so the PrivateHandler
// masks those values before they reach the underlying handler. Long string
// values are truncated as well so a stray caption cannot flood the terminal.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Debug("annotation matched",
//	    "shortcode", "Cx1y2z",
//	    "my_notes", "call mom about this place", // logged as ***PRIVATE***
//	)
package log
