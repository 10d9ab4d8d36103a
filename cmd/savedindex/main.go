// Package main provides the entry point for the savedindex CLI.
//
// savedindex enriches the saved-posts index CSV with location data taken
// from the per-post metadata documents and with the user's annotations.
//
// Usage:
//
//	savedindex location
//	savedindex annotations
//	savedindex enrich
//
// See --help for all available options.
package main

// main is the entry point for savedindex.
func main() {
	Execute()
}
