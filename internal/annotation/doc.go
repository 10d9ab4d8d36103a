// Package annotation loads the user's annotation store and flattens
// annotations into saved index columns.
//
// The store is the JSON export of the browsing app's local storage: a single
// object keyed by post id, where each value looks like
//
//	{"tags": ["a", "b"], "notes": "...", "flags": {"northstar": true}, "categories": ["production"]}
//
// The app keys posts by shortcode, falling back to the metadata filename for
// posts without one, so lookups try both in that order.
package annotation
