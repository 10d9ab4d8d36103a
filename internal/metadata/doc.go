// Package metadata extracts location data from per-post metadata documents.
//
// Each saved post has a compressed JSON document next to the media files,
// referenced from the saved index by its json_filename column. The documents
// are produced by a third-party downloader and their completeness varies a
// lot, so extraction is strictly best-effort: any fault (missing file,
// corrupt archive, malformed JSON, unexpected shapes) yields the empty
// location triple and is reported only at debug level.
//
// Documents are normally xz containers (*.json.xz). Legacy LZMA "alone"
// streams are detected by their missing xz magic and decoded as well.
package metadata
