// Package table reads and writes the saved index CSV.
//
// Tables are always loaded fully into memory before any output is written,
// so the same path may be used for input and output by a caller that does
// not mind losing the original on a crash.
//
// Reading is lenient in the same places spreadsheet exports tend to be
// sloppy: a UTF-8 byte order mark is stripped, invalid UTF-8 is replaced
// with U+FFFD, and ragged rows are padded or truncated to the header.
// Writing follows standard CSV quoting with CRLF record terminators.
package table
