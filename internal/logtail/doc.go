// Package logtail reads the tail of the client's JSON log file and renders
// it for a terminal.
//
// Read keeps a ring buffer of maxLines entries, so memory stays bounded by
// the requested tail rather than the file size. Missing files read as
// empty. Parse and Format turn slog JSON records into one-line summaries;
// FormatLines additionally drops records below a minimum level.
package logtail
