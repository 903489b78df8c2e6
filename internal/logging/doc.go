// Package logging assembles structured slog loggers and formatting helpers used
// across better.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so workflow code automatically tags log
// lines with the batch run ID, the album being processed, and the target
// format. The package also provides a no-op logger for tests and wiring code
// that cannot fail.
package logging
