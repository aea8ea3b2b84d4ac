// Package logging configures structured logging for transcriptor.
//
// It wraps log/slog with two handler flavors (console for interactive use,
// JSON for machine consumption), attribute helpers, and context-derived
// fields so every log line produced while a request is in flight carries the
// request correlation id and pipeline stage.
package logging
