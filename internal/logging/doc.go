// Package logging assembles structured slog loggers used by the CLI, the API
// client and the web UI.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers that tag log lines with the
// request correlation ID. A no-op logger is provided for tests and for wiring
// code that runs before configuration is loaded.
package logging
