// Package services defines shared utilities consumed by the analysis service
// client and the views built on top of it.
//
// Key responsibilities:
//   - Structured error markers (validation, HTTP status, unavailable) plus the
//     Wrap helper and StatusError so callers can classify failures with
//     errors.Is instead of string matching.
//   - Context helpers that stamp request correlation identifiers for logging.
//
// Use these helpers when adding new calls against the analysis service so
// failure classification stays uniform across the CLI and the web UI.
package services
