// Package config loads, normalizes, and validates scribe configuration data.
//
// It supplies repository defaults, reads TOML files from --config,
// ~/.config/scribe/config.toml or ./scribe.toml, and honours environment
// overrides such as SCRIBE_API_URL. The analysis service address lives here
// rather than in code so the same binary can target any deployment.
//
// Always obtain settings through this package so downstream code receives a
// normalized base URL, a resolvable time zone and clear validation errors.
package config
