// Package main hosts the scribe CLI entrypoint and command graph.
//
// The Cobra-based command tree uploads media or transcripts to the entity
// classification service, looks up and lists stored classifications, submits
// raw transcript text, and serves the browser UI. It centralizes
// configuration resolution, the --api-url override, logger construction and
// the service client so subcommands only deal with presentation.
//
// Add behaviour to the internal packages first (views for state and
// rendering, services/classification for the wire), then surface it here.
package main
