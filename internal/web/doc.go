// Package web serves the browser UI started by `scribe serve`.
//
// Every page request builds its own view (views.UploadView or
// views.LookupView) so browser tabs never share state. The router is chi;
// the JSON route under /api is wrapped in CORS for the configured origins.
// Inbound requests get an X-Request-ID that is forwarded to the analysis
// service, so a page render and its outbound call log the same
// correlation id.
package web
