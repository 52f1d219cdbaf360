// Package views holds the state machines and renderers shared by the CLI and
// the web UI.
//
// UploadView drives a file through selection, upload and the resulting
// classification. LookupView fetches a stored classification by id. Both
// keep at most one request in flight and translate client errors into the
// messages shown to the user. Formatter turns an analysis.Result into the
// report sections, the fixed lookup rows and the list summary rows.
package views
