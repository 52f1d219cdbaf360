// Package classification is the HTTP client for the remote entity
// classification service.
//
// # Entry Points
//
// NewClient: construct a client for a base URL (scheme optional).
// Client.SubmitAnalysis: POST a transcript as JSON.
// Client.Upload: POST a media/transcript file as multipart form data.
// Client.ListResults / Client.GetResultByID: read stored classifications.
//
// # Failure Classification
//
// Every call returns either a typed payload or an error in exactly one of four
// categories, testable with errors.Is:
//
//   - services.ErrValidation: caller input rejected before any request.
//   - services.ErrHTTPStatus: the service answered with a non-2xx status; the
//     error is a *services.StatusError carrying the code and body text.
//   - services.ErrUnavailable: no response was received (refused connection,
//     DNS, transport failure).
//   - analysis.ErrInvalidResponse: the body did not match the expected shape.
//
// The client never retries and sets no timeout of its own; bound calls with
// the context when a deadline is wanted.
package classification
