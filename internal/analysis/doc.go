// Package analysis defines the entity-classification result returned by the
// remote analysis service together with the request and response envelopes
// that carry it.
//
// Untyped network payloads enter the program only through the Decode helpers.
// They either produce a typed Result or an error wrapping ErrInvalidResponse,
// so a malformed server reply is a handled error category instead of a type
// mismatch discovered while rendering.
//
// Results are display-only: callers receive values, copy slices before
// handing them out, and never write back.
package analysis
