package views

import (
	"errors"
	"fmt"
	"strings"

	"scribe/internal/analysis"
	"scribe/internal/services"
)

var (
	// ErrFileRequired is returned when an upload is submitted with no file selected.
	ErrFileRequired = errors.New("no file selected")
	// ErrBusy is returned while a view already has a request in flight.
	ErrBusy = errors.New("request already in progress")
	// ErrIDRequired is returned when a lookup is submitted with a blank id.
	ErrIDRequired = errors.New("analysis id is required")
)

// User-facing status and error messages.
const (
	MsgSelectFile       = "Please select a file"
	MsgUploading        = "Uploading and processing... This may take a few minutes."
	MsgProcessingDone   = "Processing completed successfully!"
	MsgProcessingFailed = "Error processing file"
	MsgInvalidResponse  = "Invalid response from server"
	MsgUnknownError     = "Unknown error occurred"
	MsgIDRequired       = "Analysis ID is required"
	MsgNetworkError     = "Network/CORS error – check backend CORS"
)

// UploadErrorMessage translates an upload failure into the message shown
// beneath the upload form. baseURL names the service in connection errors.
func UploadErrorMessage(err error, baseURL string) string {
	return requestErrorMessage("Upload failed", err, baseURL)
}

// AnalyzeErrorMessage translates a transcript submission failure.
func AnalyzeErrorMessage(err error, baseURL string) string {
	return requestErrorMessage("Analysis failed", err, baseURL)
}

func requestErrorMessage(prefix string, err error, baseURL string) string {
	if err == nil {
		return ""
	}
	var statusErr *services.StatusError
	switch {
	case errors.As(err, &statusErr):
		if statusErr.Body == "" {
			return fmt.Sprintf("%s (%d)", prefix, statusErr.StatusCode)
		}
		return fmt.Sprintf("%s (%d): %s", prefix, statusErr.StatusCode, statusErr.Body)
	case services.IsUnavailable(err):
		return "Cannot connect to server. Please ensure the backend is running on " + baseURL
	case errors.Is(err, analysis.ErrInvalidResponse):
		return MsgInvalidResponse
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return MsgUnknownError
}

// LookupErrorMessage translates a lookup failure into the message shown on
// the lookup page.
func LookupErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrIDRequired) {
		return MsgIDRequired
	}
	if code, ok := services.StatusCode(err); ok {
		return fmt.Sprintf("Server error: %d", code)
	}
	if errors.Is(err, analysis.ErrInvalidResponse) {
		return MsgInvalidResponse
	}
	return MsgNetworkError
}
