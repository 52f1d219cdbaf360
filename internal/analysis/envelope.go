package analysis

import (
	"errors"
	"path/filepath"
	"strings"
)

// StatusSuccess is the success marker carried by upload and analyze replies.
const StatusSuccess = "success"

// AcceptedExtensions lists the file types offered by the upload picker.
var AcceptedExtensions = []string{".mp4", ".mov", ".webm", ".mp3", ".wav", ".txt"}

// IsAcceptedFile reports whether name carries one of AcceptedExtensions.
func IsAcceptedFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(name)))
	for _, accepted := range AcceptedExtensions {
		if ext == accepted {
			return true
		}
	}
	return false
}

// AcceptAttribute renders AcceptedExtensions for an HTML file input.
func AcceptAttribute() string {
	return strings.Join(AcceptedExtensions, ",")
}

// AnalyzeRequest submits a transcript for classification.
type AnalyzeRequest struct {
	TranscriptID   string `json:"transcript_id"`
	CreatorID      string `json:"creator_id"`
	TranscriptText string `json:"transcript_text"`
}

// Validate mirrors the backend's required-field check.
func (r AnalyzeRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(r.TranscriptID) == "" {
		missing = append(missing, "transcript_id")
	}
	if strings.TrimSpace(r.CreatorID) == "" {
		missing = append(missing, "creator_id")
	}
	if strings.TrimSpace(r.TranscriptText) == "" {
		missing = append(missing, "transcript_text")
	}
	if len(missing) > 0 {
		return errors.New(strings.Join(missing, ", ") + " required")
	}
	return nil
}

// UploadResponse is the reply to a file upload.
type UploadResponse struct {
	Status string  `json:"status" yaml:"status"`
	Result *Result `json:"result" yaml:"result"`
}

// Succeeded reports whether the reply carries the success marker and a result.
func (r UploadResponse) Succeeded() bool {
	return r.Status == StatusSuccess && r.Result != nil
}

// AnalyzeResponse is the reply to a transcript submission. The service
// answers with a flat object: the status marker next to the result fields.
type AnalyzeResponse struct {
	Status string `json:"status" yaml:"status"`
	Result Result `json:"result" yaml:"result"`
}

// Succeeded reports whether the reply carries the success marker.
func (r AnalyzeResponse) Succeeded() bool {
	return r.Status == StatusSuccess
}
