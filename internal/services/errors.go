package services

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

var (
	ErrValidation  = errors.New("validation error")
	ErrHTTPStatus  = errors.New("http error")
	ErrUnavailable = errors.New("service unavailable")
	ErrNotFound    = errors.New("not found")
)

// maxErrorBody bounds how much of an error response is kept for display.
const maxErrorBody = 4 << 10

// StatusError reports a non-2xx reply from the analysis service.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

// NewStatusError builds a StatusError, trimming and bounding the body text.
func NewStatusError(operation string, code int, body []byte) *StatusError {
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	return &StatusError{Operation: operation, StatusCode: code, Body: text}
}

func (e *StatusError) Error() string {
	detail := buildDetail(e.Operation, fmt.Sprintf("status %d", e.StatusCode))
	if e.Body == "" {
		return detail
	}
	return detail + ": " + e.Body
}

// Is matches ErrHTTPStatus and, for 404 replies, ErrNotFound.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrHTTPStatus:
		return true
	case ErrNotFound:
		return e.StatusCode == 404
	default:
		return false
	}
}

// StatusCode extracts the HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}
	return 0, false
}

// Wrap builds an error message that includes operation context while tagging
// it with the provided marker. The marker should be one of the exported
// sentinel errors above.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrUnavailable
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsUnavailable reports whether err means no response was received at all:
// refused or reset connections, DNS failures and transport errors.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnavailable) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		err = urlErr.Err
	}
	var opErr *net.OpError
	var dnsErr *net.DNSError
	return errors.As(err, &opErr) || errors.As(err, &dnsErr)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
