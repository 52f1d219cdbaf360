package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidResponse marks payloads that reached the client but do not match
// the expected contract.
var ErrInvalidResponse = errors.New("invalid response from server")

// DecodeError describes why a payload was rejected.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrInvalidResponse, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidResponse, e.Reason)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidResponse, e.Err}
	}
	return []error{ErrInvalidResponse}
}

func invalid(reason string, err error) error {
	return &DecodeError{Reason: reason, Err: err}
}

// DecodeResult decodes a single result object. Only the identifier is
// required; the remaining fields may be absent.
func DecodeResult(data []byte) (Result, error) {
	result, err := decodeRawResult(data)
	if err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(result.AnalysisID) == "" {
		return Result{}, invalid("result has no analysis_id", nil)
	}
	return result, nil
}

// decodeRawResult decodes one result object and keeps its original bytes.
func decodeRawResult(data []byte) (Result, error) {
	var result Result
	if err := decodeObject(data, &result); err != nil {
		return Result{}, err
	}
	result.Raw = append(json.RawMessage(nil), bytes.TrimSpace(data)...)
	return result, nil
}

// DecodeResults decodes a result list. A null body is an empty list.
func DecodeResults(data []byte) ([]Result, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return []Result{}, nil
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, invalid("expected a JSON array", nil)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, invalid("decode result list", err)
	}
	results := make([]Result, 0, len(items))
	for i, item := range items {
		result, err := decodeRawResult(item)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(result.AnalysisID) == "" {
			return nil, invalid(fmt.Sprintf("result %d has no analysis_id", i), nil)
		}
		results = append(results, result)
	}
	return results, nil
}

// DecodeUploadResponse decodes an upload reply and enforces the success
// contract: the marker must be "success" and the result must validate.
func DecodeUploadResponse(data []byte) (UploadResponse, error) {
	var envelope struct {
		Status string          `json:"status"`
		Result json.RawMessage `json:"result"`
	}
	if err := decodeObject(data, &envelope); err != nil {
		return UploadResponse{}, err
	}
	if envelope.Status != StatusSuccess {
		return UploadResponse{}, invalid(fmt.Sprintf("status %q", envelope.Status), nil)
	}
	raw := bytes.TrimSpace(envelope.Result)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return UploadResponse{}, invalid("result missing", nil)
	}
	result, err := decodeRawResult(raw)
	if err != nil {
		return UploadResponse{}, err
	}
	if err := result.Validate(); err != nil {
		return UploadResponse{}, invalid("result", err)
	}
	return UploadResponse{Status: envelope.Status, Result: &result}, nil
}

// DecodeAnalyzeResponse decodes the flat analyze reply.
func DecodeAnalyzeResponse(data []byte) (AnalyzeResponse, error) {
	var flat struct {
		Status string `json:"status"`
		Result
	}
	if err := decodeObject(data, &flat); err != nil {
		return AnalyzeResponse{}, err
	}
	if flat.Status != StatusSuccess {
		return AnalyzeResponse{}, invalid(fmt.Sprintf("status %q", flat.Status), nil)
	}
	if err := flat.Result.Validate(); err != nil {
		return AnalyzeResponse{}, invalid("result", err)
	}
	flat.Result.Raw = append(json.RawMessage(nil), bytes.TrimSpace(data)...)
	return AnalyzeResponse{Status: flat.Status, Result: flat.Result}, nil
}

func decodeObject(data []byte, target any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return invalid("empty body", nil)
	}
	if trimmed[0] != '{' {
		return invalid("expected a JSON object", nil)
	}
	if err := json.Unmarshal(trimmed, target); err != nil {
		return invalid("decode", err)
	}
	return nil
}
