package classification

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"scribe/internal/analysis"
	"scribe/internal/services"
)

// uploadField is the multipart field the service reads the file from.
const uploadField = "file"

// Upload sends a media or transcript file for transcription and
// classification. Only the base name of filename is transmitted.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (analysis.UploadResponse, error) {
	const op = "upload"
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return analysis.UploadResponse{}, services.Wrap(services.ErrValidation, op, "file name is required", nil)
	}
	if content == nil {
		return analysis.UploadResponse{}, services.Wrap(services.ErrValidation, op, "file content is required", nil)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	field, err := writer.CreateFormFile(uploadField, name)
	if err != nil {
		return analysis.UploadResponse{}, fmt.Errorf("%s: create file field: %w", op, err)
	}
	if _, err := io.Copy(field, content); err != nil {
		return analysis.UploadResponse{}, fmt.Errorf("%s: read %s: %w", op, name, err)
	}
	if err := writer.Close(); err != nil {
		return analysis.UploadResponse{}, fmt.Errorf("%s: close multipart writer: %w", op, err)
	}

	payload, err := c.do(ctx, op, http.MethodPost, &url.URL{Path: uploadPath}, writer.FormDataContentType(), body)
	if err != nil {
		return analysis.UploadResponse{}, err
	}
	resp, err := analysis.DecodeUploadResponse(payload)
	if err != nil {
		return analysis.UploadResponse{}, fmt.Errorf("%s: %w", op, err)
	}
	return resp, nil
}
