package classification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"scribe/internal/analysis"
	"scribe/internal/logging"
	"scribe/internal/services"
)

const (
	// DefaultBaseURL is the analysis service address used when none is configured.
	DefaultBaseURL = "http://localhost:8080"

	apiPrefix       = "/api/entity-classification"
	analyzePath     = apiPrefix + "/analyze"
	uploadPath      = apiPrefix + "/upload"
	resultsPath     = apiPrefix + "/results"
	requestIDHeader = "X-Request-ID"
)

// HTTPDoer describes the HTTP client used to reach the service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the entity classification service.
type Client struct {
	base      *url.URL
	http      HTTPDoer
	logger    *slog.Logger
	userAgent string
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.http = doer
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		c.userAgent = strings.TrimSpace(agent)
	}
}

// NewClient constructs a client rooted at baseURL. An empty baseURL falls
// back to DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := ParseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	client := &Client{
		base: base,
		// No timeout - a hung request blocks until the caller's context ends.
		http:   &http.Client{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "classification-client")
	return client, nil
}

// ParseBaseURL normalizes a service address into a base URL. A path prefix
// such as a reverse-proxy mount is kept; query and fragment are dropped.
func ParseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultBaseURL
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("parse base url: unsupported scheme %q", base.Scheme)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("parse base url: host missing in %q", raw)
	}
	base.Path = strings.TrimRight(base.Path, "/")
	base.RawPath = strings.TrimRight(base.RawPath, "/")
	base.RawQuery = ""
	base.Fragment = ""
	return base, nil
}

// BaseURL returns the service address the client targets.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// SubmitAnalysis sends a transcript for classification.
func (c *Client) SubmitAnalysis(ctx context.Context, req analysis.AnalyzeRequest) (analysis.AnalyzeResponse, error) {
	const op = "submit analysis"
	if err := req.Validate(); err != nil {
		return analysis.AnalyzeResponse{}, services.Wrap(services.ErrValidation, op, "", err)
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return analysis.AnalyzeResponse{}, fmt.Errorf("%s: encode request: %w", op, err)
	}
	body, err := c.do(ctx, op, http.MethodPost, &url.URL{Path: analyzePath}, "application/json", bytes.NewReader(payload))
	if err != nil {
		return analysis.AnalyzeResponse{}, err
	}
	resp, err := analysis.DecodeAnalyzeResponse(body)
	if err != nil {
		return analysis.AnalyzeResponse{}, fmt.Errorf("%s: %w", op, err)
	}
	return resp, nil
}

// ListResults returns every stored classification.
func (c *Client) ListResults(ctx context.Context) ([]analysis.Result, error) {
	const op = "list results"
	body, err := c.do(ctx, op, http.MethodGet, &url.URL{Path: resultsPath}, "", nil)
	if err != nil {
		return nil, err
	}
	results, err := analysis.DecodeResults(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return results, nil
}

// GetResultByID returns a single classification.
func (c *Client) GetResultByID(ctx context.Context, analysisID string) (analysis.Result, error) {
	const op = "get result"
	analysisID = strings.TrimSpace(analysisID)
	if analysisID == "" {
		return analysis.Result{}, services.Wrap(services.ErrValidation, op, "analysis id is required", nil)
	}
	ref := &url.URL{
		Path:    resultsPath + "/" + analysisID,
		RawPath: resultsPath + "/" + url.PathEscape(analysisID),
	}
	body, err := c.do(ctx, op, http.MethodGet, ref, "", nil)
	if err != nil {
		return analysis.Result{}, err
	}
	result, err := analysis.DecodeResult(body)
	if err != nil {
		return analysis.Result{}, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, op, method string, ref *url.URL, contentType string, body io.Reader) ([]byte, error) {
	endpoint := *c.base
	endpoint.Path = c.base.Path + ref.Path
	endpoint.RawPath = ""
	if ref.RawPath != "" {
		endpoint.RawPath = c.base.EscapedPath() + ref.RawPath
	}
	path := endpoint.EscapedPath()
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	requestID, ok := services.RequestIDFromContext(ctx)
	if !ok {
		requestID = uuid.NewString()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	logger := logging.WithContext(services.WithRequestID(ctx, requestID), c.logger)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, fmt.Errorf("%s: %w", op, ctxErr)
		}
		logger.Debug("request failed",
			logging.String("method", method),
			logging.String("path", path),
			logging.Error(err),
		)
		return nil, services.Wrap(services.ErrUnavailable, op, "no response", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrUnavailable, op, "read response", err)
	}
	logger.Debug("request completed",
		logging.String("method", method),
		logging.String("path", path),
		logging.Int("status", resp.StatusCode),
		logging.Duration("duration", time.Since(start)),
	)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, services.NewStatusError(op, resp.StatusCode, payload)
	}
	return payload, nil
}
