package testsupport

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"scribe/internal/analysis"
)

const apiPrefix = "/api/entity-classification"

// Upload records a file received by the fake backend.
type Upload struct {
	Filename string
	Size     int
	Content  []byte
}

// Request records a call received by the fake backend.
type Request struct {
	Method    string
	Path      string
	RequestID string
	UserAgent string
}

// Backend is an in-memory stand-in for the entity classification service.
type Backend struct {
	server *httptest.Server

	mu        sync.Mutex
	results   []analysis.Result
	uploads   []Upload
	requests  []Request
	analyzed  []analysis.AnalyzeRequest
	failCode  int
	failBody  string
	overrides map[string]string
	seq       int
	delay     time.Duration
}

// NewBackend starts a fake backend that is closed when the test ends.
func NewBackend(t testing.TB) *Backend {
	t.Helper()

	b := &Backend{overrides: make(map[string]string)}
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+apiPrefix+"/upload", b.handleUpload)
	mux.HandleFunc("POST "+apiPrefix+"/analyze", b.handleAnalyze)
	mux.HandleFunc("GET "+apiPrefix+"/results", b.handleList)
	mux.HandleFunc("GET "+apiPrefix+"/results/{id}", b.handleGet)
	b.server = httptest.NewServer(b.intercept(mux))
	t.Cleanup(b.server.Close)
	return b
}

// URL returns the backend base URL.
func (b *Backend) URL() string {
	return b.server.URL
}

// Close stops the backend early, making subsequent calls fail to connect.
func (b *Backend) Close() {
	b.server.Close()
}

// AddResult stores a result so list and lookup calls return it.
func (b *Backend) AddResult(result analysis.Result) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.results = append(b.results, result)
}

// FailWith makes every subsequent call answer with the given status and body.
func (b *Backend) FailWith(code int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failCode = code
	b.failBody = body
}

// Override answers requests for path (relative to the API prefix, for
// example "/upload") with a fixed 200 body.
func (b *Backend) Override(path, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.overrides[apiPrefix+path] = body
}

// Delay holds every reply for d before answering.
func (b *Backend) Delay(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.delay = d
}

// Uploads returns the files received so far.
func (b *Backend) Uploads() []Upload {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Upload(nil), b.uploads...)
}

// Requests returns the calls received so far.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// Analyzed returns the transcript submissions received so far.
func (b *Backend) Analyzed() []analysis.AnalyzeRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]analysis.AnalyzeRequest(nil), b.analyzed...)
}

func (b *Backend) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method:    r.Method,
			Path:      r.URL.EscapedPath(),
			RequestID: r.Header.Get("X-Request-ID"),
			UserAgent: r.Header.Get("User-Agent"),
		})
		code, body := b.failCode, b.failBody
		override, overridden := b.overrides[r.URL.Path]
		delay := b.delay
		b.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		if code != 0 {
			http.Error(w, body, code)
			return
		}
		if overridden {
			_, _ = io.Copy(io.Discard, r.Body)
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, override)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "file field missing"})
		return
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	b.mu.Lock()
	b.seq++
	result := SampleResult(fmt.Sprintf("an-%d", b.seq))
	result.TranscriptID = strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	b.uploads = append(b.uploads, Upload{Filename: header.Filename, Size: len(content), Content: content})
	b.results = append(b.results, result)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, analysis.UploadResponse{Status: analysis.StatusSuccess, Result: &result})
}

func (b *Backend) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analysis.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	b.mu.Lock()
	b.seq++
	result := SampleResult(fmt.Sprintf("an-%d", b.seq))
	result.TranscriptID = req.TranscriptID
	result.CreatorID = req.CreatorID
	b.analyzed = append(b.analyzed, req)
	b.results = append(b.results, result)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		analysis.Result
	}{Status: analysis.StatusSuccess, Result: result})
}

func (b *Backend) handleList(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	results := append([]analysis.Result{}, b.results...)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, results)
}

func (b *Backend) handleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, result := range b.results {
		if result.AnalysisID == id {
			writeJSON(w, http.StatusOK, result)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Analysis not found"})
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

// SampleResult returns a fully populated classification with the given id.
func SampleResult(id string) analysis.Result {
	return analysis.Result{
		AnalysisID:   id,
		TranscriptID: "tr-" + id,
		CreatorID:    "creator-7",
		Entities: analysis.Entities{
			People:        []string{"Ada Lovelace", "Grace Hopper"},
			Tools:         []string{},
			Brands:        []string{"Acme"},
			Products:      []string{},
			Organizations: []string{"IEEE"},
		},
		Tone: analysis.Tone{
			Primary:    "informative",
			Secondary:  []string{"enthusiastic", "calm"},
			Confidence: 0.875,
		},
		Style: analysis.Style{
			Primary:    "tutorial",
			Confidence: 0.9,
		},
		SafetyFlags: analysis.SafetyFlags{
			SensitiveDomains: []string{},
			Severity:         "None",
			RequiresReview:   false,
		},
		CreatedAt: analysis.ParseTimestamp("2025-03-04T05:06:07Z"),
	}
}
