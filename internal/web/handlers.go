package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"scribe/internal/analysis"
	"scribe/internal/logging"
	"scribe/internal/services"
	"scribe/internal/views"
)

// multipartMemory is how much of an upload is held in memory before the
// remainder spills to a temporary file.
const multipartMemory = 32 << 20

func (s *Server) handleUploadPage(w http.ResponseWriter, r *http.Request) {
	view := views.NewUploadView(s.service, s.logger)
	s.render(w, r, s.pages.upload, http.StatusOK, s.newUploadPage(view.Snapshot()))
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	view := views.NewUploadView(s.service, logging.WithContext(r.Context(), s.logger))

	if r.ContentLength > s.maxUpload {
		s.renderTooLarge(w, r, view)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			s.renderTooLarge(w, r, view)
			return
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			http.Error(w, "malformed upload", http.StatusBadRequest)
			return
		}
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	if header := formFile(r); header != nil {
		_ = view.SelectFile(views.SelectedFile{
			Name: header.Filename,
			Size: header.Size,
			Open: func() (io.ReadCloser, error) { return header.Open() },
		})
	}

	status := http.StatusOK
	if err := view.Submit(r.Context()); err != nil {
		status = uploadStatus(err)
	}
	s.render(w, r, s.pages.upload, status, s.newUploadPage(view.Snapshot()))
}

func (s *Server) renderTooLarge(w http.ResponseWriter, r *http.Request, view *views.UploadView) {
	page := s.newUploadPage(view.Snapshot())
	page.Upload.Status = views.MsgProcessingFailed
	page.Upload.Error = fmt.Sprintf("File exceeds the %d MiB upload limit", s.uploadMiB)
	s.render(w, r, s.pages.upload, http.StatusRequestEntityTooLarge, page)
}

func formFile(r *http.Request) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File["file"]
	if len(files) == 0 || strings.TrimSpace(files[0].Filename) == "" {
		return nil
	}
	return files[0]
}

func uploadStatus(err error) int {
	switch {
	case errors.Is(err, views.ErrFileRequired):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrHTTPStatus),
		errors.Is(err, analysis.ErrInvalidResponse),
		services.IsUnavailable(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := lookupPage{Title: "Lookup", Nav: "lookup"}
	if !query.Has("analysis_id") {
		s.render(w, r, s.pages.lookup, http.StatusOK, page)
		return
	}

	view := views.NewLookupView(s.service, logging.WithContext(r.Context(), s.logger))
	status := http.StatusOK
	if err := view.Submit(r.Context(), query.Get("analysis_id")); err != nil {
		status = lookupStatus(err)
	}
	snap := view.Snapshot()
	page.ID = strings.TrimSpace(query.Get("analysis_id"))
	page.Error = snap.Error
	if snap.Result != nil {
		page.Rows = s.formatter.LookupRows(*snap.Result)
	}
	s.render(w, r, s.pages.lookup, status, page)
}

func lookupStatus(err error) int {
	if errors.Is(err, views.ErrIDRequired) {
		return http.StatusBadRequest
	}
	if code, ok := services.StatusCode(err); ok && code == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	page := resultsPage{Title: "Results", Nav: "results", Headers: views.SummaryHeaders}
	results, err := s.service.ListResults(r.Context())
	if err != nil {
		logging.WithContext(r.Context(), s.logger).Warn("list results failed", logging.Error(err))
		page.Error = views.LookupErrorMessage(err)
		s.render(w, r, s.pages.results, http.StatusBadGateway, page)
		return
	}
	page.Rows = s.formatter.SummaryRows(results)
	s.render(w, r, s.pages.results, http.StatusOK, page)
}

func (s *Server) handleResultJSON(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "analysis_id")
	result, err := s.service.GetResultByID(r.Context(), id)
	if err != nil {
		code := http.StatusBadGateway
		switch {
		case errors.Is(err, services.ErrValidation):
			code = http.StatusBadRequest
		case services.IsUnavailable(err):
			code = http.StatusServiceUnavailable
		default:
			if upstream, ok := services.StatusCode(err); ok && upstream < http.StatusInternalServerError {
				code = upstream
			}
		}
		s.writeError(w, r, code, views.LookupErrorMessage(err))
		return
	}
	s.writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.WithContext(r.Context(), s.logger).Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.writeJSON(w, r, status, map[string]string{"error": message})
}
