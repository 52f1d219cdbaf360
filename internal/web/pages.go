package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"scribe/internal/analysis"
	"scribe/internal/logging"
	"scribe/internal/views"
)

//go:embed templates/*.html
var templateFS embed.FS

type pageSet struct {
	upload  *template.Template
	lookup  *template.Template
	results *template.Template
}

func loadPages() (*pageSet, error) {
	parse := func(page string) (*template.Template, error) {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		return tmpl, nil
	}
	upload, err := parse("upload.html")
	if err != nil {
		return nil, err
	}
	lookup, err := parse("lookup.html")
	if err != nil {
		return nil, err
	}
	results, err := parse("results.html")
	if err != nil {
		return nil, err
	}
	return &pageSet{upload: upload, lookup: lookup, results: results}, nil
}

type uploadPage struct {
	Title        string
	Nav          string
	Accept       string
	MaxUploadMiB int
	Uploading    string
	Upload       views.UploadSnapshot
	Report       *views.Report
	RawJSON      string
}

type lookupPage struct {
	Title string
	Nav   string
	ID    string
	Error string
	Rows  []views.Row
}

type resultsPage struct {
	Title   string
	Nav     string
	Headers []string
	Rows    [][]string
	Error   string
}

func (s *Server) newUploadPage(snap views.UploadSnapshot) uploadPage {
	page := uploadPage{
		Title:        "Upload",
		Nav:          "upload",
		Accept:       analysis.AcceptAttribute(),
		MaxUploadMiB: s.uploadMiB,
		Uploading:    views.MsgUploading,
		Upload:       snap,
	}
	if snap.State == views.StateSucceeded && snap.Result != nil {
		report := s.formatter.Report(*snap.Result)
		page.Report = &report
		if raw, err := s.formatter.RawJSON(*snap.Result); err == nil {
			page.RawJSON = raw
		}
	}
	return page
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, tmpl *template.Template, status int, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logging.WithContext(r.Context(), s.logger).Error("render page", logging.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
