package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"scribe/internal/analysis"
	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/views"
)

// Service is the slice of the classification client the UI needs.
type Service interface {
	views.Uploader
	views.Fetcher
	ListResults(ctx context.Context) ([]analysis.Result, error)
}

// Server hosts the browser UI.
type Server struct {
	bind      string
	maxUpload int64
	uploadMiB int
	logger    *slog.Logger
	service   Service
	formatter *views.Formatter
	pages     *pageSet

	handler  http.Handler
	listener net.Listener
	server   *http.Server
}

// NewServer wires routes for cfg.Web against service.
func NewServer(cfg *config.Config, service Service, formatter *views.Formatter, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("web server: config is required")
	}
	if service == nil {
		return nil, errors.New("web server: service is required")
	}
	if formatter == nil {
		var err error
		formatter, err = views.NewFormatterFromConfig(cfg)
		if err != nil {
			return nil, err
		}
	}
	pages, err := loadPages()
	if err != nil {
		return nil, err
	}
	srv := &Server{
		bind:      strings.TrimSpace(cfg.Web.Bind),
		maxUpload: cfg.MaxUploadBytes(),
		uploadMiB: cfg.Web.MaxUploadMiB,
		logger:    logging.NewComponentLogger(logger, "web"),
		service:   service,
		formatter: formatter,
		pages:     pages,
	}
	srv.handler = srv.routes(cfg.Web.AllowedOrigins)
	srv.server = &http.Server{
		Handler:           srv.handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

func (s *Server) routes(origins []string) http.Handler {
	mux := chi.NewRouter()
	mux.Use(requestID)
	mux.Use(requestLogger(s.logger))

	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	mux.Get("/", s.handleUploadPage)
	mux.Post("/upload", s.handleUpload)
	mux.Get("/lookup", s.handleLookup)
	mux.Get("/results", s.handleResults)

	mux.Route("/api", func(rt chi.Router) {
		rt.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
			ExposedHeaders: []string{requestIDHeader},
			MaxAge:         300,
		}))
		rt.Get("/results/{analysis_id}", s.handleResultJSON)
	})
	return mux
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins serving on the configured bind and shuts down when ctx ends.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("web listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("web server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("web server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Addr returns the bound address once Start succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down, waiting up to five seconds for open requests.
func (s *Server) Stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)
}
