// Package httpapi serves the post index as a read-only JSON API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	prom "github.com/prometheus/client_golang/prometheus"

	"folio/internal/application"
	"folio/internal/logfields"
	"folio/internal/metrics"
	"folio/internal/ports"
)

// Server represents the API server.
type Server struct {
	Addr     string
	repo     ports.ContentRepository
	authors  ports.AuthorResolver
	renderer ports.MarkdownRenderer
	recorder metrics.Recorder
	registry *prom.Registry
	pageSize int
	logger   *slog.Logger
	router   *chi.Mux
	server   *http.Server
}

// Option configures a Server
type Option func(*Server)

// WithAuthors resolves author profiles on post detail responses
func WithAuthors(a ports.AuthorResolver) Option { return func(s *Server) { s.authors = a } }

// WithRenderer adds a table of contents and optional HTML to post detail responses
func WithRenderer(r ports.MarkdownRenderer) Option { return func(s *Server) { s.renderer = r } }

// WithMetrics records lookups on rec and exposes reg on /metrics
func WithMetrics(rec metrics.Recorder, reg *prom.Registry) Option {
	return func(s *Server) {
		s.recorder = rec
		s.registry = reg
	}
}

// WithPageSize sets the listing page size
func WithPageSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

func WithLogger(l *slog.Logger) Option { return func(s *Server) { s.logger = l } }

// NewServer creates a new API server.
func NewServer(addr string, repo ports.ContentRepository, opts ...Option) *Server {
	s := &Server{
		Addr:     addr,
		repo:     repo,
		recorder: metrics.NoopRecorder{},
		pageSize: application.PostsPerPage,
		logger:   slog.Default(),
		router:   chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/posts", s.handleListPosts)
		r.Get("/posts/*", s.handleGetPost)
		r.Get("/tags", s.handleListTags)
		r.Get("/tags/{tag}", s.handleTagPosts)
		r.Get("/search", s.handleSearch)
	})

	if s.registry != nil {
		s.router.Handle("/metrics", metrics.HTTPHandler(s.registry))
	}
}

// Handler returns the routed handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the API server. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.logger.Info("api listening", logfields.Addr(s.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// requestLogger logs one line per request through slog
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			logfields.Method(r.Method),
			logfields.URL(r.URL.RequestURI()),
			logfields.Status(ww.Status()),
			logfields.RequestID(middleware.GetReqID(r.Context())),
			logfields.DurationMS(float64(time.Since(start).Microseconds())/1000),
		)
	})
}

// Response represents a standard API response.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Error writes an error response.
func (s *Server) Error(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Response{Success: false, Error: message})
}

// Success writes a success response.
func (s *Server) Success(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Response{Success: true, Data: data})
}

// fail maps an application error to a status code
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var validation *application.ValidationError
	code := http.StatusInternalServerError
	switch {
	case errors.As(err, &validation):
		code = http.StatusBadRequest
	case errors.Is(err, application.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, application.ErrMalformedContent):
		code = http.StatusUnprocessableEntity
	}
	if code >= http.StatusInternalServerError || code == http.StatusUnprocessableEntity {
		attrs := []any{
			logfields.URL(r.URL.RequestURI()),
			logfields.RequestID(middleware.GetReqID(r.Context())),
			logfields.Error(err),
		}
		var malformed *application.MalformedContentError
		if errors.As(err, &malformed) {
			attrs = append(attrs, logfields.Path(malformed.Path), logfields.Field(malformed.Field))
		}
		s.logger.Error("request failed", attrs...)
	}
	s.Error(w, code, err.Error())
}
