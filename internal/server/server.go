// Package server exposes the wizard over HTTP: the server-rendered page, a
// JSON validation endpoint, the OpenAPI document and operational endpoints.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/goliatone/go-formwizard/pkg/orchestrator"
	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithGatherer exposes the given registry on /metrics. Without it the route
// is not mounted.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithRateLimit limits POST requests to r per second with the given burst.
// A non-positive rate disables the limiter.
func WithRateLimit(r float64, burst int) Option {
	return func(s *Server) {
		if r <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(r), burst)
	}
}

// WithVersion sets the info.version of the served OpenAPI document.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// WithAssets replaces the stylesheet bundle served under /assets/.
func WithAssets(fsys fs.FS) Option {
	return func(s *Server) {
		if fsys != nil {
			s.assets = fsys
		}
	}
}

// Server holds the HTTP adapter around an orchestrator.
type Server struct {
	orch     *orchestrator.Orchestrator
	logger   *slog.Logger
	gatherer prometheus.Gatherer
	limiter  *rate.Limiter
	assets   fs.FS
	version  string
	openapi  []byte
}

// New builds the adapter and pre-renders the OpenAPI document.
func New(orch *orchestrator.Orchestrator, options ...Option) (*Server, error) {
	if orch == nil {
		return nil, fmt.Errorf("server: orchestrator is required")
	}
	if err := orch.Err(); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	s := &Server{
		orch:   orch,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		assets: vanilla.AssetsFS(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	doc, err := schema.Document(orch.Form(), s.version)
	if err != nil {
		return nil, fmt.Errorf("server: build openapi document: %w", err)
	}
	if s.openapi, err = json.MarshalIndent(doc, "", "  "); err != nil {
		return nil, fmt.Errorf("server: encode openapi document: %w", err)
	}
	return s, nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.With(s.limit).Post("/", s.handleStep)
	r.With(s.limit).Post("/api/validate", s.handleValidate)
	r.Get("/openapi.json", s.handleOpenAPI)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(s.assets))))
	return r
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(s.openapi)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.ErrorContext(r.Context(), "encode response failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.WarnContext(r.Context(), "request rejected",
		"status", status,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"err", err,
	)
	http.Error(w, http.StatusText(status)+": "+err.Error(), status)
}
