// Package server exposes the generation pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/goliatone/go-json2beamer/pkg/orchestrator"
	"github.com/goliatone/go-json2beamer/pkg/render"
	"github.com/goliatone/go-json2beamer/pkg/renderers/beamer"
	"github.com/goliatone/go-json2beamer/pkg/renderers/jsonkey"
	"github.com/goliatone/go-json2beamer/pkg/renderers/preview"
	"github.com/goliatone/go-json2beamer/pkg/themes"
	"github.com/goliatone/go-json2beamer/pkg/validation"
)

const (
	// DefaultAddr is the listen address used when Config.Addr is blank.
	DefaultAddr = "127.0.0.1:8080"
	// DefaultMaxBodyBytes caps the size of a generate request.
	DefaultMaxBodyBytes int64 = 10 << 20

	shutdownTimeout = 5 * time.Second
)

// Config controls the listener and CORS policy.
type Config struct {
	Addr           string
	AllowedOrigins []string
	MaxBodyBytes   int64
}

// Server serves health, theme listings and deck generation.
type Server struct {
	cfg      Config
	logger   *zap.Logger
	catalog  *themes.Catalog
	registry *render.Registry
	plain    *orchestrator.Orchestrator
	html     *orchestrator.Orchestrator
}

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCatalog replaces the theme catalog.
func WithCatalog(catalog *themes.Catalog) Option {
	return func(s *Server) {
		if catalog != nil {
			s.catalog = catalog
		}
	}
}

// WithRegistry replaces the renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// New wires the pipeline. Two orchestrators share the registry and catalog;
// they differ only in whether bank text is read as HTML.
func New(cfg Config, options ...Option) (*Server, error) {
	s := &Server{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if strings.TrimSpace(s.cfg.Addr) == "" {
		s.cfg.Addr = DefaultAddr
	}
	if s.cfg.MaxBodyBytes <= 0 {
		s.cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if len(s.cfg.AllowedOrigins) == 0 {
		s.cfg.AllowedOrigins = []string{"*"}
	}

	if s.catalog == nil {
		catalog, err := themes.New()
		if err != nil {
			return nil, fmt.Errorf("server: theme catalog: %w", err)
		}
		s.catalog = catalog
	}
	if s.registry == nil {
		deck, err := beamer.New()
		if err != nil {
			return nil, fmt.Errorf("server: beamer renderer: %w", err)
		}
		page, err := preview.New()
		if err != nil {
			return nil, fmt.Errorf("server: preview renderer: %w", err)
		}
		s.registry = render.NewRegistry(deck, jsonkey.New(), page)
	}

	shared := []orchestrator.Option{
		orchestrator.WithRegistry(s.registry),
		orchestrator.WithThemeSelector(s.catalog),
		orchestrator.WithDefaultTheme(s.catalog.Default(), ""),
	}
	s.plain = orchestrator.New(shared...)
	s.html = orchestrator.New(append(shared, orchestrator.WithValidator(validation.New(validation.WithHTMLMarkup(true))))...)
	return s, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

// Handler returns the routed handler wrapped in the CORS policy.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/themes", s.listThemes).Methods(http.MethodGet)
	api.HandleFunc("/renderers", s.listRenderers).Methods(http.MethodGet)
	api.HandleFunc("/generate", s.generate).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
