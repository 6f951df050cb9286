// Package server exposes gasket rendering over HTTP.
//
// Routes:
//
//	GET /gasket?c=1,1,1&depth=5&radii=false&color=Blues&resolution=8&threshold=0.005&mode=linear&format=svg
//	GET /schemes
//	GET /healthz
//
// Every response carries an X-Request-ID. Errors are JSON bodies with the
// error code and message; input errors answer 400, unknown schemes or
// resolutions 404. Depths above the safe limit are rejected rather than
// clamped.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/apollon/pkg/colormap"
	"github.com/matzehuels/apollon/pkg/pipeline"
)

// Server handles gasket requests.
type Server struct {
	runner  *pipeline.Runner
	catalog *colormap.Catalog
	logger  *log.Logger
	timeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithCatalog sets the color schemes offered. Defaults to colormap.Default().
func WithCatalog(c *colormap.Catalog) Option { return func(s *Server) { s.catalog = c } }

// WithTimeout bounds the time spent on one request.
func WithTimeout(d time.Duration) Option { return func(s *Server) { s.timeout = d } }

// New creates a server that renders through runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:  runner,
		catalog: colormap.Default(),
		logger:  logger,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/schemes", s.handleSchemes)
	r.Get("/gasket", s.handleGasket)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
