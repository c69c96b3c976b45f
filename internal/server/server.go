// Package server is the local JSON API over the block registry, the title
// deriver, the validator, the renderer and the scorer.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/abhisek/talenthub/internal/render"
)

// Options configures a Server.
type Options struct {
	Version string
	Render  render.Options
	Logger  *zap.Logger
}

// Server routes the local API.
type Server struct {
	router  chi.Router
	log     *zap.Logger
	metrics *Metrics
	render  render.Options
	version string
}

// New builds the router and registers every route.
func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		router:  chi.NewRouter(),
		log:     log,
		metrics: NewMetrics(),
		render:  opts.Render,
		version: opts.Version,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(requestLogging(s.log, s.metrics))

	s.router.Get("/healthz", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	s.router.Route("/v1", func(r chi.Router) {
		r.Get("/types", s.handleTypes)
		r.Get("/types/{type}", s.handleType)
		r.Post("/title", s.handleTitle)
		r.Post("/validate", s.handleValidate)
		r.Post("/resolve", s.handleResolve)
		r.Post("/render", s.handleRender)
		r.Post("/score", s.handleScore)
	})
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("local API listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down local API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
