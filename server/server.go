// Package server exposes the FXQL parser over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/etnz/fxql"
	"github.com/etnz/fxql/config"
	"github.com/etnz/fxql/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Store records the entries of accepted requests.
type Store interface {
	Save(ctx context.Context, entries []fxql.Entry) (store.Batch, error)
	Load(ctx context.Context, id uuid.UUID) (store.Batch, error)
}

// Server is the HTTP server of the FXQL statement parser.
type Server struct {
	cfg    *config.Config
	store  Store
	router *chi.Mux
	server *http.Server
}

// New creates a Server using cfg and recording entries into s.
func New(cfg *config.Config, s Store) *Server {
	srv := &Server{
		cfg:    cfg,
		store:  s,
		router: chi.NewRouter(),
	}
	srv.setupMiddleware()
	srv.setupRoutes()
	return srv
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/fxql-statements", func(r chi.Router) {
		r.Post("/", s.handleParse)
		r.Get("/{batchID}", s.handleBatch)
	})
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Start begins listening for HTTP requests. It blocks until the server stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("server starting", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
