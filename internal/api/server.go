// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/encore/internal/core/artist"
	"github.com/taibuivan/encore/internal/core/search"
	"github.com/taibuivan/encore/internal/core/show"
	"github.com/taibuivan/encore/internal/core/venue"
	"github.com/taibuivan/encore/internal/platform/config"
	"github.com/taibuivan/encore/internal/platform/constants"
	"github.com/taibuivan/encore/internal/platform/middleware"
	"github.com/taibuivan/encore/internal/platform/respond"
	"github.com/taibuivan/encore/internal/platform/sec"
	"github.com/taibuivan/encore/pkg/genre"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler, 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler, 200 when all dependencies are healthy.
	Readiness http.HandlerFunc

	Venue  *venue.Handler
	Artist *artist.Handler
	Show   *show.Handler
	Search *search.Handler
}

// Guards configures the optional protection of write routes.
type Guards struct {
	// Verifier enables editor authorization when non-nil.
	Verifier middleware.TokenVerifier

	// Keys enables the Idempotency-Key guard on creates when non-nil.
	Keys           middleware.KeyStore
	IdempotencyTTL time.Duration
}

// writes returns the middleware stack wrapped around every mutating route.
func (g Guards) writes() []func(http.Handler) http.Handler {
	var stack []func(http.Handler) http.Handler
	if g.Verifier != nil {
		stack = append(stack, middleware.RequireRole(sec.RoleEditor))
	}
	if g.Keys != nil {
		stack = append(stack, middleware.Idempotency(g.Keys, g.IdempotencyTTL))
	}
	return stack
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, guards Guards, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.PanicRecovery(log))
	if guards.Verifier != nil {
		r.Use(middleware.Authenticate(guards.Verifier))
	}
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health checks for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	writes := guards.writes()
	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/venues", func(route chi.Router) { h.Venue.RegisterRoutes(route, writes...) })
		api.Route("/artists", func(route chi.Router) { h.Artist.RegisterRoutes(route, writes...) })
		api.Route("/shows", func(route chi.Router) { h.Show.RegisterRoutes(route, writes...) })
		api.Route("/search", h.Search.RegisterRoutes)
		api.Get("/genres", listGenres)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// listGenres handles GET /genres with the catalogue accepted on submissions.
func listGenres(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, genre.Catalogue())
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
