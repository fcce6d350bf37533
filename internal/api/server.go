// Copyright (c) 2026 Yomira. All rights reserved.
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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taibuivan/critique/internal/blog/post"
	"github.com/taibuivan/critique/internal/catalog/reference"
	"github.com/taibuivan/critique/internal/catalog/title"
	"github.com/taibuivan/critique/internal/platform/apperr"
	"github.com/taibuivan/critique/internal/platform/config"
	"github.com/taibuivan/critique/internal/platform/constants"
	"github.com/taibuivan/critique/internal/platform/middleware"
	"github.com/taibuivan/critique/internal/platform/respond"
	"github.com/taibuivan/critique/internal/social/review"
	"github.com/taibuivan/critique/internal/users/account"
	"github.com/taibuivan/critique/internal/users/auth"
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
	// Liveness is the /health handler. It answers 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It answers 200 when every backing service responds.
	Readiness http.HandlerFunc

	// Auth handles the confirmation-code sign-in and token refresh.
	Auth *auth.Handler

	// Users handles user administration and the /me profile.
	Users *account.Handler

	Categories *reference.Handler
	Genres     *reference.Handler
	Titles     *title.Handler

	// Reviews handles reviews and their comments, nested under a title.
	Reviews *review.Handler

	// Posts handles blog posts and their comments.
	Posts *post.Handler
}

// Dependencies are the cross-cutting collaborators of the middleware chain.
type Dependencies struct {
	Verifier  middleware.TokenVerifier
	Loader    middleware.PrincipalLoader
	Registry  *prometheus.Registry
	RateLimit *middleware.RateLimiter
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, log *slog.Logger, deps Dependencies, h Handlers) *Server {
	r := NewRouter(cfg, log, deps, h)

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

// NewRouter builds the routing tree on its own, without an [http.Server].
func NewRouter(cfg *config.Config, log *slog.Logger, deps Dependencies, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	metrics := middleware.NewMetrics(deps.Registry)

	// # Middleware Chain
	// Global middleware applied in order of execution.
	if cfg.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	if deps.RateLimit != nil {
		r.Use(deps.RateLimit.Middleware)
	}
	r.Use(middleware.PanicRecovery())
	r.Use(metrics.Middleware)
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	r.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.NotFound("Resource"))
	})
	r.MethodNotAllowed(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.MethodNotAllowed(request.Method))
	})

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		// Sign-in ignores the Authorization header, so a stale access token
		// cannot block a refresh.
		api.Mount("/auth", h.Auth.Routes())

		api.Group(func(authenticated chi.Router) {
			authenticated.Use(middleware.Authenticate(deps.Verifier, deps.Loader))

			authenticated.Mount("/users", h.Users.Routes())
			authenticated.Mount("/categories", h.Categories.Routes())
			authenticated.Mount("/genres", h.Genres.Routes())
			authenticated.Route("/titles", func(titles chi.Router) {
				titles.Mount("/{titleID}/reviews", h.Reviews.Routes())
				titles.Mount("/", h.Titles.Routes())
			})
			authenticated.Mount("/posts", h.Posts.Routes())
		})
	})

	return r
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
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
