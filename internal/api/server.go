// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the composition root for the HTTP transport (chi router).
  - Every back-office area is guarded with the roles of its entry in the
    access route table, so the API and the navigation menu cannot disagree.
  - Only this package and cmd/api import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/gravadora/internal/catalog/artist"
	"github.com/taibuivan/gravadora/internal/catalog/budget"
	"github.com/taibuivan/gravadora/internal/catalog/document"
	"github.com/taibuivan/gravadora/internal/catalog/payment"
	"github.com/taibuivan/gravadora/internal/catalog/project"
	"github.com/taibuivan/gravadora/internal/catalog/release"
	"github.com/taibuivan/gravadora/internal/dashboard"
	"github.com/taibuivan/gravadora/internal/identity"
	"github.com/taibuivan/gravadora/internal/platform/config"
	"github.com/taibuivan/gravadora/internal/platform/constants"
	"github.com/taibuivan/gravadora/internal/platform/metrics"
	"github.com/taibuivan/gravadora/internal/platform/middleware"
	"github.com/taibuivan/gravadora/internal/users"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
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

	// Readiness is the /ready handler. It answers 200 when every dependency is healthy.
	Readiness http.HandlerFunc

	// Identity handles sign-in, refresh, logout and session inspection.
	Identity *identity.Handler

	// Users serves /me and user administration.
	Users *users.Handler

	// Dashboard serves the home screen and the financial summary.
	Dashboard *dashboard.Handler

	Artists   *artist.Handler
	Projects  *project.Handler
	Budgets   *budget.Handler
	Payments  *payment.Handler
	Releases  *release.Handler
	Documents *document.Handler
}

// Auth groups what the authentication middleware needs.
type Auth struct {
	Verifier middleware.SessionVerifier
	Resolver middleware.ProfileResolver
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, auth Auth, telemetry *metrics.Metrics, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(telemetry.Middleware)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Handle("/metrics", telemetry.Handler())

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		// Session endpoints read their own credentials; a stale bearer must
		// not block logout or refresh.
		api.Mount("/auth", h.Identity.Routes())

		api.Group(func(private chi.Router) {
			private.Use(middleware.Authenticate(auth.Verifier, auth.Resolver))
			private.Use(middleware.RequireAuth)

			private.Route("/me", h.Users.RegisterMeRoutes)

			private.With(middleware.RequireRoute("/dashboard")).Get("/dashboard", h.Dashboard.GetDashboard)
			private.With(middleware.RequireRoute("/financeiro")).Get("/financeiro", h.Dashboard.GetFinancial)

			area(private, "/artistas", "/artistas", h.Artists.RegisterRoutes)
			area(private, "/projetos", "/projetos", h.Projects.RegisterRoutes)
			area(private, "/orcamentos", "/orcamentos", h.Budgets.RegisterRoutes)
			area(private, "/pagamentos", "/financeiro", h.Payments.RegisterRoutes)
			area(private, "/lancamentos", "/lancamentos", h.Releases.RegisterRoutes)
			area(private, "/documentos", "/documentos", h.Documents.RegisterRoutes)
			area(private, "/usuarios", "/usuarios", h.Users.RegisterAdminRoutes)
		})
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

// area mounts a resource under path, guarded by the roles of the guard route.
func area(router chi.Router, path, guard string, register func(chi.Router)) {
	router.Route(path, func(resource chi.Router) {
		resource.Use(middleware.RequireRoute(guard))
		register(resource)
	})
}

// Handler exposes the router, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
