// SPDX-License-Identifier: MIT

// Package api exposes the HTTP surface of the pads daemon: graph CRUD,
// connectivity analysis, permutation enumeration and the operational
// endpoints.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/padslib/pads/internal/cache"
	"github.com/padslib/pads/internal/config"
	"github.com/padslib/pads/internal/health"
	"github.com/padslib/pads/internal/history"
	"github.com/padslib/pads/internal/jobs"
	"github.com/padslib/pads/internal/log"
	"github.com/padslib/pads/internal/store"
)

// Server wires the HTTP layer to the daemon's services.
type Server struct {
	cfg     config.AppConfig
	store   store.Store
	cache   cache.Cache
	history *history.DB
	runner  *jobs.Runner
	health  *health.Manager

	httpSrv *http.Server
}

// Deps are the services the server depends on.
type Deps struct {
	Store   store.Store
	Cache   cache.Cache
	History *history.DB
	Runner  *jobs.Runner
	Health  *health.Manager
}

// New builds a server with its routes.
func New(cfg config.AppConfig, deps Deps) *Server {
	s := &Server{
		cfg:     cfg,
		store:   deps.Store,
		cache:   deps.Cache,
		history: deps.History,
		runner:  deps.Runner,
		health:  deps.Health,
	}
	var handler http.Handler = s.Routes()
	if cfg.TelemetryEnabled {
		handler = otelhttp.NewHandler(handler, "pads.api")
	}
	s.httpSrv = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Routes assembles the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(securityHeaders)
	if s.cfg.RateLimitEnabled {
		r.Use(rateLimit(s.cfg.RateLimitPerMin))
	}

	r.Get("/healthz", s.health.ServeHealth)
	r.Get("/readyz", s.health.ServeReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/graphs", s.handleListGraphs)
		r.Get("/graphs/{id}", s.handleGetGraph)
		r.Get("/graphs/{id}/scc", s.handleSCC)
		r.Get("/graphs/{id}/condensation", s.handleCondensation)

		r.Get("/permutations", s.handleEnumerate(familyPlain))
		r.Get("/permutations/double", s.handleEnumerate(familyDouble))
		r.Get("/permutations/stirling", s.handleEnumerate(familyStirling))
		r.Get("/permutations/involutions", s.handleEnumerate(familyInvolution))

		r.Get("/status", s.handleStatus)
		r.Get("/runs", s.handleRuns)

		// Mutating and expensive routes sit behind the token.
		r.Group(func(r chi.Router) {
			r.Use(s.requireToken)
			r.Post("/graphs", s.handleCreateGraph)
			r.Put("/graphs/{id}", s.handleUpdateGraph)
			r.Delete("/graphs/{id}", s.handleDeleteGraph)
			r.Post("/analyze", s.handleAnalyze)
		})
	})

	return r
}

// Start serves HTTP until ListenAndServe returns.
func (s *Server) Start() error {
	logger := log.WithComponent("api")
	logger.Info().
		Str("event", "api.listening").
		Str("addr", s.cfg.ListenAddr).
		Msg("http server listening")
	return s.httpSrv.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
