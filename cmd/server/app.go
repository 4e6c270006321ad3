package main

import (
	"context"
	"net/http"

	"github.com/diewo77/agence-immo/auth"
	"github.com/diewo77/agence-immo/gate"
	"github.com/diewo77/agence-immo/httpx"
	"github.com/diewo77/agence-immo/internal/config"
	"github.com/diewo77/agence-immo/internal/db"
	"github.com/diewo77/agence-immo/internal/metrics"
	"github.com/diewo77/agence-immo/internal/middleware"
	"github.com/diewo77/agence-immo/internal/policy"
	"github.com/go-chi/chi/v5"
	"github.com/heptiolabs/healthcheck"
	"gorm.io/gorm"
)

// App is the main application handler that sets up all routes.
type App struct {
	router    chi.Router
	db        *gorm.DB
	cfg       *config.Config
	routerCfg *policy.RouterConfig
}

// NewApp creates a new application with all routes configured.
func NewApp(db *gorm.DB, cfg *config.Config, routerCfg *policy.RouterConfig) *App {
	app := &App{
		router:    chi.NewRouter(),
		db:        db,
		cfg:       cfg,
		routerCfg: routerCfg,
	}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// recordRoutes is implemented by every handlers.RecordHandler instantiation.
type recordRoutes interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	r := a.router
	r.Use(
		middleware.RequestID,
		middleware.Recover,
		middleware.Logging,
		metrics.Middleware,
		middleware.CORS(a.cfg.CORS.AllowedOrigins),
	)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, http.StatusNotFound, "not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	// ─────────────────────────────────────────────────────────────────────────
	// Operational endpoints
	// ─────────────────────────────────────────────────────────────────────────
	health := healthcheck.NewHandler()
	health.AddReadinessCheck("database", func() error {
		return db.Health(context.Background(), a.db)
	})
	r.Get("/health/live", health.LiveEndpoint)
	r.Get("/health/ready", health.ReadyEndpoint)
	r.Handle("/metrics", metrics.Handler())

	rc := a.routerCfg
	ah := rc.AuthHandler
	uh := rc.UserHandler

	r.Route("/api", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/auth/login", ah.Login)

		// Authenticated routes (require a valid bearer token)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(rc.Sessions))

			r.Get("/auth/me", ah.Me)
			r.Post("/auth/logout", ah.Logout)

			a.mountRecords(r, "/mandats", gate.ResourceMandat, rc.Mandats)
			a.mountRecords(r, "/transactions", gate.ResourceTransaction, rc.Transactions)
			a.mountRecords(r, "/suivi", gate.ResourceSuivi, rc.Suivis)
			a.mountRecords(r, "/recherche", gate.ResourceRecherche, rc.Recherches)
			a.mountRecords(r, "/gestion", gate.ResourceGestion, rc.Gestion)

			// Admin routes
			r.With(a.requireAdmin).Get("/users", uh.List)
			r.With(a.requireAdmin).Post("/users", uh.Create)
		})
	})
}

func (a *App) mountRecords(r chi.Router, path, resourceType string, h recordRoutes) {
	r.With(a.requirePermission(resourceType, gate.ActionList)).Get(path, h.List)
	r.With(a.requirePermission(resourceType, gate.ActionCreate)).Post(path, h.Create)
	r.With(a.requirePermission(resourceType, gate.ActionDelete)).Delete(path+"/{id}", h.Delete)
}

// requireAdmin wraps a handler to require the admin role.
func (a *App) requireAdmin(next http.Handler) http.Handler {
	return a.routerCfg.AuthGate.RequireAdmin()(next)
}

// requirePermission wraps a handler to require a specific resource permission.
func (a *App) requirePermission(resourceType string, action gate.Action) func(http.Handler) http.Handler {
	return a.routerCfg.AuthGate.RequirePermission(resourceType, action)
}
