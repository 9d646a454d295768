package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/handlers"
	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/middleware"
)

// DashboardDeps groups everything the dashboard router mounts
type DashboardDeps struct {
	Guard          middleware.GuardRules
	AllowedOrigins []string
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Dashboard      *handlers.DashboardHandler
	Products       *handlers.ProductHandler
	Logger         *slog.Logger
}

// NewDashboard builds the dashboard router with the routing guard in front of every page
func NewDashboard(deps DashboardDeps) chi.Router {
	r := chi.NewRouter()
	applyCommon(r, deps.Logger, deps.AllowedOrigins, true)
	r.Use(middleware.RouteGuard(deps.Guard, deps.Logger))

	// Register health check endpoint
	r.Get("/health", deps.Health.ServeHTTP)

	r.Get(deps.Guard.LoginPath, deps.Auth.LoginPage)
	r.Post(deps.Guard.LoginPath, deps.Auth.Login)
	r.Post("/logout", deps.Auth.Logout)

	r.Get(deps.Guard.DashboardPath, deps.Dashboard.Dashboard)
	r.Get("/settings", deps.Dashboard.Settings)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", deps.Products.ListProducts)
		r.Post("/", deps.Products.CreateProduct)
		r.Post("/refresh", deps.Products.RefreshProducts)
		r.Get("/{productId}", deps.Products.GetProduct)
		r.Put("/{productId}", deps.Products.UpdateProduct)
		r.Delete("/{productId}", deps.Products.DeleteProduct)
	})

	return r
}

// NewResource builds the router for the stand-in product collection resource
func NewResource(health *handlers.HealthHandler, resource *handlers.ResourceHandler, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()
	applyCommon(r, logger, []string{"*"}, false)

	r.Get("/health", health.ServeHTTP)
	resource.Routes(r)

	return r
}

func applyCommon(r chi.Router, logger *slog.Logger, allowedOrigins []string, allowCredentials bool) {
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: allowCredentials,
		MaxAge:           300,
	}))
}
