// Package api provides the HTTP API for AbstractRoute.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/abstractroute/abstractroute/internal/api/handler"
	"github.com/abstractroute/abstractroute/internal/api/middleware"
	"github.com/abstractroute/abstractroute/internal/places"
	"github.com/abstractroute/abstractroute/internal/provider/resilience"
	"github.com/abstractroute/abstractroute/internal/route"
	"github.com/abstractroute/abstractroute/internal/routing"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics

	// AllowedOrigins configures CORS; empty means no cross-origin access.
	AllowedOrigins []string

	RoutingService *routing.Service
	RouteService   *route.Service
	PlacesService  *places.Service

	// DB answers readiness pings; may be nil in tests.
	DB handler.Pinger

	// Registry reports provider health on the status endpoint.
	Registry *resilience.Registry
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "abstractroute-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.Use(middleware.SecurityHeaders) // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)      // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON) // JSON content type

	// Initialize handlers
	rootHandler := handler.NewRootHandler(cfg.Version)
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.DB, cfg.Registry)
	routeHandler := handler.NewRouteHandler(cfg.RoutingService, cfg.RouteService, cfg.Logger)
	placesHandler := handler.NewPlacesHandler(cfg.PlacesService, cfg.Logger)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// Welcome document (public, no rate limit)
	r.Get("/", rootHandler.Welcome)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Route calculation - expensive compute, strict rate limiting
		r.With(expensiveRateLimit).Post("/route/calculate", routeHandler.Calculate)

		// Saved routes - standard rate limiting
		r.Route("/routes", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", routeHandler.List)
			r.Post("/", routeHandler.Save)
			r.Route("/{routeId}", func(r chi.Router) {
				r.Get("/", routeHandler.Get)
				r.Delete("/", routeHandler.Delete)
			})
		})

		// Places proxy - upstream quota, strict rate limiting
		r.Route("/places", func(r chi.Router) {
			r.Use(expensiveRateLimit)
			r.Post("/autocomplete", placesHandler.Autocomplete)
			r.Get("/details/{placeId}", placesHandler.Details)
		})
	})

	return r
}
