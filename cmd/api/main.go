// Package main provides the entrypoint for the AbstractRoute API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/abstractroute/abstractroute/internal/api"
	"github.com/abstractroute/abstractroute/internal/api/middleware"
	"github.com/abstractroute/abstractroute/internal/config"
	"github.com/abstractroute/abstractroute/internal/database"
	"github.com/abstractroute/abstractroute/internal/places"
	"github.com/abstractroute/abstractroute/internal/places/googleplaces"
	"github.com/abstractroute/abstractroute/internal/provider/resilience"
	"github.com/abstractroute/abstractroute/internal/route"
	"github.com/abstractroute/abstractroute/internal/routing"
	"github.com/abstractroute/abstractroute/internal/routing/osrm"
	"github.com/abstractroute/abstractroute/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "abstractroute-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting AbstractRoute API")

	cfg := config.FromEnv()

	// Initialize OpenTelemetry
	ctx := context.Background()
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Env,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.TelemetryEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Initialize routing provider and service. The OSRM client gets a plain
	// HTTP client: a routing request is executed exactly once.
	providerMetrics, err := middleware.NewProviderMetrics(serviceName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize provider metrics")
	}

	osrmClient := osrm.NewClient(osrm.ClientConfig{
		BaseURL: cfg.OSRMBaseURL,
		Profile: cfg.OSRMProfile,
		Timeout: cfg.OSRMTimeout,
		Logger:  log,
		Metrics: providerMetrics,
	})
	routingService := routing.NewService(osrmClient, log)
	log.Info().
		Str("provider", osrmClient.Name()).
		Str("base_url", cfg.OSRMBaseURL).
		Str("profile", cfg.OSRMProfile).
		Msg("routing service initialized")

	// Initialize route persistence
	routeRepo := route.NewPostgresRepository(pool)
	routeService := route.NewService(routeRepo, log)
	log.Info().Msg("route service initialized")

	// Initialize places provider with a resilient client, registered for
	// health reporting on the status endpoint.
	registry := resilience.NewRegistry()
	placesHTTPClient := resilience.NewClient(resilience.DefaultClientConfig(googleplaces.ProviderName))
	registry.Register(googleplaces.ProviderName, placesHTTPClient)

	if cfg.GoogleMapsAPIKey == "" {
		log.Warn().Msg("GOOGLE_MAPS_API_KEY not set - places endpoints will fail")
	}
	placesClient := googleplaces.NewClient(googleplaces.ClientConfig{
		APIKey:     cfg.GoogleMapsAPIKey,
		HTTPClient: placesHTTPClient,
		Metrics:    providerMetrics,
	})
	placesService := places.NewService(placesClient, places.ServiceConfig{
		DefaultLanguage: cfg.PlacesLanguage,
		DefaultRegion:   cfg.PlacesRegion,
	}, log)
	log.Info().Msg("places service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:        Version,
		BuildTime:      BuildTime,
		Logger:         log,
		ServiceName:    serviceName,
		Metrics:        metrics,
		AllowedOrigins: cfg.CORSOrigins,
		RoutingService: routingService,
		RouteService:   routeService,
		PlacesService:  placesService,
		DB:             pool,
		Registry:       registry,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
