// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strings"
	"time"
)

// Config holds all service configuration. Values are read once at startup;
// the database settings live in the database package and are loaded
// separately.
type Config struct {
	// Port is the HTTP listen port.
	Port string

	// Env is the deployment environment (development, staging, production).
	Env string

	// CORSOrigins lists allowed cross-origin request origins. A single "*"
	// entry allows all origins.
	CORSOrigins []string

	// OSRMBaseURL is the base URL of the OSRM routing server.
	OSRMBaseURL string

	// OSRMProfile is the routing profile (driving, walking, cycling).
	OSRMProfile string

	// OSRMTimeout bounds a single routing request.
	OSRMTimeout time.Duration

	// GoogleMapsAPIKey authenticates Google Places requests.
	GoogleMapsAPIKey string

	// PlacesLanguage is the default language for place results.
	PlacesLanguage string

	// PlacesRegion is the default country code bias for place results.
	PlacesRegion string

	// OTLPEndpoint is the OpenTelemetry collector endpoint.
	OTLPEndpoint string

	// TelemetryEnabled turns on trace export.
	TelemetryEnabled bool
}

// FromEnv creates a Config from environment variables, applying defaults
// suitable for local development.
func FromEnv() Config {
	timeout, err := time.ParseDuration(getEnvOrDefault("OSRM_TIMEOUT", "10s"))
	if err != nil {
		timeout = 10 * time.Second
	}

	return Config{
		Port:             getEnvOrDefault("APP_PORT", "8080"),
		Env:              getEnvOrDefault("APP_ENV", "development"),
		CORSOrigins:      splitOrigins(getEnvOrDefault("CORS_ORIGINS", "*")),
		OSRMBaseURL:      getEnvOrDefault("OSRM_BASE_URL", "http://router.project-osrm.org"),
		OSRMProfile:      getEnvOrDefault("OSRM_PROFILE", "driving"),
		OSRMTimeout:      timeout,
		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
		PlacesLanguage:   getEnvOrDefault("GOOGLE_PLACES_LANGUAGE", "en"),
		PlacesRegion:     os.Getenv("GOOGLE_PLACES_REGION"),
		OTLPEndpoint:     getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TelemetryEnabled: os.Getenv("OTEL_ENABLED") == "true",
	}
}

// splitOrigins parses a comma-separated origin list, trimming whitespace
// and dropping empty entries.
func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
