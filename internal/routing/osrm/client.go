// Package osrm provides a client for the OSRM route service HTTP API.
package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/abstractroute/abstractroute/internal/geo"
	"github.com/abstractroute/abstractroute/internal/routing"
)

const (
	// ProviderName identifies this routing provider.
	ProviderName = "osrm"

	// DefaultBaseURL is the public OSRM demo server.
	DefaultBaseURL = "http://router.project-osrm.org"

	// DefaultProfile is the travel profile used when none is configured.
	DefaultProfile = "driving"

	// DefaultTimeout bounds the wait for a provider response.
	DefaultTimeout = 10 * time.Second
)

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// MetricsRecorder records provider request outcomes.
type MetricsRecorder interface {
	RecordRequest(provider, operation string, duration time.Duration, err error)
}

// ClientConfig holds configuration for the OSRM client.
type ClientConfig struct {
	// BaseURL is the OSRM server base URL (optional, defaults to the demo server).
	BaseURL string

	// Profile is the travel profile (optional, defaults to "driving").
	Profile string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, a plain client is used: routing requests are a single
	// attempt per call, with no retries or circuit breaking.
	HTTPClient HTTPDoer

	// Timeout bounds the wait for a provider response (optional, defaults to 10s).
	Timeout time.Duration

	// Logger for client operations.
	Logger zerolog.Logger

	// Metrics records request outcomes (optional).
	Metrics MetricsRecorder
}

// Client is an OSRM route service client.
type Client struct {
	baseURL    string
	profile    string
	httpClient HTTPDoer
	timeout    time.Duration
	logger     zerolog.Logger
	metrics    MetricsRecorder
}

// NewClient creates a new OSRM client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	profile := cfg.Profile
	if profile == "" {
		profile = DefaultProfile
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		profile:    profile,
		httpClient: httpClient,
		timeout:    timeout,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// ComputeRoute computes a fixed-order route through the given waypoints.
func (c *Client) ComputeRoute(ctx context.Context, waypoints []geo.Waypoint) (*routing.ComputedRoute, error) {
	if len(waypoints) < 2 {
		return nil, geo.NewValidationError("waypoints", "at least two waypoints are required")
	}
	var fieldErrs []geo.FieldError
	for i, wp := range waypoints {
		fieldErrs = append(fieldErrs, wp.Validate(fmt.Sprintf("waypoints[%d]", i))...)
	}
	if len(fieldErrs) > 0 {
		return nil, &geo.ValidationError{Errors: fieldErrs}
	}

	start := time.Now()
	result, err := c.requestRoute(ctx, waypoints)
	if c.metrics != nil {
		c.metrics.RecordRequest(ProviderName, "compute-route", time.Since(start), err)
	}
	return result, err
}

// requestRoute performs the single provider request and decodes the result.
func (c *Client) requestRoute(ctx context.Context, waypoints []geo.Waypoint) (*routing.ComputedRoute, error) {
	// OSRM expects lon,lat pairs joined by ";" in traversal order.
	coords := make([]string, 0, len(waypoints))
	for _, wp := range waypoints {
		coords = append(coords, fmt.Sprintf("%g,%g", wp.Coordinates.Longitude, wp.Coordinates.Latitude))
	}

	url := fmt.Sprintf("%s/route/v1/%s/%s?overview=full&geometries=geojson&steps=false&alternatives=false",
		c.baseURL, c.profile, strings.Join(coords, ";"))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.logger.Debug().
		Str("profile", c.profile).
		Int("waypoint_count", len(waypoints)).
		Msg("requesting route from OSRM")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.classifyTransportError(ctx, err)
	}

	var osrmResp routeResponse
	if unmarshalErr := json.Unmarshal(body, &osrmResp); unmarshalErr != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &routing.Error{
				Provider: ProviderName,
				Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
				Message:  fmt.Sprintf("provider returned status %d", resp.StatusCode),
				Err:      routing.ErrProviderRejected,
			}
		}
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "MALFORMED_RESPONSE",
			Message:  "provider returned a malformed response body",
			Err:      routing.ErrTransport,
		}
	}

	// OSRM reports failures both via HTTP status and via the body code;
	// either way the provider's own code/message is preserved verbatim.
	if resp.StatusCode != http.StatusOK || osrmResp.Code != codeOK {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     osrmResp.Code,
			Message:  osrmResp.Message,
			Err:      routing.ErrProviderRejected,
		}
	}

	if len(osrmResp.Routes) == 0 || len(osrmResp.Routes[0].Geometry.Coordinates) == 0 {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "NO_ROUTE",
			Message:  "provider reported no route alternatives",
			Err:      routing.ErrNoRouteFound,
		}
	}

	result := c.toComputedRoute(&osrmResp.Routes[0])

	c.logger.Debug().
		Int("point_count", len(result.Polyline)).
		Float64("distance_m", result.DistanceMeters).
		Float64("duration_s", result.DurationSeconds).
		Msg("received route from OSRM")

	return result, nil
}

// classifyTransportError maps transport-level failures to domain errors.
// Context expiry within the bounded wait is a timeout; everything else
// (connection refused, DNS, truncated body) is a transport failure.
func (c *Client) classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &routing.Error{
			Provider: ProviderName,
			Code:     "TIMEOUT",
			Message:  fmt.Sprintf("no response within %s", c.timeout),
			Err:      routing.ErrTimeout,
		}
	}
	return &routing.Error{
		Provider: ProviderName,
		Code:     "TRANSPORT",
		Message:  err.Error(),
		Err:      routing.ErrTransport,
	}
}

// toComputedRoute converts the first OSRM route alternative to the domain
// model. Geometry points arrive as [lon, lat] pairs and are converted to
// latitude/longitude, preserving point order. Missing distance or duration
// values decode to zero.
func (c *Client) toComputedRoute(r *route) *routing.ComputedRoute {
	polyline := make([]geo.Coordinate, 0, len(r.Geometry.Coordinates))
	for _, pair := range r.Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		polyline = append(polyline, geo.Coordinate{Latitude: pair[1], Longitude: pair[0]})
	}

	return &routing.ComputedRoute{
		Polyline:        polyline,
		DistanceMeters:  r.Distance,
		DurationSeconds: r.Duration,
		ComputedAt:      time.Now(),
	}
}
