// Package googleplaces provides a client for the Google Places web service.
package googleplaces

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/abstractroute/abstractroute/internal/geo"
	"github.com/abstractroute/abstractroute/internal/places"
	"github.com/abstractroute/abstractroute/internal/provider/resilience"
)

const (
	// DefaultBaseURL is the base URL for the Places web service.
	DefaultBaseURL = "https://maps.googleapis.com/maps/api/place"

	// ProviderName identifies this provider.
	ProviderName = "googleplaces"

	// locationBiasRadiusMeters is the bias radius applied when a query
	// carries a location.
	locationBiasRadiusMeters = 50000
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// MetricsRecorder records provider request outcomes.
type MetricsRecorder interface {
	RecordRequest(provider, operation string, duration time.Duration, err error)
}

// ClientConfig holds configuration for the Google Places client.
type ClientConfig struct {
	// APIKey authenticates requests; required.
	APIKey string

	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use (must implement HTTPDoer).
	// If nil, a default resilient client will be created.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 10s).
	Timeout time.Duration

	// Metrics records request outcomes (optional).
	Metrics MetricsRecorder
}

// Client is a Google Places API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	metrics    MetricsRecorder
}

// NewClient creates a new Google Places client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		httpClient = resilience.NewClient(resilience.ClientConfig{
			Name:            ProviderName,
			Timeout:         timeout,
			MaxRetries:      3,
			InitialInterval: 200 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		})
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		metrics:    cfg.Metrics,
	}
}

// API response types (from the Places web service).

type autocompleteResponse struct {
	Status       string           `json:"status"`
	ErrorMessage string           `json:"error_message"`
	Predictions  []predictionData `json:"predictions"`
}

type predictionData struct {
	PlaceID              string `json:"place_id"`
	Description          string `json:"description"`
	StructuredFormatting struct {
		MainText      string `json:"main_text"`
		SecondaryText string `json:"secondary_text"`
	} `json:"structured_formatting"`
}

type detailsResponse struct {
	Status       string     `json:"status"`
	ErrorMessage string     `json:"error_message"`
	Result       resultData `json:"result"`
}

type resultData struct {
	Name             string `json:"name"`
	FormattedAddress string `json:"formatted_address"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
	statusNotFound    = "NOT_FOUND"
)

// Autocomplete returns place suggestions for a free-text query.
func (c *Client) Autocomplete(ctx context.Context, query places.AutocompleteQuery) ([]places.Prediction, error) {
	params := url.Values{}
	params.Set("input", query.Input)
	params.Set("key", c.apiKey)
	if len(query.Types) > 0 {
		params.Set("types", strings.Join(query.Types, "|"))
	}
	if query.Language != "" {
		params.Set("language", query.Language)
	}
	if query.Region != "" {
		params.Set("components", "country:"+query.Region)
	}
	if query.Location != nil {
		params.Set("location", fmt.Sprintf("%g,%g", query.Location.Latitude, query.Location.Longitude))
		params.Set("radius", fmt.Sprintf("%d", locationBiasRadiusMeters))
	}

	var result autocompleteResponse
	if err := c.get(ctx, "autocomplete", "/autocomplete/json", params, &result); err != nil {
		return nil, err
	}

	switch result.Status {
	case statusOK, statusZeroResults:
	default:
		return nil, statusError(result.Status, result.ErrorMessage)
	}

	predictions := make([]places.Prediction, 0, len(result.Predictions))
	for _, p := range result.Predictions {
		predictions = append(predictions, places.Prediction{
			PlaceID:       p.PlaceID,
			Description:   p.Description,
			MainText:      p.StructuredFormatting.MainText,
			SecondaryText: p.StructuredFormatting.SecondaryText,
		})
	}
	return predictions, nil
}

// Details resolves a place ID to its name, address, and coordinates.
func (c *Client) Details(ctx context.Context, placeID string) (*places.Details, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("key", c.apiKey)
	params.Set("fields", "name,formatted_address,geometry,type")

	var result detailsResponse
	if err := c.get(ctx, "details", "/details/json", params, &result); err != nil {
		return nil, err
	}

	switch result.Status {
	case statusOK:
	case statusNotFound, statusZeroResults, "INVALID_REQUEST":
		return nil, fmt.Errorf("place %q: %w", placeID, places.ErrPlaceNotFound)
	default:
		return nil, statusError(result.Status, result.ErrorMessage)
	}

	return &places.Details{
		Name:    result.Result.Name,
		Address: result.Result.FormattedAddress,
		Coordinates: geo.Coordinate{
			Latitude:  result.Result.Geometry.Location.Lat,
			Longitude: result.Result.Geometry.Location.Lng,
		},
	}, nil
}

// Name identifies this provider.
func (c *Client) Name() string {
	return ProviderName
}

// get performs a GET against the Places API and decodes the JSON body.
func (c *Client) get(ctx context.Context, operation, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.metrics != nil {
		c.metrics.RecordRequest(ProviderName, operation, time.Since(start), err)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", places.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", places.ErrProviderUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", places.ErrProviderUnavailable, err)
	}
	return nil
}

// statusError converts a non-success API status into a provider error.
func statusError(status, message string) error {
	if message != "" {
		return fmt.Errorf("%w: %s: %s", places.ErrProviderUnavailable, status, message)
	}
	return fmt.Errorf("%w: %s", places.ErrProviderUnavailable, status)
}
