package models

import (
	"encoding/json"

	"github.com/abstractroute/abstractroute/internal/geo"
)

// RouteCalculateRequest is the request body for calculating a route. The
// waypoint list is ordered: first entry is the origin, last is the
// destination, interior entries are via-points in traversal order.
type RouteCalculateRequest struct {
	Waypoints []geo.Waypoint `json:"waypoints"`
}

// CalculatedRoute is a freshly computed route returned to the caller.
type CalculatedRoute struct {
	// Route is the full-resolution path geometry in traversal order.
	Route []geo.Coordinate `json:"route"`
	// EncodedPolyline is the same geometry as a Google polyline
	// (precision 5), for clients that prefer the compact form.
	EncodedPolyline string `json:"encoded_polyline,omitempty"`
	// Distance is the total route distance in meters.
	Distance float64 `json:"distance"`
	// Duration is the total travel time in seconds.
	Duration  float64   `json:"duration"`
	CreatedAt Timestamp `json:"created_at"`
}

// RouteCreateRequest is the request body for saving a route. The geographic
// sub-documents are kept raw here; the route service decodes and validates
// them through the strict geo decoders so that missing fields and
// out-of-range values are rejected with field paths.
type RouteCreateRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Origin      json.RawMessage `json:"origin"`
	Destination json.RawMessage `json:"destination"`
	Waypoints   json.RawMessage `json:"waypoints,omitempty"`
	Route       json.RawMessage `json:"route"`
	Distance    float64         `json:"distance"`
	Duration    float64         `json:"duration"`
}

// StoredRoute is a saved route.
type StoredRoute struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Origin          geo.Coordinate   `json:"origin"`
	Destination     geo.Coordinate   `json:"destination"`
	Waypoints       []geo.Waypoint   `json:"waypoints"`
	Route           []geo.Coordinate `json:"route"`
	EncodedPolyline string           `json:"encoded_polyline,omitempty"`
	Distance        float64          `json:"distance"`
	Duration        float64          `json:"duration"`
	CreatedAt       Timestamp        `json:"created_at"`
}
