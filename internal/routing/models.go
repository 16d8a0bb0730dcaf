// Package routing provides route computation through an external routing
// provider.
package routing

import (
	"context"
	"errors"
	"time"

	"github.com/abstractroute/abstractroute/internal/geo"
)

// Sentinel errors for routing operations.
var (
	// ErrTimeout indicates the provider did not respond within the bounded wait.
	ErrTimeout = errors.New("routing provider timed out")
	// ErrProviderRejected indicates the provider reported a non-success code.
	ErrProviderRejected = errors.New("routing provider rejected the request")
	// ErrNoRouteFound indicates the provider found no route between the given waypoints.
	ErrNoRouteFound = errors.New("no route found between the given waypoints")
	// ErrTransport indicates a transport-level failure reaching the provider.
	ErrTransport = errors.New("routing provider unreachable")
)

// Provider defines the interface for routing providers.
type Provider interface {
	// ComputeRoute computes a single fixed-order route through the given
	// waypoints. The waypoint order is traversal order and is never
	// reordered. A single attempt is made per call; retry policy belongs
	// to the caller.
	ComputeRoute(ctx context.Context, waypoints []geo.Waypoint) (*ComputedRoute, error)
	// Name returns the provider identifier for logging and health tracking.
	Name() string
}

// RouteRequest is an ordered sequence of waypoints: first is the origin,
// last is the destination, interior entries are via-points.
type RouteRequest struct {
	Waypoints []geo.Waypoint
}

// ComputedRoute is a route as returned by the provider.
type ComputedRoute struct {
	// Polyline is the provider's full path geometry in traversal order,
	// higher resolution than the input waypoints.
	Polyline []geo.Coordinate
	// DistanceMeters is the total route distance.
	DistanceMeters float64
	// DurationSeconds is the total travel time.
	DurationSeconds float64
	// ComputedAt is when this route was computed.
	ComputedAt time.Time
}

// Error provides detailed error information from the routing provider.
type Error struct {
	Provider string // Provider that generated the error
	Code     string // Provider-reported error code, verbatim
	Message  string // Provider-reported message, verbatim
	Err      error  // One of the sentinel errors above
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Err.Error() + ": " + e.Message
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
