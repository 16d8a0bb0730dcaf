// Package route provides persistence for computed routes.
package route

import (
	"errors"
	"fmt"
	"time"

	"github.com/abstractroute/abstractroute/internal/geo"
)

// Repository errors.
var (
	ErrRouteNotFound = errors.New("route not found")
)

// Route represents a saved route. Routes are immutable after creation;
// the only lifecycle transition is deletion.
type Route struct {
	ID          string
	Title       string
	Description string
	Origin      geo.Coordinate
	Destination geo.Coordinate
	// Waypoints are the interior stops only; may be empty.
	Waypoints []geo.Waypoint
	// Polyline is the full-resolution path geometry, never empty.
	Polyline []geo.Coordinate
	// DistanceMeters is the total route distance, never negative.
	DistanceMeters float64
	// DurationSeconds is the total travel time, never negative.
	DurationSeconds float64
	CreatedAt       time.Time
}

// Validate checks the route against the storage invariants. It is applied
// both before writes and after reads: stored data is not trusted merely
// because this system wrote it.
func (r *Route) Validate() []geo.FieldError {
	var errs []geo.FieldError

	if r.Title == "" {
		errs = append(errs, geo.FieldError{Path: "title", Message: "is required"})
	}
	errs = append(errs, r.Origin.Validate("origin")...)
	errs = append(errs, r.Destination.Validate("destination")...)
	for i, wp := range r.Waypoints {
		errs = append(errs, wp.Validate(waypointPath(i))...)
	}
	if len(r.Polyline) == 0 {
		errs = append(errs, geo.FieldError{Path: "route", Message: "must contain at least one coordinate"})
	}
	for i, c := range r.Polyline {
		errs = append(errs, c.Validate(polylinePath(i))...)
	}
	if r.DistanceMeters < 0 {
		errs = append(errs, geo.FieldError{Path: "distance", Message: "must not be negative"})
	}
	if r.DurationSeconds < 0 {
		errs = append(errs, geo.FieldError{Path: "duration", Message: "must not be negative"})
	}

	return errs
}

func waypointPath(i int) string { return fmt.Sprintf("waypoints[%d]", i) }

func polylinePath(i int) string { return fmt.Sprintf("route[%d]", i) }
