// Package geo provides the geographic value types shared across the API:
// coordinates, named waypoints, and their validation and decoding rules.
package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Coordinate represents a geographic point.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Waypoint represents a named or unnamed stop along a route.
type Waypoint struct {
	Coordinates Coordinate `json:"coordinates"`
	Name        *string    `json:"name,omitempty"`
}

// FieldError describes a validation failure on a specific field path,
// e.g. "waypoints[2].coordinates.latitude".
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError aggregates one or more field errors. It is always
// client-caused and never worth retrying.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Path+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(path, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Path: path, Message: message}}}
}

// Validate checks the coordinate against the WGS84 ranges. The path prefix
// is used to build field paths in the returned errors.
func (c Coordinate) Validate(path string) []FieldError {
	var errs []FieldError
	if c.Latitude < -90 || c.Latitude > 90 {
		errs = append(errs, FieldError{
			Path:    joinPath(path, "latitude"),
			Message: fmt.Sprintf("latitude %g out of range [-90, 90]", c.Latitude),
		})
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		errs = append(errs, FieldError{
			Path:    joinPath(path, "longitude"),
			Message: fmt.Sprintf("longitude %g out of range [-180, 180]", c.Longitude),
		})
	}
	return errs
}

// Validate checks the waypoint's coordinates.
func (w Waypoint) Validate(path string) []FieldError {
	return w.Coordinates.Validate(joinPath(path, "coordinates"))
}

// DecodeCoordinate decodes a JSON object into a Coordinate, requiring both
// latitude and longitude to be present and in range. The path prefix names
// the document being decoded in error messages.
func DecodeCoordinate(data []byte, path string) (Coordinate, error) {
	var raw struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Coordinate{}, NewValidationError(path, "must be an object with latitude and longitude")
	}

	var errs []FieldError
	if raw.Latitude == nil {
		errs = append(errs, FieldError{Path: joinPath(path, "latitude"), Message: "is required"})
	}
	if raw.Longitude == nil {
		errs = append(errs, FieldError{Path: joinPath(path, "longitude"), Message: "is required"})
	}
	if len(errs) > 0 {
		return Coordinate{}, &ValidationError{Errors: errs}
	}

	c := Coordinate{Latitude: *raw.Latitude, Longitude: *raw.Longitude}
	if errs := c.Validate(path); len(errs) > 0 {
		return Coordinate{}, &ValidationError{Errors: errs}
	}
	return c, nil
}

// DecodeWaypoint decodes a JSON object into a Waypoint. The nested
// coordinates object is required and must satisfy the Coordinate rules.
func DecodeWaypoint(data []byte, path string) (Waypoint, error) {
	var raw struct {
		Coordinates json.RawMessage `json:"coordinates"`
		Name        *string         `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Waypoint{}, NewValidationError(path, "must be an object with coordinates")
	}
	if len(raw.Coordinates) == 0 || string(raw.Coordinates) == "null" {
		return Waypoint{}, NewValidationError(joinPath(path, "coordinates"), "is required")
	}

	coord, err := DecodeCoordinate(raw.Coordinates, joinPath(path, "coordinates"))
	if err != nil {
		return Waypoint{}, err
	}
	return Waypoint{Coordinates: coord, Name: raw.Name}, nil
}

// DecodeCoordinateList decodes a JSON array of coordinate objects,
// preserving order. Every element must satisfy the Coordinate rules.
func DecodeCoordinateList(data []byte, path string) ([]Coordinate, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, NewValidationError(path, "must be an array of coordinates")
	}

	coords := make([]Coordinate, 0, len(raws))
	var errs []FieldError
	for i, raw := range raws {
		c, err := DecodeCoordinate(raw, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				errs = append(errs, verr.Errors...)
				continue
			}
			return nil, err
		}
		coords = append(coords, c)
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return coords, nil
}

// DecodeWaypointList decodes a JSON array of waypoint objects, preserving
// order. A null or absent array decodes to an empty list.
func DecodeWaypointList(data []byte, path string) ([]Waypoint, error) {
	if len(data) == 0 || string(data) == "null" {
		return []Waypoint{}, nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, NewValidationError(path, "must be an array of waypoints")
	}

	waypoints := make([]Waypoint, 0, len(raws))
	var errs []FieldError
	for i, raw := range raws {
		wp, err := DecodeWaypoint(raw, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				errs = append(errs, verr.Errors...)
				continue
			}
			return nil, err
		}
		waypoints = append(waypoints, wp)
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return waypoints, nil
}

func joinPath(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + "." + field
}
