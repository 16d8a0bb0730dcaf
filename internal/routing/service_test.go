package routing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/abstractroute/abstractroute/internal/geo"
)

// stubProvider returns a canned result or error and records calls.
type stubProvider struct {
	result *ComputedRoute
	err    error
	calls  int
}

func (p *stubProvider) ComputeRoute(_ context.Context, _ []geo.Waypoint) (*ComputedRoute, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	cpy := *p.result
	return &cpy, nil
}

func (p *stubProvider) Name() string { return "stub" }

func wp(lat, lon float64) geo.Waypoint {
	return geo.Waypoint{Coordinates: geo.Coordinate{Latitude: lat, Longitude: lon}}
}

func TestService_Calculate_Success(t *testing.T) {
	provider := &stubProvider{
		result: &ComputedRoute{
			Polyline: []geo.Coordinate{
				{Latitude: 37.8, Longitude: -122.4},
				{Latitude: 37.81, Longitude: -122.41},
			},
			DistanceMeters:  1500,
			DurationSeconds: 300,
		},
	}
	svc := NewService(provider, zerolog.Nop())

	result, err := svc.Calculate(context.Background(), RouteRequest{
		Waypoints: []geo.Waypoint{wp(37.8, -122.4), wp(37.81, -122.41)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.DistanceMeters != 1500 {
		t.Errorf("expected distance 1500, got %g", result.DistanceMeters)
	}
	if result.DurationSeconds != 300 {
		t.Errorf("expected duration 300, got %g", result.DurationSeconds)
	}
	if result.ComputedAt.IsZero() {
		t.Error("expected ComputedAt to be set")
	}
	if time.Since(result.ComputedAt) > time.Minute {
		t.Error("expected ComputedAt to be recent")
	}
	if provider.calls != 1 {
		t.Errorf("expected exactly one provider call, got %d", provider.calls)
	}
}

func TestService_Calculate_TooFewWaypoints(t *testing.T) {
	provider := &stubProvider{result: &ComputedRoute{}}
	svc := NewService(provider, zerolog.Nop())

	tests := []struct {
		name      string
		waypoints []geo.Waypoint
	}{
		{name: "empty", waypoints: nil},
		{name: "single valid waypoint", waypoints: []geo.Waypoint{wp(52.37, 4.89)}},
		{name: "single invalid waypoint", waypoints: []geo.Waypoint{wp(91, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Calculate(context.Background(), RouteRequest{Waypoints: tt.waypoints})

			var verr *geo.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected geo.ValidationError, got %v", err)
			}
			if provider.calls != 0 {
				t.Error("provider must not be called for an invalid request")
			}
		})
	}
}

func TestService_Calculate_ReportsEveryInvalidWaypoint(t *testing.T) {
	provider := &stubProvider{result: &ComputedRoute{}}
	svc := NewService(provider, zerolog.Nop())

	_, err := svc.Calculate(context.Background(), RouteRequest{
		Waypoints: []geo.Waypoint{
			wp(52.37, 4.89),
			wp(91, 0),       // latitude out of range
			wp(0, -181),     // longitude out of range
			wp(52.09, 5.12), // valid
		},
	})

	var verr *geo.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected geo.ValidationError, got %v", err)
	}
	if len(verr.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d: %v", len(verr.Errors), verr.Errors)
	}
	if verr.Errors[0].Path != "waypoints[1].coordinates.latitude" {
		t.Errorf("unexpected first field path %q", verr.Errors[0].Path)
	}
	if verr.Errors[1].Path != "waypoints[2].coordinates.longitude" {
		t.Errorf("unexpected second field path %q", verr.Errors[1].Path)
	}
	if provider.calls != 0 {
		t.Error("provider must not be called for an invalid request")
	}
}

func TestService_Calculate_PropagatesProviderError(t *testing.T) {
	providerErr := &Error{
		Provider: "stub",
		Code:     "NoRoute",
		Message:  "Impossible route between points",
		Err:      ErrNoRouteFound,
	}
	provider := &stubProvider{err: providerErr}
	svc := NewService(provider, zerolog.Nop())

	_, err := svc.Calculate(context.Background(), RouteRequest{
		Waypoints: []geo.Waypoint{wp(37.8, -122.4), wp(37.81, -122.41)},
	})

	var routingErr *Error
	if !errors.As(err, &routingErr) {
		t.Fatalf("expected routing.Error, got %v", err)
	}
	if routingErr != providerErr {
		t.Error("expected provider error to propagate unchanged")
	}
	if !errors.Is(err, ErrNoRouteFound) {
		t.Errorf("expected ErrNoRouteFound, got %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("expected exactly one provider call (no retry), got %d", provider.calls)
	}
}

func TestError_Error(t *testing.T) {
	err := &Error{
		Provider: "osrm",
		Code:     "InvalidQuery",
		Message:  "Query string malformed",
		Err:      ErrProviderRejected,
	}
	if !strings.Contains(err.Error(), "Query string malformed") {
		t.Errorf("expected provider message in error text, got %q", err.Error())
	}
	if !errors.Is(err, ErrProviderRejected) {
		t.Error("expected errors.Is to match sentinel through Unwrap")
	}
}
