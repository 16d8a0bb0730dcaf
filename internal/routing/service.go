package routing

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/abstractroute/abstractroute/internal/geo"
)

// Service validates route requests and delegates computation to a provider.
// It performs no I/O of its own beyond the single delegated provider call;
// its job is to enforce invariants before spending a network round trip.
type Service struct {
	provider Provider
	logger   zerolog.Logger
}

// NewService creates a new route computation service.
func NewService(provider Provider, logger zerolog.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// Calculate validates the request and computes a route through the provider.
// Failures are typed: a *geo.ValidationError for bad input, a *Error from
// the provider otherwise. Provider errors propagate unchanged, with no
// retry.
func (s *Service) Calculate(ctx context.Context, req RouteRequest) (*ComputedRoute, error) {
	if len(req.Waypoints) < 2 {
		return nil, geo.NewValidationError("waypoints", "at least two waypoints (origin and destination) are required")
	}

	// Collect every invalid waypoint, not just the first, so the client
	// can fix them all in one pass.
	var fieldErrs []geo.FieldError
	for i, wp := range req.Waypoints {
		fieldErrs = append(fieldErrs, wp.Validate(fmt.Sprintf("waypoints[%d]", i))...)
	}
	if len(fieldErrs) > 0 {
		return nil, &geo.ValidationError{Errors: fieldErrs}
	}

	s.logger.Debug().
		Int("waypoint_count", len(req.Waypoints)).
		Str("provider", s.provider.Name()).
		Msg("calculating route")

	result, err := s.provider.ComputeRoute(ctx, req.Waypoints)
	if err != nil {
		s.logger.Error().Err(err).
			Int("waypoint_count", len(req.Waypoints)).
			Str("provider", s.provider.Name()).
			Msg("route computation failed")
		return nil, err
	}

	result.ComputedAt = time.Now()

	s.logger.Debug().
		Int("point_count", len(result.Polyline)).
		Float64("distance_m", result.DistanceMeters).
		Float64("duration_s", result.DurationSeconds).
		Msg("route computed")

	return result, nil
}

// ProviderName returns the name of the underlying provider.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}
