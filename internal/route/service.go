package route

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abstractroute/abstractroute/internal/api/models"
	"github.com/abstractroute/abstractroute/internal/geo"
	"github.com/abstractroute/abstractroute/pkg/polyline"
)

// DefaultListLimit caps a list page when the caller does not ask for one.
const DefaultListLimit = 10

// Service provides route persistence operations. It owns the translation
// between the wire/storage representation and the typed domain object; all
// nested sub-documents pass through the strict geo decoders here.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

// NewService creates a new route persistence service.
func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Save validates and persists a route candidate. Validation covers every
// nested coordinate and waypoint; on any validation failure nothing is
// written. A new ID and creation timestamp are assigned on success.
func (s *Service) Save(ctx context.Context, input *models.RouteCreateRequest) (*models.StoredRoute, error) {
	candidate, verr := s.decodeCandidate(input)
	if verr != nil {
		return nil, verr
	}

	candidate.ID = uuid.New().String()
	candidate.CreatedAt = time.Now().UTC()

	if err := s.repo.Create(ctx, candidate); err != nil {
		s.logger.Error().Err(err).
			Str("route_id", candidate.ID).
			Msg("route write failed, nothing persisted")
		return nil, err
	}

	s.logger.Info().
		Str("route_id", candidate.ID).
		Str("title", candidate.Title).
		Int("point_count", len(candidate.Polyline)).
		Msg("route saved")

	result := s.toAPIRoute(candidate)
	return &result, nil
}

// List retrieves routes in insertion order, skipping offset records and
// returning at most limit. An empty page is an empty slice.
func (s *Service) List(ctx context.Context, offset, limit int) ([]models.StoredRoute, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	routes, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]models.StoredRoute, 0, len(routes))
	for _, r := range routes {
		items = append(items, s.toAPIRoute(r))
	}
	return items, nil
}

// Get retrieves a route by ID.
func (s *Service) Get(ctx context.Context, id string) (*models.StoredRoute, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := s.toAPIRoute(r)
	return &result, nil
}

// Delete removes a route by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, ErrRouteNotFound) {
			s.logger.Error().Err(err).Str("route_id", id).Msg("route delete failed, record intact")
		}
		return err
	}
	s.logger.Info().Str("route_id", id).Msg("route deleted")
	return nil
}

// decodeCandidate decodes and validates a create request into a domain
// Route. Field errors from every sub-document are aggregated so the client
// sees all offending paths at once.
func (s *Service) decodeCandidate(input *models.RouteCreateRequest) (*Route, *geo.ValidationError) {
	var errs []geo.FieldError

	if input.Title == "" {
		errs = append(errs, geo.FieldError{Path: "title", Message: "is required"})
	}

	candidate := &Route{
		Title:           input.Title,
		Description:     input.Description,
		DistanceMeters:  input.Distance,
		DurationSeconds: input.Duration,
	}

	decode := func(raw []byte, path string, required bool, apply func([]byte, string) error) {
		if len(raw) == 0 || string(raw) == "null" {
			if required {
				errs = append(errs, geo.FieldError{Path: path, Message: "is required"})
			}
			return
		}
		if err := apply(raw, path); err != nil {
			var verr *geo.ValidationError
			if errors.As(err, &verr) {
				errs = append(errs, verr.Errors...)
			} else {
				errs = append(errs, geo.FieldError{Path: path, Message: err.Error()})
			}
		}
	}

	decode(input.Origin, "origin", true, func(raw []byte, path string) error {
		c, err := geo.DecodeCoordinate(raw, path)
		candidate.Origin = c
		return err
	})
	decode(input.Destination, "destination", true, func(raw []byte, path string) error {
		c, err := geo.DecodeCoordinate(raw, path)
		candidate.Destination = c
		return err
	})
	decode(input.Waypoints, "waypoints", false, func(raw []byte, path string) error {
		wps, err := geo.DecodeWaypointList(raw, path)
		candidate.Waypoints = wps
		return err
	})
	decode(input.Route, "route", true, func(raw []byte, path string) error {
		coords, err := geo.DecodeCoordinateList(raw, path)
		candidate.Polyline = coords
		if err == nil && len(coords) == 0 {
			return geo.NewValidationError(path, "must contain at least one coordinate")
		}
		return err
	})

	if candidate.Waypoints == nil {
		candidate.Waypoints = []geo.Waypoint{}
	}
	if input.Distance < 0 {
		errs = append(errs, geo.FieldError{Path: "distance", Message: "must not be negative"})
	}
	if input.Duration < 0 {
		errs = append(errs, geo.FieldError{Path: "duration", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return nil, &geo.ValidationError{Errors: errs}
	}
	return candidate, nil
}

// toAPIRoute converts a domain Route to an API StoredRoute.
func (s *Service) toAPIRoute(r *Route) models.StoredRoute {
	waypoints := r.Waypoints
	if waypoints == nil {
		waypoints = []geo.Waypoint{}
	}
	return models.StoredRoute{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		Origin:          r.Origin,
		Destination:     r.Destination,
		Waypoints:       waypoints,
		Route:           r.Polyline,
		EncodedPolyline: EncodePolyline(r.Polyline),
		Distance:        r.DistanceMeters,
		Duration:        r.DurationSeconds,
		CreatedAt:       models.Timestamp(r.CreatedAt),
	}
}

// EncodePolyline encodes a coordinate path as a Google polyline string.
func EncodePolyline(coords []geo.Coordinate) string {
	points := make([]polyline.Coordinate, 0, len(coords))
	for _, c := range coords {
		points = append(points, polyline.Coordinate{Lat: c.Latitude, Lon: c.Longitude})
	}
	return polyline.Encode(points)
}
