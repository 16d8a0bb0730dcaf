package places

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/abstractroute/abstractroute/internal/geo"
)

// ServiceConfig holds defaults applied to queries that omit them.
type ServiceConfig struct {
	// DefaultLanguage is used when a query has no language ("en" if empty).
	DefaultLanguage string

	// DefaultRegion is used when a query has no region; empty disables
	// region biasing.
	DefaultRegion string
}

// Service validates place requests and delegates to a Provider.
type Service struct {
	provider Provider
	cfg      ServiceConfig
	logger   zerolog.Logger
}

// NewService creates a new places service.
func NewService(provider Provider, cfg ServiceConfig, logger zerolog.Logger) *Service {
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = "en"
	}
	return &Service{provider: provider, cfg: cfg, logger: logger}
}

// Autocomplete validates the query, fills in configured defaults, and asks
// the provider for suggestions.
func (s *Service) Autocomplete(ctx context.Context, query AutocompleteQuery) ([]Prediction, error) {
	if strings.TrimSpace(query.Input) == "" {
		return nil, geo.NewValidationError("input", "is required")
	}
	if query.Location != nil {
		if errs := query.Location.Validate("location"); len(errs) > 0 {
			return nil, &geo.ValidationError{Errors: errs}
		}
	}

	if len(query.Types) == 0 {
		query.Types = DefaultTypes
	}
	if query.Language == "" {
		query.Language = s.cfg.DefaultLanguage
	}
	if query.Region == "" {
		query.Region = s.cfg.DefaultRegion
	}

	predictions, err := s.provider.Autocomplete(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).
			Str("provider", s.provider.Name()).
			Msg("place autocomplete failed")
		return nil, err
	}

	s.logger.Debug().
		Str("provider", s.provider.Name()).
		Int("suggestion_count", len(predictions)).
		Msg("place autocomplete complete")

	if predictions == nil {
		predictions = []Prediction{}
	}
	return predictions, nil
}

// Details resolves a place ID to its name, address, and coordinates.
func (s *Service) Details(ctx context.Context, placeID string) (*Details, error) {
	if strings.TrimSpace(placeID) == "" {
		return nil, geo.NewValidationError("place_id", "is required")
	}

	details, err := s.provider.Details(ctx, placeID)
	if err != nil {
		s.logger.Error().Err(err).
			Str("provider", s.provider.Name()).
			Str("place_id", placeID).
			Msg("place details lookup failed")
		return nil, err
	}
	return details, nil
}

// ProviderName reports which place provider backs this service.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}
