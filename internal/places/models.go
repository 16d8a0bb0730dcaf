// Package places provides place search and lookup backed by an external
// geocoding provider. The provider boundary mirrors the routing one: the
// service validates and delegates, the provider client owns the wire format.
package places

import (
	"context"
	"errors"

	"github.com/abstractroute/abstractroute/internal/geo"
)

// Provider errors.
var (
	// ErrPlaceNotFound indicates the provider has no place for the given ID.
	ErrPlaceNotFound = errors.New("place not found")

	// ErrProviderUnavailable indicates the provider could not be reached or
	// rejected the request for operational reasons (quota, auth, outage).
	ErrProviderUnavailable = errors.New("places provider unavailable")
)

// DefaultTypes is the place-type filter applied when the caller does not
// specify one.
var DefaultTypes = []string{"geocode", "establishment"}

// AutocompleteQuery is a place search request.
type AutocompleteQuery struct {
	// Input is the free-text search string.
	Input string

	// Types filters the kinds of places returned; empty means DefaultTypes.
	Types []string

	// Region is a country code ("nl", "us") used to bias results.
	Region string

	// Language is the language code for result text.
	Language string

	// Location biases results toward a point; nil means no bias.
	Location *geo.Coordinate
}

// Prediction is a single autocomplete suggestion.
type Prediction struct {
	PlaceID       string
	Description   string
	MainText      string
	SecondaryText string
}

// Details holds the resolved information for a single place.
type Details struct {
	Name        string
	Address     string
	Coordinates geo.Coordinate
}

// Provider is implemented by place search backends.
type Provider interface {
	// Autocomplete returns suggestions for a free-text query. No matches is
	// an empty slice, not an error.
	Autocomplete(ctx context.Context, query AutocompleteQuery) ([]Prediction, error)

	// Details resolves a place ID. Returns ErrPlaceNotFound when the
	// provider has no such place.
	Details(ctx context.Context, placeID string) (*Details, error)

	// Name identifies the provider for logging and health reporting.
	Name() string
}
