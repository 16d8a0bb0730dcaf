package models

import "github.com/abstractroute/abstractroute/internal/geo"

// PlaceAutocompleteRequest is the request body for place autocomplete.
type PlaceAutocompleteRequest struct {
	// Input is the free-text search string.
	Input string `json:"input"`
	// Types filters the kinds of place results to return.
	Types []string `json:"types,omitempty"`
	// Region is a region code (e.g. "us") to bias results.
	Region string `json:"region,omitempty"`
	// Language is the language code for results.
	Language string `json:"language,omitempty"`
	// Location biases results towards this point.
	Location *geo.Coordinate `json:"location,omitempty"`
}

// PlacePrediction is a single autocomplete suggestion.
type PlacePrediction struct {
	PlaceID       string `json:"place_id"`
	Description   string `json:"description"`
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}

// PlaceAutocompleteResponse is the response body for place autocomplete.
type PlaceAutocompleteResponse struct {
	Suggestions []PlacePrediction `json:"suggestions"`
}

// PlaceDetails describes a single place.
type PlaceDetails struct {
	Name        string         `json:"name"`
	Address     string         `json:"address"`
	Coordinates geo.Coordinate `json:"coordinates"`
}
