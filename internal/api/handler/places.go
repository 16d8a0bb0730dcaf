package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/abstractroute/abstractroute/internal/api/models"
	"github.com/abstractroute/abstractroute/internal/api/response"
	"github.com/abstractroute/abstractroute/internal/geo"
	"github.com/abstractroute/abstractroute/internal/places"
)

// PlacesHandler handles place search endpoints.
type PlacesHandler struct {
	places *places.Service
	logger zerolog.Logger
}

// NewPlacesHandler creates a new PlacesHandler.
func NewPlacesHandler(placesSvc *places.Service, logger zerolog.Logger) *PlacesHandler {
	return &PlacesHandler{places: placesSvc, logger: logger}
}

// Autocomplete handles POST /api/v1/places/autocomplete - place suggestions
// for a free-text query.
func (h *PlacesHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	var input models.PlaceAutocompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	predictions, err := h.places.Autocomplete(r.Context(), places.AutocompleteQuery{
		Input:    input.Input,
		Types:    input.Types,
		Region:   input.Region,
		Language: input.Language,
		Location: input.Location,
	})
	if err != nil {
		writePlacesError(w, r, err)
		return
	}

	suggestions := make([]models.PlacePrediction, 0, len(predictions))
	for _, p := range predictions {
		suggestions = append(suggestions, models.PlacePrediction{
			PlaceID:       p.PlaceID,
			Description:   p.Description,
			MainText:      p.MainText,
			SecondaryText: p.SecondaryText,
		})
	}
	response.JSON(w, r, http.StatusOK, models.PlaceAutocompleteResponse{Suggestions: suggestions})
}

// Details handles GET /api/v1/places/details/{placeId} - resolve a place ID.
func (h *PlacesHandler) Details(w http.ResponseWriter, r *http.Request) {
	placeID := chi.URLParam(r, "placeId")

	details, err := h.places.Details(r.Context(), placeID)
	if err != nil {
		writePlacesError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.PlaceDetails{
		Name:        details.Name,
		Address:     details.Address,
		Coordinates: details.Coordinates,
	})
}

// writePlacesError maps place lookup errors onto problem responses.
func writePlacesError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *geo.ValidationError
	switch {
	case errors.As(err, &verr):
		fields := make([]models.FieldError, 0, len(verr.Errors))
		for _, fe := range verr.Errors {
			fields = append(fields, models.FieldError{Field: fe.Path, Message: fe.Message})
		}
		response.BadRequest(w, r, "validation failed", fields)
	case errors.Is(err, places.ErrPlaceNotFound):
		response.NotFound(w, r, "place not found")
	case errors.Is(err, places.ErrProviderUnavailable):
		response.BadGateway(w, r, err.Error())
	default:
		response.InternalError(w, r, "internal error")
	}
}
