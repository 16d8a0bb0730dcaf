// Package handler provides HTTP handlers for the AbstractRoute API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/abstractroute/abstractroute/internal/api/models"
	"github.com/abstractroute/abstractroute/internal/api/response"
	"github.com/abstractroute/abstractroute/internal/geo"
	"github.com/abstractroute/abstractroute/internal/route"
	"github.com/abstractroute/abstractroute/internal/routing"
)

// RouteHandler handles route calculation and persistence endpoints.
type RouteHandler struct {
	routing *routing.Service
	routes  *route.Service
	logger  zerolog.Logger
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(routingSvc *routing.Service, routeSvc *route.Service, logger zerolog.Logger) *RouteHandler {
	return &RouteHandler{
		routing: routingSvc,
		routes:  routeSvc,
		logger:  logger,
	}
}

// Calculate handles POST /api/v1/route/calculate - compute a route through
// ordered waypoints.
func (h *RouteHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	body, err := decodeCalculateRequest(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	computed, err := h.routing.Calculate(r.Context(), routing.RouteRequest{Waypoints: body.Waypoints})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	resp := models.CalculatedRoute{
		Route:           computed.Polyline,
		EncodedPolyline: route.EncodePolyline(computed.Polyline),
		Distance:        computed.DistanceMeters,
		Duration:        computed.DurationSeconds,
		CreatedAt:       models.Timestamp(computed.ComputedAt),
	}
	response.JSON(w, r, http.StatusOK, resp)
}

// decodeCalculateRequest decodes the calculate body through the strict geo
// decoders so that absent latitude/longitude fields are reported rather
// than zero-filled.
func decodeCalculateRequest(r *http.Request) (*models.RouteCalculateRequest, error) {
	var raw struct {
		Waypoints json.RawMessage `json:"waypoints"`
	}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, geo.NewValidationError("body", "invalid JSON")
	}

	waypoints, err := geo.DecodeWaypointList(raw.Waypoints, "waypoints")
	if err != nil {
		return nil, err
	}
	return &models.RouteCalculateRequest{Waypoints: waypoints}, nil
}

// Save handles POST /api/v1/routes - persist a route.
func (h *RouteHandler) Save(w http.ResponseWriter, r *http.Request) {
	var input models.RouteCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	saved, err := h.routes.Save(r.Context(), &input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	response.Created(w, r, "/api/v1/routes/"+saved.ID, saved)
}

// List handles GET /api/v1/routes?skip=&limit= - list saved routes.
func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		response.BadRequest(w, r, "skip must be a non-negative integer", nil)
		return
	}
	limit, err := queryInt(r, "limit", route.DefaultListLimit)
	if err != nil {
		response.BadRequest(w, r, "limit must be a non-negative integer", nil)
		return
	}

	routes, err := h.routes.List(r.Context(), skip, limit)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, routes)
}

// Get handles GET /api/v1/routes/{routeId} - fetch a saved route.
func (h *RouteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "routeId")

	saved, err := h.routes.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, saved)
}

// Delete handles DELETE /api/v1/routes/{routeId} - remove a saved route.
func (h *RouteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "routeId")

	if err := h.routes.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.Message{Message: "Route deleted successfully"})
}

// queryInt parses a non-negative integer query parameter.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errors.New("invalid " + name)
	}
	return v, nil
}

// writeDomainError maps domain errors onto problem responses. Validation
// failures carry their field errors; provider faults surface the upstream
// diagnostic so callers can tell a bad request from a bad provider.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *geo.ValidationError
	if errors.As(err, &verr) {
		fields := make([]models.FieldError, 0, len(verr.Errors))
		for _, fe := range verr.Errors {
			fields = append(fields, models.FieldError{Field: fe.Path, Message: fe.Message})
		}
		response.BadRequest(w, r, "validation failed", fields)
		return
	}

	if errors.Is(err, route.ErrRouteNotFound) {
		response.NotFound(w, r, "route not found")
		return
	}

	var perr *routing.Error
	if errors.As(err, &perr) {
		switch {
		case errors.Is(err, routing.ErrTimeout):
			response.GatewayTimeout(w, r, perr.Error())
		case errors.Is(err, routing.ErrProviderRejected),
			errors.Is(err, routing.ErrNoRouteFound),
			errors.Is(err, routing.ErrTransport):
			response.BadGateway(w, r, perr.Error())
		default:
			response.InternalError(w, r, perr.Error())
		}
		return
	}

	response.InternalError(w, r, "internal error")
}
