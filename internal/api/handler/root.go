package handler

import (
	"net/http"

	"github.com/abstractroute/abstractroute/internal/api/response"
)

// RootHandler handles the API welcome document.
type RootHandler struct {
	version string
}

// NewRootHandler creates a new RootHandler.
func NewRootHandler(version string) *RootHandler {
	return &RootHandler{version: version}
}

// Welcome handles GET / - a short service description with entry points.
func (h *RootHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	doc := map[string]interface{}{
		"message": "Welcome to Abstract Route API",
		"version": h.version,
		"endpoints": map[string]string{
			"calculate": "/api/v1/route/calculate",
			"routes":    "/api/v1/routes",
			"places":    "/api/v1/places",
			"health":    "/api/v1/ops/health",
		},
	}
	response.JSON(w, r, http.StatusOK, doc)
}
