package route

import "context"

// Repository defines the interface for route persistence.
type Repository interface {
	// Create inserts a new route as a single atomic record.
	Create(ctx context.Context, route *Route) error

	// GetByID retrieves a route by ID.
	// Returns ErrRouteNotFound if no such route exists.
	GetByID(ctx context.Context, id string) (*Route, error)

	// List retrieves routes in insertion order, skipping offset records
	// and returning at most limit. An empty result is an empty slice,
	// never an error.
	List(ctx context.Context, offset, limit int) ([]*Route, error)

	// Delete removes a route by ID.
	// Returns ErrRouteNotFound if no such route exists.
	Delete(ctx context.Context, id string) error
}
