package route

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu     sync.RWMutex
	routes map[string]*Route
	order  []string // insertion order
}

// NewInMemoryRepository creates a new in-memory route repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		routes: make(map[string]*Route),
	}
}

// Create inserts a new route.
func (r *InMemoryRepository) Create(_ context.Context, route *Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *route
	r.routes[route.ID] = &cpy
	r.order = append(r.order, route.ID)
	return nil
}

// GetByID retrieves a route by ID.
func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	route, ok := r.routes[id]
	if !ok {
		return nil, ErrRouteNotFound
	}

	cpy := *route
	return &cpy, nil
}

// List retrieves routes in insertion order.
func (r *InMemoryRepository) List(_ context.Context, offset, limit int) ([]*Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make([]*Route, 0)
	if offset >= len(r.order) || limit <= 0 {
		return routes, nil
	}

	end := offset + limit
	if end > len(r.order) {
		end = len(r.order)
	}
	for _, id := range r.order[offset:end] {
		cpy := *r.routes[id]
		routes = append(routes, &cpy)
	}
	return routes, nil
}

// Delete removes a route by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.routes[id]; !ok {
		return ErrRouteNotFound
	}

	delete(r.routes, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of stored routes.
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.routes)
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
