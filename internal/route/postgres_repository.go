package route

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abstractroute/abstractroute/internal/geo"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
// Coordinate lists and waypoints are stored as JSONB sub-documents; this
// repository exclusively owns their encoding and decoding.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL route repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new route. The insert is a single statement, so a
// storage failure leaves no partial record behind.
func (r *PostgresRepository) Create(ctx context.Context, route *Route) error {
	origin, err := json.Marshal(route.Origin)
	if err != nil {
		return fmt.Errorf("encoding origin: %w", err)
	}
	destination, err := json.Marshal(route.Destination)
	if err != nil {
		return fmt.Errorf("encoding destination: %w", err)
	}
	waypoints, err := json.Marshal(route.Waypoints)
	if err != nil {
		return fmt.Errorf("encoding waypoints: %w", err)
	}
	polyline, err := json.Marshal(route.Polyline)
	if err != nil {
		return fmt.Errorf("encoding polyline: %w", err)
	}

	query := `
		INSERT INTO routes (
			id, title, description,
			origin, destination, waypoints, polyline,
			distance, duration, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.pool.Exec(ctx, query,
		route.ID,
		route.Title,
		route.Description,
		origin,
		destination,
		waypoints,
		polyline,
		route.DistanceMeters,
		route.DurationSeconds,
		route.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting route: %w", err)
	}
	return nil
}

// GetByID retrieves a route by ID.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Route, error) {
	query := `
		SELECT id, title, description,
			origin, destination, waypoints, polyline,
			distance, duration, created_at
		FROM routes
		WHERE id = $1
	`

	route, err := r.scanRoute(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	return route, nil
}

// List retrieves routes in insertion order.
func (r *PostgresRepository) List(ctx context.Context, offset, limit int) ([]*Route, error) {
	query := `
		SELECT id, title, description,
			origin, destination, waypoints, polyline,
			distance, duration, created_at
		FROM routes
		ORDER BY created_at, id
		OFFSET $1 LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]*Route, 0)
	for rows.Next() {
		route, err := r.scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return routes, nil
}

// Delete removes a route by ID. The delete is a single statement; a failed
// delete leaves the record intact.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting route: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrRouteNotFound
	}
	return nil
}

// scanRoute scans a route row and decodes its JSONB sub-documents through
// the strict geo decoders. Stored documents that violate the coordinate
// invariants fail the read rather than being silently coerced.
func (r *PostgresRepository) scanRoute(row pgx.Row) (*Route, error) {
	var (
		route       Route
		origin      []byte
		destination []byte
		waypoints   []byte
		polyline    []byte
	)

	err := row.Scan(
		&route.ID,
		&route.Title,
		&route.Description,
		&origin,
		&destination,
		&waypoints,
		&polyline,
		&route.DistanceMeters,
		&route.DurationSeconds,
		&route.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if route.Origin, err = geo.DecodeCoordinate(origin, "origin"); err != nil {
		return nil, fmt.Errorf("route %s: corrupt origin: %w", route.ID, err)
	}
	if route.Destination, err = geo.DecodeCoordinate(destination, "destination"); err != nil {
		return nil, fmt.Errorf("route %s: corrupt destination: %w", route.ID, err)
	}
	if route.Waypoints, err = geo.DecodeWaypointList(waypoints, "waypoints"); err != nil {
		return nil, fmt.Errorf("route %s: corrupt waypoints: %w", route.ID, err)
	}
	if route.Polyline, err = geo.DecodeCoordinateList(polyline, "route"); err != nil {
		return nil, fmt.Errorf("route %s: corrupt polyline: %w", route.ID, err)
	}

	return &route, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
