package ports

import (
	"context"
	"fuel-route-service/internal/domain"
)

// Contract for retrieving a driving route between two coordinates.
type RouteProvider interface {
	// Return the route from origin to destination, or ErrNotFound when none exists.
	Route(ctx context.Context, origin, destination domain.Coordinates) (*domain.Route, error)
}
