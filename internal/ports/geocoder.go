package ports

import (
	"context"
	"fuel-route-service/internal/domain"
)

// Contract for resolving a free-text place name to coordinates.
type Geocoder interface {
	// Return coordinates for the place, or ErrNotFound when the provider has no match.
	Geocode(ctx context.Context, place string) (domain.Coordinates, error)
}
