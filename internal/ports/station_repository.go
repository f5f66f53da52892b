package ports

import (
	"context"
	"fuel-route-service/internal/domain"
)

// Port: a boundary for reading and bulk-loading the fuel station catalog.
type StationRepository interface {
	// Retrieve every station, including those without coordinates.
	ListStations(ctx context.Context) ([]domain.Station, error)
	// Remove all stations ahead of a reload.
	ClearStations(ctx context.Context) error
	// Insert a batch of stations; IDs are assigned by the store.
	InsertStations(ctx context.Context, stations []domain.Station) error
	CountStations(ctx context.Context) (int, error)
}
