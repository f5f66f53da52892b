package services

import (
	"context"
	"fuel-route-service/internal/domain"
	"sync"

	"github.com/stretchr/testify/mock"
)

type mockGeocoder struct{ mock.Mock }

func (m *mockGeocoder) Geocode(ctx context.Context, place string) (domain.Coordinates, error) {
	args := m.Called(ctx, place)
	return args.Get(0).(domain.Coordinates), args.Error(1)
}

type mockRouteProvider struct{ mock.Mock }

func (m *mockRouteProvider) Route(ctx context.Context, origin, destination domain.Coordinates) (*domain.Route, error) {
	args := m.Called(ctx, origin, destination)
	route, _ := args.Get(0).(*domain.Route)
	return route, args.Error(1)
}

// memStationRepo is an in-memory StationRepository.
type memStationRepo struct {
	mu       sync.Mutex
	stations []domain.Station
	batches  []int
	listErr  error
}

func (r *memStationRepo) ListStations(context.Context) ([]domain.Station, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]domain.Station(nil), r.stations...), nil
}

func (r *memStationRepo) ClearStations(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stations = nil
	return nil
}

func (r *memStationRepo) InsertStations(_ context.Context, stations []domain.Station) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range stations {
		s.ID = int64(len(r.stations) + 1)
		r.stations = append(r.stations, s)
	}
	r.batches = append(r.batches, len(stations))
	return nil
}

func (r *memStationRepo) CountStations(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stations), nil
}
