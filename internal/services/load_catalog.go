package services

import (
	"context"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultLoadBatchSize = 100

type LoadStats struct {
	Stations    int
	Located     int
	CityLookups int
}

// CatalogLoader replaces the station table with freshly parsed rows, geocoding each
// distinct "City, State" once. A station whose city cannot be geocoded is still stored,
// without coordinates.
type CatalogLoader struct {
	Repo      ports.StationRepository
	Geocoder  ports.Geocoder
	Delay     time.Duration
	BatchSize int
}

func (l *CatalogLoader) Load(ctx context.Context, rows []domain.Station) (stats LoadStats, err error) {
	defer obs.Time(ctx, "catalog.Load")(&err)

	batchSize := l.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultLoadBatchSize
	}

	if err := l.Repo.ClearStations(ctx); err != nil {
		return stats, fmt.Errorf("load catalog: clear stations: %w", err)
	}

	cities := make(map[string]*domain.Coordinates)
	batch := make([]domain.Station, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := l.Repo.InsertStations(ctx, batch); err != nil {
			return fmt.Errorf("load catalog: insert batch: %w", err)
		}
		stats.Stations += len(batch)
		batch = batch[:0]

		obs.L().Info("loaded stations", zap.Int("count", stats.Stations))
		return nil
	}

	for _, s := range rows {
		s.City = strings.TrimSpace(s.City)
		key := s.City + ", " + strings.TrimSpace(s.State)

		coords, seen := cities[key]
		if !seen {
			coords, err = l.geocodeCity(ctx, key)
			if err != nil {
				return stats, err
			}
			cities[key] = coords
			stats.CityLookups++
		}

		if coords != nil {
			c := *coords
			s.Coordinates = &c
			stats.Located++
		}

		batch = append(batch, s)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}

	if err := flush(); err != nil {
		return stats, err
	}
	return stats, nil
}

// geocodeCity returns nil coordinates for a lookup failure; only context cancellation
// aborts the load.
func (l *CatalogLoader) geocodeCity(ctx context.Context, place string) (*domain.Coordinates, error) {
	c, err := l.Geocoder.Geocode(ctx, place)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("load catalog: geocode %q: %w", place, ctxErr)
	}

	var out *domain.Coordinates
	if err != nil {
		obs.L().Warn("geocode city failed", zap.String("place", place), zap.Error(err))
	} else {
		out = &c
	}

	if l.Delay > 0 {
		t := time.NewTimer(l.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("load catalog: %w", ctx.Err())
		case <-t.C:
		}
	}
	return out, nil
}
