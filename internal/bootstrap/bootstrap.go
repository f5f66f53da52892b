// Package bootstrap builds the concrete adapters shared by the server and the
// station tool from a loaded Config.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"fuel-route-service/internal/adapters/cache"
	"fuel-route-service/internal/adapters/geocoding"
	"fuel-route-service/internal/adapters/repositories"
	"fuel-route-service/internal/adapters/routing"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/db"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/services"
	"io"

	"go.uber.org/zap"
)

// Store groups the database handle with the adapters built on it.
type Store struct {
	DB       *sql.DB
	Dialect  db.Dialect
	Stations *repositories.SQLStationRepository
	Cache    ports.Cache
	SQLCache *cache.SQLCache

	closers []io.Closer
}

// OpenStore connects to DATABASE_URL, ensures the schema and picks the cache backend:
// Redis when REDIS_URL is set, the kv_cache table otherwise.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	conn, dialect, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if err := repositories.InitSchema(ctx, conn, dialect); err != nil {
		conn.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	s := &Store{
		DB:       conn,
		Dialect:  dialect,
		Stations: repositories.NewSQLStationRepository(conn, dialect),
		SQLCache: cache.NewSQLCache(conn, dialect),
	}
	s.Cache = s.SQLCache

	if cfg.RedisURL != "" {
		rc, err := cache.OpenRedisCache(ctx, cfg.RedisURL, "fuel:")
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
		s.Cache = rc
		s.closers = append(s.closers, rc)
	}

	obs.L().Info("store ready",
		zap.String("dialect", dialect.String()),
		zap.Bool("redis_cache", cfg.RedisURL != ""),
	)
	return s, nil
}

func (s *Store) Close() error {
	for _, c := range s.closers {
		_ = c.Close()
	}
	return s.DB.Close()
}

// NewGeocoder returns the configured provider wrapped in the lookup cache.
func NewGeocoder(cfg *config.Config, c ports.Cache) (ports.Geocoder, error) {
	var base ports.Geocoder
	switch cfg.Geocoder {
	case "ors":
		g, err := geocoding.NewORSGeocoder(cfg.ORSAPIKey, "", nil)
		if err != nil {
			return nil, fmt.Errorf("new geocoder: %w", err)
		}
		base = g
	default:
		base = geocoding.NewNominatimGeocoder(cfg.NominatimURL, nil)
	}
	return geocoding.NewCachedGeocoder(base, c, cfg.GeocodeTTL), nil
}

func NewRouteProvider(cfg *config.Config, c ports.Cache) ports.RouteProvider {
	return routing.NewCachedRouteProvider(routing.NewOSRMRouteProvider(cfg.OSRMURL, nil), c, cfg.RouteTTL)
}

// NewFuelPlanner builds the planner from the vehicle and search settings.
func NewFuelPlanner(cfg *config.Config) (*services.FuelPlanner, error) {
	price, err := cfg.FuelPrice()
	if err != nil {
		return nil, fmt.Errorf("new fuel planner: %w", err)
	}

	p := services.NewFuelPlanner(domain.VehicleProfile{
		RangeMiles:     cfg.VehicleRangeMiles,
		MilesPerGallon: cfg.VehicleMPG,
	})
	p.Locator = services.StationLocator{
		PrimaryRadiusMiles:  cfg.SearchRadiusMiles,
		FallbackRadiusMiles: cfg.FallbackRadiusMiles,
	}
	p.Sampler = services.SamplerByName(cfg.RouteSampling)
	p.DefaultPrice = price
	return p, nil
}
