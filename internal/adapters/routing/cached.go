package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
	"time"

	"github.com/twpayne/go-polyline"
	"go.uber.org/zap"
)

const DefaultRouteTTL = time.Hour

// cachedRoute is the stored form of a route; points are polyline-encoded at 1e-5 degrees.
type cachedRoute struct {
	DistanceMiles   float64 `json:"distance_miles"`
	DurationSeconds float64 `json:"duration_seconds"`
	Polyline        string  `json:"polyline"`
}

// CachedRouteProvider memoizes routes under "route_<from>_<to>".
// Fresh routes are returned in their stored precision, so a repeat request sees the
// same points as the first one.
type CachedRouteProvider struct {
	next  ports.RouteProvider
	cache ports.Cache
	ttl   time.Duration
}

func NewCachedRouteProvider(next ports.RouteProvider, cache ports.Cache, ttl time.Duration) *CachedRouteProvider {
	if ttl <= 0 {
		ttl = DefaultRouteTTL
	}
	return &CachedRouteProvider{next: next, cache: cache, ttl: ttl}
}

func CacheKey(from, to domain.Coordinates) string {
	return fmt.Sprintf("route_%.5f,%.5f_%.5f,%.5f", from.Lon, from.Lat, to.Lon, to.Lat)
}

func (c *CachedRouteProvider) Route(ctx context.Context, from, to domain.Coordinates) (*domain.Route, error) {
	key := CacheKey(from, to)

	if b, ok, err := c.cache.Get(ctx, key); err != nil {
		obs.L().Warn("route cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		route, err := decodeRoute(b)
		if err == nil {
			return route, nil
		}
		obs.L().Warn("route cache entry corrupt", zap.String("key", key), zap.Error(err))
	}

	route, err := c.next.Route(ctx, from, to)
	if err != nil {
		return nil, err
	}

	b := encodeRoute(route)
	if err := c.cache.Set(ctx, key, b, c.ttl); err != nil {
		obs.L().Warn("route cache write failed", zap.String("key", key), zap.Error(err))
	}

	stored, err := decodeRoute(b)
	if err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}
	return stored, nil
}

func encodeRoute(r *domain.Route) []byte {
	coords := make([][]float64, 0, len(r.Points))
	for _, p := range r.Points {
		coords = append(coords, []float64{p.Lat, p.Lon})
	}

	b, _ := json.Marshal(cachedRoute{
		DistanceMiles:   r.DistanceMiles,
		DurationSeconds: r.DurationSeconds,
		Polyline:        string(polyline.EncodeCoords(coords)),
	})
	return b
}

func decodeRoute(b []byte) (*domain.Route, error) {
	var cr cachedRoute
	if err := json.Unmarshal(b, &cr); err != nil {
		return nil, fmt.Errorf("decode cached route: %w", err)
	}

	coords, _, err := polyline.DecodeCoords([]byte(cr.Polyline))
	if err != nil {
		return nil, fmt.Errorf("decode cached route polyline: %w", err)
	}

	points := make([]domain.Coordinates, 0, len(coords))
	for _, c := range coords {
		points = append(points, domain.Coordinates{Lon: c[1], Lat: c[0]})
	}

	return &domain.Route{
		DistanceMiles:   cr.DistanceMiles,
		DurationSeconds: cr.DurationSeconds,
		Points:          points,
	}, nil
}
