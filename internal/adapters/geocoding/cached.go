package geocoding

import (
	"context"
	"encoding/json"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
	"time"

	"go.uber.org/zap"
)

const DefaultGeocodeTTL = 24 * time.Hour

// CachedGeocoder memoizes successful lookups under "geocode_<place>".
// Misses and failures are not cached. Cache errors are logged and the
// lookup falls through to the wrapped geocoder.
type CachedGeocoder struct {
	next  ports.Geocoder
	cache ports.Cache
	ttl   time.Duration
}

func NewCachedGeocoder(next ports.Geocoder, cache ports.Cache, ttl time.Duration) *CachedGeocoder {
	if ttl <= 0 {
		ttl = DefaultGeocodeTTL
	}
	return &CachedGeocoder{next: next, cache: cache, ttl: ttl}
}

func CacheKey(place string) string { return "geocode_" + normalize(place) }

func (c *CachedGeocoder) Geocode(ctx context.Context, place string) (domain.Coordinates, error) {
	key := CacheKey(place)

	if b, ok, err := c.cache.Get(ctx, key); err != nil {
		obs.L().Warn("geocode cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var pair [2]float64
		if err := json.Unmarshal(b, &pair); err == nil {
			return domain.Coordinates{Lon: pair[0], Lat: pair[1]}, nil
		}
		obs.L().Warn("geocode cache entry corrupt", zap.String("key", key))
	}

	coords, err := c.next.Geocode(ctx, place)
	if err != nil {
		return domain.Coordinates{}, err
	}

	b, _ := json.Marshal([2]float64{coords.Lon, coords.Lat})
	if err := c.cache.Set(ctx, key, b, c.ttl); err != nil {
		obs.L().Warn("geocode cache write failed", zap.String("key", key), zap.Error(err))
	}

	return coords, nil
}
