package routing

import (
	"context"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	dallas  = domain.Coordinates{Lon: -96.797, Lat: 32.7767}
	houston = domain.Coordinates{Lon: -95.3698, Lat: 29.7604}
)

const osrmOK = `{
  "code": "Ok",
  "routes": [{
    "distance": 386243.2,
    "duration": 13500.5,
    "geometry": {"type": "LineString", "coordinates": [[-96.797,32.7767],[-96.1,31.5],[-95.3698,29.7604]]}
  }]
}`

func TestOSRMRouteProvider_Route(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/route/v1/driving/-96.797000,32.776700;-95.369800,29.760400", r.URL.Path)
		assert.Equal(t, "full", r.URL.Query().Get("overview"))
		assert.Equal(t, "geojson", r.URL.Query().Get("geometries"))
		assert.Equal(t, "true", r.URL.Query().Get("steps"))
		_, _ = w.Write([]byte(osrmOK))
	}))
	defer srv.Close()

	route, err := NewOSRMRouteProvider(srv.URL, srv.Client()).Route(context.Background(), dallas, houston)
	require.NoError(t, err)

	assert.InDelta(t, 386243.2*MilesPerMeter, route.DistanceMiles, 1e-9)
	assert.Equal(t, 13500.5, route.DurationSeconds)
	require.Len(t, route.Points, 3)
	assert.Equal(t, dallas, route.Points[0])
	assert.Equal(t, houston, route.Points[2])
}

func TestOSRMRouteProvider_NoRoute(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"code not ok", http.StatusOK, `{"code":"NoRoute","routes":[]}`},
		{"empty routes", http.StatusOK, `{"code":"Ok","routes":[]}`},
		{"bad request", http.StatusBadRequest, `{"code":"NoSegment"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewOSRMRouteProvider(srv.URL, srv.Client()).Route(context.Background(), dallas, houston)
			assert.ErrorIs(t, err, ports.ErrNotFound)
		})
	}
}

type memCache struct {
	mu sync.Mutex
	m  map[string][]byte
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.m[key]
	return b, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m == nil {
		c.m = map[string][]byte{}
	}
	c.m[key] = value
	return nil
}

type countingProvider struct {
	calls int
	next  ports.RouteProvider
}

func (p *countingProvider) Route(ctx context.Context, from, to domain.Coordinates) (*domain.Route, error) {
	p.calls++
	return p.next.Route(ctx, from, to)
}

func TestCachedRouteProvider_RoundTripsThroughPolyline(t *testing.T) {
	want := &domain.Route{
		DistanceMiles:   240.12,
		DurationSeconds: 13500,
		Points:          []domain.Coordinates{dallas, {Lon: -96.1, Lat: 31.5}, houston},
	}
	next := &countingProvider{next: NewMockRouteProvider([]MockRoute{{From: dallas, To: houston, Route: want}})}
	cache := &memCache{}
	p := NewCachedRouteProvider(next, cache, time.Hour)

	first, err := p.Route(context.Background(), dallas, houston)
	require.NoError(t, err)

	second, err := p.Route(context.Background(), dallas, houston)
	require.NoError(t, err)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, first, second, "a cache hit returns the same points as the fetch that filled it")

	assert.Equal(t, want.DistanceMiles, second.DistanceMiles)
	assert.Equal(t, want.DurationSeconds, second.DurationSeconds)
	require.Len(t, second.Points, 3)
	for i := range want.Points {
		assert.InDelta(t, want.Points[i].Lat, second.Points[i].Lat, 1e-5)
		assert.InDelta(t, want.Points[i].Lon, second.Points[i].Lon, 1e-5)
	}
	assert.Contains(t, cache.m, CacheKey(dallas, houston))
}

func TestCachedRouteProvider_ErrorsAreNotCached(t *testing.T) {
	next := &countingProvider{next: NewMockRouteProvider(nil)}
	p := NewCachedRouteProvider(next, &memCache{}, time.Hour)

	_, err := p.Route(context.Background(), dallas, houston)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	_, err = p.Route(context.Background(), dallas, houston)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.Equal(t, 2, next.calls)
}

func TestCachedRouteProvider_CorruptEntryRefetches(t *testing.T) {
	want := &domain.Route{DistanceMiles: 1, Points: []domain.Coordinates{dallas, houston}}
	next := &countingProvider{next: NewMockRouteProvider([]MockRoute{{From: dallas, To: houston, Route: want}})}
	cache := &memCache{m: map[string][]byte{CacheKey(dallas, houston): []byte("{not json")}}

	got, err := NewCachedRouteProvider(next, cache, time.Hour).Route(context.Background(), dallas, houston)
	require.NoError(t, err)
	assert.Equal(t, want.DistanceMiles, got.DistanceMiles)
	assert.Len(t, got.Points, 2)
	assert.Equal(t, 1, next.calls)
}
