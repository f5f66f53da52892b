package services

import (
	"fuel-route-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// straightRoute builds n points along the equator, one degree of longitude apart.
func straightRoute(n int, miles float64) *domain.Route {
	pts := make([]domain.Coordinates, n)
	for i := range pts {
		pts[i] = domain.Coordinates{Lon: float64(i), Lat: 0}
	}
	return &domain.Route{DistanceMiles: miles, DurationSeconds: miles * 60, Points: pts}
}

func TestPointAtDistance_IndexProportional(t *testing.T) {
	route := straightRoute(10, 1000)

	p, ok := PointAtDistance(route, 0)
	require.True(t, ok)
	assert.Equal(t, route.Points[0], p)

	// floor(10 * 400/1000) = 4
	p, ok = PointAtDistance(route, 400)
	require.True(t, ok)
	assert.Equal(t, route.Points[4], p)

	// floor(10 * 999/1000) = 9
	p, ok = PointAtDistance(route, 999)
	require.True(t, ok)
	assert.Equal(t, route.Points[9], p)
}

func TestPointAtDistance_OutOfRange(t *testing.T) {
	route := straightRoute(10, 1000)

	_, ok := PointAtDistance(route, 1000)
	assert.False(t, ok, "index == len(points) is out of range")

	_, ok = PointAtDistance(route, -1)
	assert.False(t, ok)

	_, ok = PointAtDistance(nil, 10)
	assert.False(t, ok)

	_, ok = PointAtDistance(&domain.Route{DistanceMiles: 0, Points: route.Points}, 10)
	assert.False(t, ok)
}

func TestArcLengthSampler_InterpolatesByLength(t *testing.T) {
	// Uneven spacing: a dense cluster near the origin, then one long segment.
	route := &domain.Route{
		DistanceMiles: 100,
		Points: []domain.Coordinates{
			{Lon: 0, Lat: 0}, {Lon: 0.01, Lat: 0}, {Lon: 0.02, Lat: 0}, {Lon: 0.03, Lat: 0},
			{Lon: 1, Lat: 0},
		},
	}

	p, ok := ArcLengthSampler{}.PointAtDistance(route, 50)
	require.True(t, ok)
	assert.InDelta(t, 0.5, p.Lon, 1e-6)

	// The index sampler lands in the dense cluster for the same target.
	idx, ok := IndexSampler{}.PointAtDistance(route, 50)
	require.True(t, ok)
	assert.Equal(t, 0.02, idx.Lon)

	end, ok := ArcLengthSampler{}.PointAtDistance(route, 100)
	require.True(t, ok)
	assert.InDelta(t, 1.0, end.Lon, 1e-9)

	_, ok = ArcLengthSampler{}.PointAtDistance(route, 101)
	assert.False(t, ok)
}

func TestSamplerByName(t *testing.T) {
	assert.IsType(t, ArcLengthSampler{}, SamplerByName("arc_length"))
	assert.IsType(t, IndexSampler{}, SamplerByName("index"))
	assert.IsType(t, IndexSampler{}, SamplerByName(""))
}
