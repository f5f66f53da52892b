package services

import (
	"fuel-route-service/internal/domain"
	"math"
)

// EarthRadiusMiles is the mean Earth radius used by every distance in the planner.
const EarthRadiusMiles = 3959.0

// GreatCircleMiles returns the haversine distance between two coordinates in miles.
//
// The haversine term is clamped to [0, 1] so floating-point overshoot near antipodal
// or coincident points cannot push sqrt/asin out of their domain. NaN input propagates.
func GreatCircleMiles(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dlat := (b.Lat - a.Lat) * math.Pi / 180
	dlon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dlat / 2)
	sinLon := math.Sin(dlon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	h = math.Min(1, math.Max(0, h))

	return EarthRadiusMiles * 2 * math.Asin(math.Sqrt(h))
}
