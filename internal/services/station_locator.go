package services

import (
	"fuel-route-service/internal/domain"
)

const (
	DefaultSearchRadiusMiles   = 50.0
	DefaultFallbackRadiusMiles = 100.0
)

// A catalog station annotated with its distance from the search point.
type NearbyStation struct {
	Station       domain.Station
	DistanceMiles float64
}

// FindWithinRadius returns every located station whose great-circle distance from point
// is at most radiusMiles, in catalog order. Stations without coordinates are skipped.
//
// This is a linear scan, O(len(stations)) per call, which is fine for a national
// truck-stop catalog (tens of thousands of rows). A grid or k-d tree can replace it
// without changing the inclusive radius contract.
func FindWithinRadius(point domain.Coordinates, stations []domain.Station, radiusMiles float64) []NearbyStation {
	nearby := make([]NearbyStation, 0)
	for _, s := range stations {
		if s.Coordinates == nil {
			continue
		}

		d := GreatCircleMiles(point, *s.Coordinates)
		if d <= radiusMiles {
			nearby = append(nearby, NearbyStation{Station: s, DistanceMiles: d})
		}
	}
	return nearby
}

// StationLocator searches at a primary radius and widens once to a fallback radius
// when the primary search is empty.
type StationLocator struct {
	PrimaryRadiusMiles  float64
	FallbackRadiusMiles float64
}

var DefaultStationLocator = StationLocator{
	PrimaryRadiusMiles:  DefaultSearchRadiusMiles,
	FallbackRadiusMiles: DefaultFallbackRadiusMiles,
}

func (l StationLocator) FindNearby(point domain.Coordinates, stations []domain.Station) []NearbyStation {
	return FindNearbyWithFallback(point, stations, l.PrimaryRadiusMiles, l.FallbackRadiusMiles)
}

// FindNearbyWithFallback returns stations within primaryRadius, or within fallbackRadius
// if none were found. An empty result means the caller must price without a station.
func FindNearbyWithFallback(
	point domain.Coordinates,
	stations []domain.Station,
	primaryRadius float64,
	fallbackRadius float64,
) []NearbyStation {
	nearby := FindWithinRadius(point, stations, primaryRadius)
	if len(nearby) > 0 {
		return nearby
	}
	return FindWithinRadius(point, stations, fallbackRadius)
}

// CheapestStation selects the minimum price per gallon.
// Ties go to the closer station, then to catalog order.
func CheapestStation(candidates []NearbyStation) (NearbyStation, bool) {
	if len(candidates) == 0 {
		return NearbyStation{}, false
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		cmp := c.Station.Price.Cmp(best.Station.Price)
		if cmp < 0 || (cmp == 0 && c.DistanceMiles < best.DistanceMiles) {
			best = c
		}
	}
	return best, true
}
