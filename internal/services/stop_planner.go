package services

import (
	"fmt"
	"fuel-route-service/internal/domain"
	"math"
)

// StopsNeeded is the number of mid-route refuels: ceil(total / range) - 1, floored at 0.
func StopsNeeded(totalMiles, rangeMiles float64) int {
	n := int(math.Ceil(totalMiles/rangeMiles)) - 1
	if n < 0 {
		return 0
	}
	return n
}

// TargetDistances spaces the stops at equal fractions of the trip: i * D / (n + 1).
// Every leg is D/(n+1), which never exceeds the range.
func TargetDistances(totalMiles, rangeMiles float64) []float64 {
	n := StopsNeeded(totalMiles, rangeMiles)
	targets := make([]float64, 0, n)
	for i := 1; i <= n; i++ {
		targets = append(targets, float64(i)*totalMiles/float64(n+1))
	}
	return targets
}

// FindOptimalFuelStops picks the cheapest station near each target distance.
//
// Each stop fills a full tank. A target that does not resolve to a route point, or has
// no station within the fallback radius, is left out of the stop list and reported as
// unserved instead. Stops are numbered 1..N in route order.
func (p *FuelPlanner) FindOptimalFuelStops(
	route *domain.Route,
	catalog *domain.Catalog,
) ([]domain.FuelStop, []domain.UnservedStop) {
	if route == nil {
		return []domain.FuelStop{}, nil
	}

	targets := TargetDistances(route.DistanceMiles, p.Vehicle.RangeMiles)
	if len(targets) == 0 {
		return []domain.FuelStop{}, nil
	}

	located := catalog.Located()
	tank := p.Vehicle.TankCapacityGallons()
	sampler := p.sampler()
	locator := p.locator()

	stops := make([]domain.FuelStop, 0, len(targets))
	var unserved []domain.UnservedStop

	for _, target := range targets {
		point, ok := sampler.PointAtDistance(route, target)
		if !ok {
			unserved = append(unserved, domain.UnservedStop{
				TargetMiles: target,
				Reason:      "target distance does not resolve to a route point",
			})
			continue
		}

		best, ok := CheapestStation(locator.FindNearby(point, located))
		if !ok {
			pt := point
			unserved = append(unserved, domain.UnservedStop{
				TargetMiles: target,
				Coordinates: &pt,
				Reason:      fmt.Sprintf("no station within %.0f miles", locator.FallbackRadiusMiles),
			})
			continue
		}

		stops = append(stops, domain.FuelStop{
			StopNumber:       len(stops) + 1,
			Station:          best.Station,
			Price:            best.Station.Price,
			GallonsPurchased: tank,
			Cost:             fillCost(tank, best.Station.Price).Round(2),
		})
	}

	return stops, unserved
}
