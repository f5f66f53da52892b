package services

import (
	"fuel-route-service/internal/domain"

	"github.com/shopspring/decimal"
)

// AggregateTrip combines the initial fill, mid-route stops and the single-tank case
// into one plan.
//
// With mid-route stops the initial fill is a full tank. When a station is found near the
// origin it is inserted as stop 0; otherwise the catalog average (or the default price)
// is charged and no entry is added. Without mid-route stops only the fuel actually burned,
// distance / mpg, is charged.
func (p *FuelPlanner) AggregateTrip(
	route *domain.Route,
	stops []domain.FuelStop,
	unserved []domain.UnservedStop,
	catalog *domain.Catalog,
) *domain.TripPlan {
	totalMiles := route.DistanceMiles
	totalGallons := p.Vehicle.GallonsFor(totalMiles)
	tank := p.Vehicle.TankCapacityGallons()

	origin, _ := route.Origin()
	start, found := CheapestStation(p.locator().FindNearby(origin, catalog.Located()))
	fallbackPrice := catalog.AveragePrice(p.defaultPrice())

	fuelStops := make([]domain.FuelStop, 0, len(stops)+1)
	var totalCost decimal.Decimal

	if len(stops) > 0 {
		refillCost := decimal.Zero
		for _, s := range stops {
			refillCost = refillCost.Add(s.Cost)
		}

		var initialCost decimal.Decimal
		if found {
			initialCost = fillCost(tank, start.Station.Price)
			fuelStops = append(fuelStops, initialFill(start, tank, initialCost))
		} else {
			initialCost = fillCost(tank, fallbackPrice)
		}

		for i, s := range stops {
			s.StopNumber = i + 1
			fuelStops = append(fuelStops, s)
		}

		totalCost = refillCost.Add(initialCost)
	} else {
		if found {
			totalCost = fillCost(totalGallons, start.Station.Price)
			fuelStops = append(fuelStops, initialFill(start, totalGallons, totalCost))
		} else {
			totalCost = fillCost(totalGallons, fallbackPrice)
		}
	}

	summary := domain.TripSummary{
		TotalDistanceMiles:    totalMiles,
		TotalGallonsNeeded:    totalGallons,
		TotalFuelCost:         totalCost.Round(2),
		NumberOfStops:         len(fuelStops),
		AveragePricePerGallon: decimal.Zero,
	}
	if totalGallons > 0 {
		summary.AveragePricePerGallon = totalCost.Div(decimal.NewFromFloat(totalGallons)).Round(2)
	}

	switch {
	case len(unserved) > 0:
		summary.Note = domain.UnservedStopsNote
	case len(fuelStops) == 0:
		summary.Note = domain.NoStopsNote
	case len(fuelStops) == 1 && fuelStops[0].InitialFill:
		summary.Note = domain.OnlyInitialFillNote
	}

	return &domain.TripPlan{
		Route:     route,
		FuelStops: fuelStops,
		Unserved:  unserved,
		Summary:   summary,
	}
}

func initialFill(start NearbyStation, gallons float64, cost decimal.Decimal) domain.FuelStop {
	return domain.FuelStop{
		StopNumber:       0,
		Station:          start.Station,
		Price:            start.Station.Price,
		GallonsPurchased: gallons,
		Cost:             cost.Round(2),
		Note:             domain.InitialFillNote,
		InitialFill:      true,
	}
}
