package services

import (
	"fmt"
	"fuel-route-service/internal/domain"
	"math"

	"github.com/shopspring/decimal"
)

// DefaultFuelPrice prices fuel when the catalog is empty.
var DefaultFuelPrice = decimal.RequireFromString("3.50")

// FuelPlanner computes a minimum-cost refueling plan over an already fetched route
// and catalog snapshot. It performs no I/O and holds no mutable state, so a single
// planner is safe for concurrent use.
type FuelPlanner struct {
	Vehicle      domain.VehicleProfile
	Locator      StationLocator
	Sampler      RouteSampler
	DefaultPrice decimal.Decimal
}

func NewFuelPlanner(vehicle domain.VehicleProfile) *FuelPlanner {
	return &FuelPlanner{
		Vehicle:      vehicle,
		Locator:      DefaultStationLocator,
		Sampler:      IndexSampler{},
		DefaultPrice: DefaultFuelPrice,
	}
}

// Plan validates the input, selects mid-route stops and aggregates trip cost.
// Missing stations and an empty catalog degrade to average or default pricing;
// only invalid input returns an error (wrapping domain.ErrInvalidInput).
func (p *FuelPlanner) Plan(route *domain.Route, catalog *domain.Catalog) (*domain.TripPlan, error) {
	if err := ValidateRoute(route); err != nil {
		return nil, fmt.Errorf("plan fuel stops: %w", err)
	}
	if err := p.Vehicle.Validate(); err != nil {
		return nil, fmt.Errorf("plan fuel stops: %w", err)
	}

	stops, unserved := p.FindOptimalFuelStops(route, catalog)
	return p.AggregateTrip(route, stops, unserved, catalog), nil
}

// ValidateRoute rejects routes the planner cannot reason about.
func ValidateRoute(route *domain.Route) error {
	if route == nil {
		return fmt.Errorf("validate route: route is missing: %w", domain.ErrInvalidInput)
	}
	if len(route.Points) < 2 {
		return fmt.Errorf("validate route: need at least 2 points, got %d: %w", len(route.Points), domain.ErrInvalidInput)
	}
	if !(route.DistanceMiles > 0) || math.IsInf(route.DistanceMiles, 0) {
		return fmt.Errorf("validate route: distance must be positive, got %v: %w", route.DistanceMiles, domain.ErrInvalidInput)
	}
	if route.DurationSeconds < 0 {
		return fmt.Errorf("validate route: duration must not be negative, got %v: %w", route.DurationSeconds, domain.ErrInvalidInput)
	}
	return nil
}

func (p *FuelPlanner) locator() StationLocator {
	if p.Locator.PrimaryRadiusMiles <= 0 && p.Locator.FallbackRadiusMiles <= 0 {
		return DefaultStationLocator
	}
	return p.Locator
}

func (p *FuelPlanner) sampler() RouteSampler {
	if p.Sampler == nil {
		return IndexSampler{}
	}
	return p.Sampler
}

func (p *FuelPlanner) defaultPrice() decimal.Decimal {
	if p.DefaultPrice.IsZero() {
		return DefaultFuelPrice
	}
	return p.DefaultPrice
}

// fillCost is gallons * price, unrounded.
func fillCost(gallons float64, price decimal.Decimal) decimal.Decimal {
	return decimal.NewFromFloat(gallons).Mul(price)
}
