package domain

import "github.com/shopspring/decimal"

const (
	InitialFillNote     = "Initial fill-up before starting journey"
	NoStopsNote         = "No fuel stops needed - vehicle can reach destination on single tank"
	OnlyInitialFillNote = "Only initial fill-up needed - no refueling stops required"
	UnservedStopsNote   = "Some refueling stops could not be matched to a station - see unserved stops"
)

// Represents one planned refueling event.
// StopNumber 0 is the initial fill at the origin; mid-route stops are numbered 1..N
// in ascending distance along the route.
type FuelStop struct {
	StopNumber       int
	Station          Station
	Price            decimal.Decimal
	GallonsPurchased float64
	Cost             decimal.Decimal
	Note             string
	InitialFill      bool
}

// Records a mid-route refueling point that could not be served,
// either because the target distance did not resolve to a route point
// or because no station was found even after the search was widened.
type UnservedStop struct {
	TargetMiles float64
	Coordinates *Coordinates
	Reason      string
}

type TripSummary struct {
	TotalDistanceMiles    float64
	TotalGallonsNeeded    float64
	TotalFuelCost         decimal.Decimal
	NumberOfStops         int
	AveragePricePerGallon decimal.Decimal
	Note                  string
}

// Represents the full refueling plan for one request.
// It is immutable planning data and has no lifecycle beyond the response.
type TripPlan struct {
	Route     *Route
	FuelStops []FuelStop
	Unserved  []UnservedStop
	Summary   TripSummary
}
