package dto

import (
	"fuel-route-service/internal/domain"
	"math"
)

type GeoJSONLineString struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

type RouteResponse struct {
	Start         string            `json:"start"`
	Finish        string            `json:"finish"`
	DistanceMiles float64           `json:"distance_miles"`
	DurationHours float64           `json:"duration_hours"`
	Geometry      GeoJSONLineString `json:"geometry"`
}

type FuelStopResponse struct {
	StopNumber       int     `json:"stop_number"`
	StationName      string  `json:"station_name"`
	Address          string  `json:"address"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	Price            float64 `json:"price"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	GallonsPurchased float64 `json:"gallons_purchased"`
	Cost             float64 `json:"cost"`
	Note             string  `json:"note,omitempty"`
}

type SummaryResponse struct {
	TotalDistanceMiles    float64 `json:"total_distance_miles"`
	TotalGallonsNeeded    float64 `json:"total_gallons_needed"`
	TotalFuelCost         float64 `json:"total_fuel_cost"`
	NumberOfStops         int     `json:"number_of_stops"`
	AveragePricePerGallon float64 `json:"average_price_per_gallon"`
	Note                  string  `json:"note,omitempty"`
}

type UnservedStopResponse struct {
	TargetMiles float64  `json:"target_miles"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Reason      string   `json:"reason"`
}

type OptimalRouteResponse struct {
	Route         RouteResponse          `json:"route"`
	FuelStops     []FuelStopResponse     `json:"fuel_stops"`
	Summary       SummaryResponse        `json:"summary"`
	UnservedStops []UnservedStopResponse `json:"unserved_stops,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// NewOptimalRouteResponse maps a plan onto the public JSON shape.
// Distances, gallons and money are rounded to cents; station prices are passed through.
func NewOptimalRouteResponse(start, finish string, plan *domain.TripPlan) OptimalRouteResponse {
	coords := make([][]float64, 0, len(plan.Route.Points))
	for _, p := range plan.Route.Points {
		coords = append(coords, p.CoordsToList())
	}

	res := OptimalRouteResponse{
		Route: RouteResponse{
			Start:         start,
			Finish:        finish,
			DistanceMiles: round2(plan.Route.DistanceMiles),
			DurationHours: round2(plan.Route.DurationSeconds / 3600),
			Geometry:      GeoJSONLineString{Type: "LineString", Coordinates: coords},
		},
		FuelStops: make([]FuelStopResponse, 0, len(plan.FuelStops)),
		Summary: SummaryResponse{
			TotalDistanceMiles:    round2(plan.Summary.TotalDistanceMiles),
			TotalGallonsNeeded:    round2(plan.Summary.TotalGallonsNeeded),
			TotalFuelCost:         plan.Summary.TotalFuelCost.Round(2).InexactFloat64(),
			NumberOfStops:         plan.Summary.NumberOfStops,
			AveragePricePerGallon: plan.Summary.AveragePricePerGallon.Round(2).InexactFloat64(),
			Note:                  plan.Summary.Note,
		},
	}

	for _, s := range plan.FuelStops {
		stop := FuelStopResponse{
			StopNumber:       s.StopNumber,
			StationName:      s.Station.Name,
			Address:          s.Station.Address,
			City:             s.Station.City,
			State:            s.Station.State,
			Price:            s.Price.InexactFloat64(),
			GallonsPurchased: round2(s.GallonsPurchased),
			Cost:             s.Cost.Round(2).InexactFloat64(),
			Note:             s.Note,
		}
		if c := s.Station.Coordinates; c != nil {
			stop.Latitude = c.Lat
			stop.Longitude = c.Lon
		}
		res.FuelStops = append(res.FuelStops, stop)
	}

	for _, u := range plan.Unserved {
		us := UnservedStopResponse{TargetMiles: round2(u.TargetMiles), Reason: u.Reason}
		if u.Coordinates != nil {
			lat, lon := u.Coordinates.Lat, u.Coordinates.Lon
			us.Latitude, us.Longitude = &lat, &lon
		}
		res.UnservedStops = append(res.UnservedStops, us)
	}

	return res
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
