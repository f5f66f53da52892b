package domain

import (
	"fmt"
	"math"
)

// Fixed vehicle characteristics used for a single plan.
type VehicleProfile struct {
	RangeMiles     float64
	MilesPerGallon float64
}

// DefaultVehicle is the deployment profile: 500 miles per tank at 10 mpg.
var DefaultVehicle = VehicleProfile{RangeMiles: 500, MilesPerGallon: 10}

// TankCapacityGallons is the fuel needed to cover the full range.
func (v VehicleProfile) TankCapacityGallons() float64 {
	return v.RangeMiles / v.MilesPerGallon
}

// GallonsFor returns the fuel burned over the given distance.
func (v VehicleProfile) GallonsFor(miles float64) float64 {
	return miles / v.MilesPerGallon
}

func (v VehicleProfile) Validate() error {
	if !(v.RangeMiles > 0) || math.IsInf(v.RangeMiles, 0) {
		return fmt.Errorf("vehicle profile: range_miles must be positive, got %v: %w", v.RangeMiles, ErrInvalidInput)
	}
	if !(v.MilesPerGallon > 0) || math.IsInf(v.MilesPerGallon, 0) {
		return fmt.Errorf("vehicle profile: miles_per_gallon must be positive, got %v: %w", v.MilesPerGallon, ErrInvalidInput)
	}
	return nil
}
