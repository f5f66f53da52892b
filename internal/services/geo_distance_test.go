package services

import (
	"fuel-route-service/internal/domain"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	dallas      = domain.Coordinates{Lon: -96.7970, Lat: 32.7767}
	houston     = domain.Coordinates{Lon: -95.3698, Lat: 29.7604}
	austin      = domain.Coordinates{Lon: -97.7431, Lat: 30.2672}
	oklahomaCty = domain.Coordinates{Lon: -97.5164, Lat: 35.4676}
)

func TestGreatCircleMiles_Identity(t *testing.T) {
	for _, c := range []domain.Coordinates{dallas, houston, {Lon: 0, Lat: 90}, {Lon: 180, Lat: -90}} {
		assert.Equal(t, 0.0, GreatCircleMiles(c, c))
	}
}

func TestGreatCircleMiles_Symmetry(t *testing.T) {
	assert.InDelta(t, GreatCircleMiles(dallas, houston), GreatCircleMiles(houston, dallas), 1e-9)
	assert.InDelta(t, GreatCircleMiles(austin, oklahomaCty), GreatCircleMiles(oklahomaCty, austin), 1e-9)
}

func TestGreatCircleMiles_KnownDistance(t *testing.T) {
	// Dallas to Houston is roughly 225 miles as the crow flies.
	assert.InDelta(t, 225, GreatCircleMiles(dallas, houston), 5)
}

func TestGreatCircleMiles_TriangleInequality(t *testing.T) {
	points := []domain.Coordinates{dallas, houston, austin, oklahomaCty}
	for _, a := range points {
		for _, b := range points {
			for _, c := range points {
				ab := GreatCircleMiles(a, b)
				bc := GreatCircleMiles(b, c)
				ac := GreatCircleMiles(a, c)
				assert.LessOrEqual(t, ac, ab+bc+1e-9)
			}
		}
	}
}

func TestGreatCircleMiles_Antipodal(t *testing.T) {
	d := GreatCircleMiles(domain.Coordinates{Lon: 0, Lat: 0}, domain.Coordinates{Lon: 180, Lat: 0})
	assert.False(t, math.IsNaN(d))
	assert.InDelta(t, math.Pi*EarthRadiusMiles, d, 1e-6)
}

func TestGreatCircleMiles_NaNPropagates(t *testing.T) {
	d := GreatCircleMiles(domain.Coordinates{Lon: math.NaN(), Lat: 0}, dallas)
	assert.True(t, math.IsNaN(d))
}
