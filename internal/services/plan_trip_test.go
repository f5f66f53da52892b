package services

import (
	"context"
	"errors"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestTripPlanner(geo *mockGeocoder, routes *mockRouteProvider, stations []domain.Station) *TripPlanner {
	return &TripPlanner{
		Geocoder: geo,
		Routes:   routes,
		Catalog:  NewCatalogSnapshot(domain.NewCatalog(stations)),
		Planner:  NewFuelPlanner(domain.DefaultVehicle),
	}
}

func TestPlanTrip_Success(t *testing.T) {
	route := meridianRoute(4, 100)
	from, to := route.Points[0], route.Points[3]

	geo := &mockGeocoder{}
	geo.On("Geocode", mock.Anything, "Dallas, TX").Return(from, nil).Once()
	geo.On("Geocode", mock.Anything, "Lubbock, TX").Return(to, nil).Once()

	routes := &mockRouteProvider{}
	routes.On("Route", mock.Anything, from, to).Return(route, nil).Once()

	tp := newTestTripPlanner(geo, routes, []domain.Station{stationAt(1, from, 1, "3.00")})

	plan, err := tp.PlanTrip(context.Background(), PlanTripRequest{Start: " Dallas, TX ", Finish: "Lubbock, TX"})
	require.NoError(t, err)
	require.Len(t, plan.FuelStops, 1)
	assertMoney(t, "90.00", plan.Summary.TotalFuelCost)

	geo.AssertExpectations(t)
	routes.AssertExpectations(t)
}

func TestPlanTrip_MissingLocation(t *testing.T) {
	tp := newTestTripPlanner(&mockGeocoder{}, &mockRouteProvider{}, nil)

	for _, req := range []PlanTripRequest{{Start: "Dallas, TX"}, {Finish: "Austin, TX"}, {Start: "  ", Finish: "Austin, TX"}} {
		_, err := tp.PlanTrip(context.Background(), req)
		assert.ErrorIs(t, err, ErrMissingLocation)
	}
}

func TestPlanTrip_GeocodeFailure(t *testing.T) {
	geo := &mockGeocoder{}
	geo.On("Geocode", mock.Anything, "Dallas, TX").Return(dallas, nil).Maybe()
	geo.On("Geocode", mock.Anything, "Nowhere").Return(domain.Coordinates{}, ports.ErrNotFound)

	tp := newTestTripPlanner(geo, &mockRouteProvider{}, nil)

	_, err := tp.PlanTrip(context.Background(), PlanTripRequest{Start: "Dallas, TX", Finish: "Nowhere"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeocodeFailed)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPlanTrip_RouteFailure(t *testing.T) {
	geo := &mockGeocoder{}
	geo.On("Geocode", mock.Anything, "Dallas, TX").Return(dallas, nil)
	geo.On("Geocode", mock.Anything, "Houston, TX").Return(houston, nil)

	routes := &mockRouteProvider{}
	routes.On("Route", mock.Anything, dallas, houston).Return(nil, errors.New("upstream 503"))

	tp := newTestTripPlanner(geo, routes, nil)

	_, err := tp.PlanTrip(context.Background(), PlanTripRequest{Start: "Dallas, TX", Finish: "Houston, TX"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRouteFailed)
	assert.NotErrorIs(t, err, ErrGeocodeFailed)
}

func TestPlanTrip_DegenerateRouteIsInvalidInput(t *testing.T) {
	geo := &mockGeocoder{}
	geo.On("Geocode", mock.Anything, "A").Return(dallas, nil)
	geo.On("Geocode", mock.Anything, "B").Return(dallas, nil)

	routes := &mockRouteProvider{}
	routes.On("Route", mock.Anything, dallas, dallas).
		Return(&domain.Route{DistanceMiles: 0, Points: []domain.Coordinates{dallas, dallas}}, nil)

	tp := newTestTripPlanner(geo, routes, nil)

	_, err := tp.PlanTrip(context.Background(), PlanTripRequest{Start: "A", Finish: "B"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
