package services

import (
	"context"
	"errors"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
	"strings"

	"golang.org/x/sync/errgroup"
)

var (
	ErrMissingLocation = errors.New("start and finish locations are required")
	ErrGeocodeFailed   = errors.New("could not geocode location")
	ErrRouteFailed     = errors.New("could not find route")
)

type PlanTripRequest struct {
	Start  string
	Finish string
}

// TripPlanner resolves both endpoints, fetches the route and plans fuel stops against
// the current catalog snapshot.
type TripPlanner struct {
	Geocoder ports.Geocoder
	Routes   ports.RouteProvider
	Catalog  *CatalogSnapshot
	Planner  *FuelPlanner
}

func (tp *TripPlanner) PlanTrip(ctx context.Context, req PlanTripRequest) (plan *domain.TripPlan, err error) {
	defer obs.Time(ctx, "services.PlanTrip")(&err)

	start := strings.TrimSpace(req.Start)
	finish := strings.TrimSpace(req.Finish)
	if start == "" || finish == "" {
		return nil, fmt.Errorf("plan trip: %w", ErrMissingLocation)
	}

	var from, to domain.Coordinates
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := tp.Geocoder.Geocode(gctx, start)
		if err != nil {
			return fmt.Errorf("plan trip: geocode %q: %w: %w", start, ErrGeocodeFailed, err)
		}
		from = c
		return nil
	})
	g.Go(func() error {
		c, err := tp.Geocoder.Geocode(gctx, finish)
		if err != nil {
			return fmt.Errorf("plan trip: geocode %q: %w: %w", finish, ErrGeocodeFailed, err)
		}
		to = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	route, err := tp.Routes.Route(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("plan trip: route %q -> %q: %w: %w", start, finish, ErrRouteFailed, err)
	}

	plan, err = tp.Planner.Plan(route, tp.Catalog.Load())
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}
	return plan, nil
}
