package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/httpx"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultOSRMURL = "https://router.project-osrm.org"
	MilesPerMeter  = 0.000621371
)

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// OSRMRouteProvider fetches driving routes from an OSRM server with full GeoJSON geometry.
type OSRMRouteProvider struct {
	client  httpx.Doer
	baseURL string
	retry   httpx.RetryPolicy
}

func NewOSRMRouteProvider(baseURL string, client httpx.Doer) *OSRMRouteProvider {
	if baseURL == "" {
		baseURL = DefaultOSRMURL
	}
	if client == nil {
		client = httpx.NewClient(30 * time.Second)
	}
	return &OSRMRouteProvider{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		retry:   httpx.DefaultRetryPolicy,
	}
}

func (o *OSRMRouteProvider) Route(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "osrm.Route")(&err)

	endpoint := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f",
		o.baseURL, origin.Lon, origin.Lat, destination.Lon, destination.Lat)

	resp, err := httpx.DoWithRetry(ctx, o.client, o.retry, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		q := req.URL.Query()
		q.Set("overview", "full")
		q.Set("geometries", "geojson")
		q.Set("steps", "true")
		req.URL.RawQuery = q.Encode()
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		// OSRM reports NoRoute and NoSegment as 400.
		var se *httpx.StatusError
		if errors.As(err, &se) && se.Code == http.StatusBadRequest {
			return nil, fmt.Errorf("osrm route: %s: %w", se.Body, ports.ErrNotFound)
		}
		return nil, fmt.Errorf("osrm route: execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("osrm route: decode response: %w", err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return nil, fmt.Errorf("osrm route: code %q: %w", decoded.Code, ports.ErrNotFound)
	}

	r := decoded.Routes[0]
	points := make([]domain.Coordinates, 0, len(r.Geometry.Coordinates))
	for i, c := range r.Geometry.Coordinates {
		if len(c) < 2 {
			return nil, fmt.Errorf("osrm route: invalid coordinate at index %d", i)
		}
		points = append(points, domain.Coordinates{Lon: c[0], Lat: c[1]})
	}

	return &domain.Route{
		DistanceMiles:   r.Distance * MilesPerMeter,
		DurationSeconds: r.Duration,
		Points:          points,
	}, nil
}
