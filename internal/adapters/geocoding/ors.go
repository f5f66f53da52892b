package geocoding

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

const DefaultORSURL = "https://api.openrouteservice.org"

type orsGeocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// ORSGeocoder resolves places with the OpenRouteService /geocode/search endpoint,
// restricted to the US.
type ORSGeocoder struct {
	client  httpx.Doer
	apiKey  string
	baseURL string
	retry   httpx.RetryPolicy
}

func NewORSGeocoder(apiKey, baseURL string, client httpx.Doer) (*ORSGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if baseURL == "" {
		baseURL = DefaultORSURL
	}
	if client == nil {
		client = httpx.NewClient(10 * time.Second)
	}

	return &ORSGeocoder{
		client:  client,
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		retry:   httpx.DefaultRetryPolicy,
	}, nil
}

func (o *ORSGeocoder) newRequest(ctx context.Context, endpoint, text string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("text", text)
	q.Set("boundary.country", "US")
	q.Set("size", "1")
	req.URL.RawQuery = q.Encode()
	return req, nil
}

func (o *ORSGeocoder) Geocode(ctx context.Context, place string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := normalize(place)
	if norm == "" {
		return domain.Coordinates{}, errors.New("ors geocode: place must be non-empty")
	}

	endpoint := o.baseURL + "/geocode/search"
	resp, err := httpx.DoWithRetry(ctx, o.client, o.retry, func() (*http.Request, error) {
		return o.newRequest(ctx, endpoint, norm)
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("ors geocode %q: execute request: %w", norm, err)
	}
	defer resp.Body.Close()

	var decoded orsGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("ors geocode %q: decode response: %w", norm, err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("ors geocode %q: %w", norm, ports.ErrNotFound)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("ors geocode %q: invalid coordinate format", norm)
	}

	return domain.Coordinates{Lon: coords[0], Lat: coords[1]}, nil
}
