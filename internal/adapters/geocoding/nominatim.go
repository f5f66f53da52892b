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
	"strconv"
	"strings"
	"time"
)

const (
	DefaultNominatimURL = "https://nominatim.openstreetmap.org"
	userAgent           = "FuelRouteService/1.0"
)

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NominatimGeocoder resolves US place names through the OpenStreetMap Nominatim API.
// Queries are suffixed with ", USA" and limited to the top match.
type NominatimGeocoder struct {
	client  httpx.Doer
	baseURL string
	retry   httpx.RetryPolicy
}

func NewNominatimGeocoder(baseURL string, client httpx.Doer) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	if client == nil {
		client = httpx.NewClient(10 * time.Second)
	}
	return &NominatimGeocoder{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		retry:   httpx.DefaultRetryPolicy,
	}
}

func (n *NominatimGeocoder) Geocode(ctx context.Context, place string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	norm := normalize(place)
	if norm == "" {
		return domain.Coordinates{}, errors.New("nominatim geocode: place must be non-empty")
	}

	endpoint := n.baseURL + "/search"
	resp, err := httpx.DoWithRetry(ctx, n.client, n.retry, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		q := req.URL.Query()
		q.Set("q", norm+", USA")
		q.Set("format", "json")
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()

		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode %q: execute request: %w", norm, err)
	}
	defer resp.Body.Close()

	var decoded []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode %q: decode response: %w", norm, err)
	}

	if len(decoded) == 0 {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode %q: %w", norm, ports.ErrNotFound)
	}

	lat, err := strconv.ParseFloat(decoded[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode %q: parse lat %q: %w", norm, decoded[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(decoded[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode %q: parse lon %q: %w", norm, decoded[0].Lon, err)
	}

	return domain.Coordinates{Lon: lon, Lat: lat}, nil
}

// normalize collapses whitespace so equivalent inputs share cache keys.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
