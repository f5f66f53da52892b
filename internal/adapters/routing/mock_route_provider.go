package routing

import (
	"context"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// MockRoute registers a canned route between two coordinates.
type MockRoute struct {
	From, To domain.Coordinates
	Route    *domain.Route
}

// MockRouteProvider serves canned routes; unknown pairs report ports.ErrNotFound.
type MockRouteProvider struct {
	m map[string]*domain.Route
}

func NewMockRouteProvider(routes []MockRoute) *MockRouteProvider {
	m := make(map[string]*domain.Route, len(routes))
	for _, r := range routes {
		m[CacheKey(r.From, r.To)] = r.Route
	}
	return &MockRouteProvider{m: m}
}

func (p *MockRouteProvider) Route(_ context.Context, from, to domain.Coordinates) (*domain.Route, error) {
	r, ok := p.m[CacheKey(from, to)]
	if !ok {
		return nil, fmt.Errorf("mock route %v -> %v: %w", from, to, ports.ErrNotFound)
	}
	return r, nil
}
