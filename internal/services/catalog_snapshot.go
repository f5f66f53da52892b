package services

import (
	"context"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// CatalogSnapshot holds the current station catalog. Readers load one pointer per
// request and never observe a partially replaced catalog.
type CatalogSnapshot struct {
	current atomic.Pointer[domain.Catalog]
}

func NewCatalogSnapshot(c *domain.Catalog) *CatalogSnapshot {
	s := &CatalogSnapshot{}
	s.Store(c)
	return s
}

// Load never returns nil; an unset snapshot reads as an empty catalog.
func (s *CatalogSnapshot) Load() *domain.Catalog {
	if c := s.current.Load(); c != nil {
		return c
	}
	return domain.NewCatalog(nil)
}

func (s *CatalogSnapshot) Store(c *domain.Catalog) {
	if c == nil {
		c = domain.NewCatalog(nil)
	}
	s.current.Store(c)
}

// CatalogRefresher reloads the snapshot from the station repository on an interval.
// A failed reload keeps serving the previous catalog.
type CatalogRefresher struct {
	repo     ports.StationRepository
	snapshot *CatalogSnapshot
	interval time.Duration

	mu      sync.Mutex
	stopCh  chan struct{}
	done    chan struct{}
	running bool
}

func NewCatalogRefresher(repo ports.StationRepository, snapshot *CatalogSnapshot, interval time.Duration) *CatalogRefresher {
	return &CatalogRefresher{
		repo:     repo,
		snapshot: snapshot,
		interval: interval,
	}
}

// Refresh loads every station and swaps the snapshot.
func (r *CatalogRefresher) Refresh(ctx context.Context) (err error) {
	defer obs.Time(ctx, "catalog.Refresh")(&err)

	stations, err := r.repo.ListStations(ctx)
	if err != nil {
		return fmt.Errorf("refresh catalog: list stations: %w", err)
	}

	catalog := domain.NewCatalog(stations)
	r.snapshot.Store(catalog)

	obs.L().Info("catalog refreshed",
		zap.Int("stations", catalog.Len()),
		zap.Int("located", len(catalog.Located())),
	)
	return nil
}

// Start begins background refreshes. It is a no-op when the interval is not positive
// or the refresher is already running.
func (r *CatalogRefresher) Start(ctx context.Context) {
	if r.interval <= 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true
	r.stopCh = make(chan struct{})
	r.done = make(chan struct{})

	obs.L().Info("catalog refresh started", zap.Duration("interval", r.interval))
	go r.loop(ctx, r.stopCh, r.done)
}

// Stop halts the background loop and waits for it to exit.
func (r *CatalogRefresher) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.stopCh)
	done := r.done
	r.mu.Unlock()

	<-done
	obs.L().Info("catalog refresh stopped")
}

func (r *CatalogRefresher) loop(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			refreshCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			if err := r.Refresh(refreshCtx); err != nil {
				obs.L().Warn("catalog refresh failed, keeping previous snapshot", zap.Error(err))
			}
			cancel()
		}
	}
}
