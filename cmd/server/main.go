package main

import (
	"context"
	"errors"
	"fuel-route-service/internal/api"
	"fuel-route-service/internal/bootstrap"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/services"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (SQL store, cache, Nominatim/ORS, OSRM) behind ports
// and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load(config.Get("CONFIG_FILE", ""))
	if err != nil {
		log.Fatal(err)
	}

	logger, err := obs.NewLogger(cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	obs.SetLogger(logger)
	defer func() { _ = logger.Sync() }()

	if envErr != nil {
		logger.Info("no .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := obs.L()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	// Load the catalog once before serving; an empty table still serves with default pricing.
	catalog := services.NewCatalogSnapshot(nil)
	refresher := services.NewCatalogRefresher(store.Stations, catalog, cfg.CatalogRefreshInterval)
	if err := refresher.Refresh(ctx); err != nil {
		return err
	}
	if catalog.Load().Len() == 0 {
		logger.Warn("station catalog is empty; run `stationtool load` to import fuel prices")
	}
	refresher.Start(ctx)
	defer refresher.Stop()

	geocoder, err := bootstrap.NewGeocoder(cfg, store.Cache)
	if err != nil {
		return err
	}

	planner, err := bootstrap.NewFuelPlanner(cfg)
	if err != nil {
		return err
	}

	trips := &services.TripPlanner{
		Geocoder: geocoder,
		Routes:   bootstrap.NewRouteProvider(cfg, store.Cache),
		Catalog:  catalog,
		Planner:  planner,
	}

	// Timeouts are tuned for cold-cache planning (geocoding plus routing latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(trips, catalog),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
