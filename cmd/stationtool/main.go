package main

import (
	"context"
	"fmt"
	"fuel-route-service/internal/adapters/repositories"
	"fuel-route-service/internal/bootstrap"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/services"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const usage = `usage: stationtool <command>

commands:
  init          create the schema
  load [csv]    replace the station catalog from the OPIS price export
                (defaults to FUEL_CSV_PATH)
  count         print the number of stations
  prune-cache   delete expired entries from the SQL lookup cache`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Args[1], os.Args[2:]); err != nil {
		logger.Fatal("stationtool failed", zap.String("command", os.Args[1]), zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, cmd string, args []string) error {
	logger := obs.L()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	switch cmd {
	case "init":
		logger.Info("schema ready", zap.String("dialect", store.Dialect.String()))
		return nil

	case "load":
		path := cfg.FuelCSVPath
		if len(args) > 0 {
			path = args[0]
		}

		rows, err := repositories.ParseFuelCSVFile(path)
		if err != nil {
			return err
		}
		logger.Info("parsed fuel csv", zap.String("path", path), zap.Int("rows", len(rows)))

		geocoder, err := bootstrap.NewGeocoder(cfg, store.Cache)
		if err != nil {
			return err
		}

		loader := &services.CatalogLoader{
			Repo:     store.Stations,
			Geocoder: geocoder,
			Delay:    cfg.GeocodeDelay,
		}
		stats, err := loader.Load(ctx, rows)
		if err != nil {
			return err
		}

		logger.Info("successfully loaded fuel stations",
			zap.Int("stations", stats.Stations),
			zap.Int("located", stats.Located),
			zap.Int("city_lookups", stats.CityLookups),
		)
		return nil

	case "count":
		n, err := store.Stations.CountStations(ctx)
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil

	case "prune-cache":
		n, err := store.SQLCache.DeleteExpired(ctx)
		if err != nil {
			return err
		}
		logger.Info("pruned expired cache entries", zap.Int64("deleted", n))
		return nil
	}

	return fmt.Errorf("unknown command %q\n%s", cmd, usage)
}
