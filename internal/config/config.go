package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// Config is the runtime configuration, read from the environment and an optional
// YAML file named by CONFIG_FILE. Environment variables win over the file.
type Config struct {
	Port        string `mapstructure:"port"`
	DatabaseURL string `mapstructure:"database_url"`
	RedisURL    string `mapstructure:"redis_url"`
	LogFormat   string `mapstructure:"log_format"`

	Geocoder     string        `mapstructure:"geocoder"`
	ORSAPIKey    string        `mapstructure:"ors_api_key"`
	NominatimURL string        `mapstructure:"nominatim_url"`
	OSRMURL      string        `mapstructure:"osrm_url"`
	GeocodeTTL   time.Duration `mapstructure:"geocode_ttl"`
	RouteTTL     time.Duration `mapstructure:"route_ttl"`

	VehicleRangeMiles   float64 `mapstructure:"vehicle_range_miles"`
	VehicleMPG          float64 `mapstructure:"vehicle_mpg"`
	DefaultFuelPrice    string  `mapstructure:"default_fuel_price"`
	SearchRadiusMiles   float64 `mapstructure:"search_radius_miles"`
	FallbackRadiusMiles float64 `mapstructure:"fallback_radius_miles"`
	RouteSampling       string  `mapstructure:"route_sampling"`

	CatalogRefreshInterval time.Duration `mapstructure:"catalog_refresh_interval"`
	FuelCSVPath            string        `mapstructure:"fuel_csv_path"`
	GeocodeDelay           time.Duration `mapstructure:"geocode_delay"`
}

var defaults = map[string]any{
	"port":                     "8080",
	"database_url":             "sqlite://data/app.db",
	"redis_url":                "",
	"log_format":               "console",
	"geocoder":                 "nominatim",
	"ors_api_key":              "",
	"nominatim_url":            "https://nominatim.openstreetmap.org",
	"osrm_url":                 "https://router.project-osrm.org",
	"geocode_ttl":              "24h",
	"route_ttl":                "1h",
	"vehicle_range_miles":      500.0,
	"vehicle_mpg":              10.0,
	"default_fuel_price":       "3.50",
	"search_radius_miles":      50.0,
	"fallback_radius_miles":    100.0,
	"route_sampling":           "index",
	"catalog_refresh_interval": "0s",
	"fuel_csv_path":            "fuel_data.csv",
	"geocode_delay":            "1s",
}

// Load reads configuration. configFile may be empty; when set it must exist.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load config: read %q: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load config: unmarshal: %w", err)
	}

	cfg.Geocoder = strings.ToLower(strings.TrimSpace(cfg.Geocoder))
	cfg.RouteSampling = strings.ToLower(strings.TrimSpace(cfg.RouteSampling))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs error
	if c.VehicleRangeMiles <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("VEHICLE_RANGE_MILES must be positive, got %v", c.VehicleRangeMiles))
	}
	if c.VehicleMPG <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("VEHICLE_MPG must be positive, got %v", c.VehicleMPG))
	}
	if c.SearchRadiusMiles <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("SEARCH_RADIUS_MILES must be positive, got %v", c.SearchRadiusMiles))
	}
	if c.FallbackRadiusMiles < c.SearchRadiusMiles {
		errs = multierr.Append(errs, fmt.Errorf("FALLBACK_RADIUS_MILES must be at least SEARCH_RADIUS_MILES, got %v", c.FallbackRadiusMiles))
	}
	if p, err := c.FuelPrice(); err != nil {
		errs = multierr.Append(errs, err)
	} else if !p.IsPositive() {
		errs = multierr.Append(errs, fmt.Errorf("DEFAULT_FUEL_PRICE must be positive, got %s", p))
	}
	switch c.Geocoder {
	case "nominatim":
	case "ors":
		if strings.TrimSpace(c.ORSAPIKey) == "" {
			errs = multierr.Append(errs, errors.New("ORS_API_KEY is required when GEOCODER=ors"))
		}
	default:
		errs = multierr.Append(errs, fmt.Errorf("GEOCODER must be nominatim or ors, got %q", c.Geocoder))
	}
	switch c.RouteSampling {
	case "index", "arc_length":
	default:
		errs = multierr.Append(errs, fmt.Errorf("ROUTE_SAMPLING must be index or arc_length, got %q", c.RouteSampling))
	}
	if c.CatalogRefreshInterval < 0 {
		errs = multierr.Append(errs, fmt.Errorf("CATALOG_REFRESH_INTERVAL must not be negative, got %v", c.CatalogRefreshInterval))
	}

	if errs != nil {
		return fmt.Errorf("invalid config: %w", errs)
	}
	return nil
}

func (c *Config) FuelPrice() (decimal.Decimal, error) {
	p, err := decimal.NewFromString(strings.TrimSpace(c.DefaultFuelPrice))
	if err != nil {
		return decimal.Zero, fmt.Errorf("DEFAULT_FUEL_PRICE %q is not a number: %w", c.DefaultFuelPrice, err)
	}
	return p, nil
}

// Get returns the environment variable key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
