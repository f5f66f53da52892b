package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"fuel-route-service/internal/platform/db"
)

// InitSchema creates the station catalog and cache tables for the given dialect.
func InitSchema(ctx context.Context, conn *sql.DB, dialect db.Dialect) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range schemaStatements(dialect) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec %s statement #%d: %w", dialect, i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

func schemaStatements(dialect db.Dialect) []string {
	switch dialect {
	case db.Postgres:
		return []string{
			`
			CREATE TABLE IF NOT EXISTS fuel_stations (
				id BIGSERIAL PRIMARY KEY,
				opis_id BIGINT NOT NULL,
				name VARCHAR(255) NOT NULL,
				address VARCHAR(255) NOT NULL,
				city VARCHAR(100) NOT NULL,
				state VARCHAR(2) NOT NULL,
				rack_id BIGINT NOT NULL,
				retail_price NUMERIC(6, 3) NOT NULL,
				latitude DOUBLE PRECISION,
				longitude DOUBLE PRECISION
			);
			`,
			`CREATE INDEX IF NOT EXISTS idx_fuel_stations_state ON fuel_stations(state);`,
			`CREATE INDEX IF NOT EXISTS idx_fuel_stations_retail_price ON fuel_stations(retail_price);`,
			`
			CREATE TABLE IF NOT EXISTS kv_cache (
				cache_key TEXT PRIMARY KEY,
				value BYTEA NOT NULL,
				expires_at BIGINT NOT NULL
			);
			`,
		}
	case db.MySQL:
		// MySQL has no CREATE INDEX IF NOT EXISTS; indexes live in the table definition.
		return []string{
			`
			CREATE TABLE IF NOT EXISTS fuel_stations (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				opis_id BIGINT NOT NULL,
				name VARCHAR(255) NOT NULL,
				address VARCHAR(255) NOT NULL,
				city VARCHAR(100) NOT NULL,
				state VARCHAR(2) NOT NULL,
				rack_id BIGINT NOT NULL,
				retail_price DECIMAL(6, 3) NOT NULL,
				latitude DOUBLE NULL,
				longitude DOUBLE NULL,
				INDEX idx_fuel_stations_state (state),
				INDEX idx_fuel_stations_retail_price (retail_price)
			);
			`,
			`
			CREATE TABLE IF NOT EXISTS kv_cache (
				cache_key VARCHAR(512) PRIMARY KEY,
				value LONGBLOB NOT NULL,
				expires_at BIGINT NOT NULL
			);
			`,
		}
	default:
		return []string{
			`
			CREATE TABLE IF NOT EXISTS fuel_stations (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				opis_id INTEGER NOT NULL,
				name TEXT NOT NULL,
				address TEXT NOT NULL,
				city TEXT NOT NULL,
				state TEXT NOT NULL,
				rack_id INTEGER NOT NULL,
				retail_price REAL NOT NULL,
				latitude REAL,
				longitude REAL
			);
			`,
			`CREATE INDEX IF NOT EXISTS idx_fuel_stations_state ON fuel_stations(state);`,
			`CREATE INDEX IF NOT EXISTS idx_fuel_stations_retail_price ON fuel_stations(retail_price);`,
			`
			CREATE TABLE IF NOT EXISTS kv_cache (
				cache_key TEXT PRIMARY KEY,
				value BLOB NOT NULL,
				expires_at INTEGER NOT NULL
			);
			`,
		}
	}
}
