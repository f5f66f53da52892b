package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/db"
	"fuel-route-service/internal/platform/obs"
	"strings"
)

// SQL-backed implementation of the StationRepository port.
// The same queries run on SQLite, Postgres and MySQL; placeholders are rebound per dialect.
type SQLStationRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLStationRepository(conn *sql.DB, dialect db.Dialect) *SQLStationRepository {
	return &SQLStationRepository{DB: conn, Dialect: dialect}
}

// Return every station ordered by id, including those without coordinates.
func (s *SQLStationRepository) ListStations(ctx context.Context) (_ []domain.Station, err error) {
	defer obs.Time(ctx, "stations.List")(&err)

	if s.DB == nil {
		return nil, errors.New("station repository: DB is nil")
	}

	query := `
	SELECT
		id,
		opis_id,
		name,
		address,
		city,
		state,
		rack_id,
		retail_price,
		latitude,
		longitude
	FROM fuel_stations
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stations: query fuel_stations table: %w", err)
	}
	defer rows.Close()

	stations := make([]domain.Station, 0, 1024)
	for rows.Next() {
		var st domain.Station
		var lat, lon sql.NullFloat64
		err := rows.Scan(
			&st.ID,
			&st.OpisID,
			&st.Name,
			&st.Address,
			&st.City,
			&st.State,
			&st.RackID,
			&st.Price,
			&lat,
			&lon,
		)
		if err != nil {
			return nil, fmt.Errorf("list stations: scan row: %w", err)
		}
		if lat.Valid && lon.Valid {
			st.Coordinates = &domain.Coordinates{Lon: lon.Float64, Lat: lat.Float64}
		}
		stations = append(stations, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stations: row iteration: %w", err)
	}

	return stations, nil
}

func (s *SQLStationRepository) ClearStations(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("station repository: DB is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM fuel_stations;`); err != nil {
		return fmt.Errorf("clear stations: %w", err)
	}
	return nil
}

// Insert a batch of stations in one transaction with a single multi-row INSERT.
func (s *SQLStationRepository) InsertStations(ctx context.Context, stations []domain.Station) (err error) {
	defer obs.Time(ctx, "stations.Insert")(&err)

	if s.DB == nil {
		return errors.New("station repository: DB is nil")
	}
	if len(stations) == 0 {
		return nil
	}

	const cols = 9
	ph := make([]string, 0, len(stations))
	args := make([]any, 0, len(stations)*cols)
	for i, st := range stations {
		if strings.TrimSpace(st.Name) == "" {
			return fmt.Errorf("insert stations: row %d: name cannot be empty", i+1)
		}

		var lat, lon sql.NullFloat64
		if st.Coordinates != nil {
			lat = sql.NullFloat64{Float64: st.Coordinates.Lat, Valid: true}
			lon = sql.NullFloat64{Float64: st.Coordinates.Lon, Valid: true}
		}

		ph = append(ph, "(?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			st.OpisID,
			st.Name,
			st.Address,
			strings.TrimSpace(st.City),
			st.State,
			st.RackID,
			st.Price,
			lat,
			lon,
		)
	}

	query := s.Dialect.Rebind(fmt.Sprintf(`
	INSERT INTO fuel_stations (
		opis_id,
		name,
		address,
		city,
		state,
		rack_id,
		retail_price,
		latitude,
		longitude
	)
	VALUES %s;
	`, strings.Join(ph, ", ")))

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert stations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert stations: exec batch of %d: %w", len(stations), err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert stations: commit tx: %w", err)
	}

	return nil
}

func (s *SQLStationRepository) CountStations(ctx context.Context) (int, error) {
	if s.DB == nil {
		return 0, errors.New("station repository: DB is nil")
	}

	var n int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM fuel_stations;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stations: %w", err)
	}
	return n, nil
}
