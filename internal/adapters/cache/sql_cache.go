package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"fuel-route-service/internal/platform/db"
	"fuel-route-service/internal/platform/obs"
	"strings"
	"time"
)

// SQLCache is a key-value cache stored in the kv_cache table.
// Expired rows read as misses and are removed by DeleteExpired.
type SQLCache struct {
	DB      *sql.DB
	Dialect db.Dialect

	now func() time.Time
}

func NewSQLCache(conn *sql.DB, dialect db.Dialect) *SQLCache {
	return &SQLCache{DB: conn, Dialect: dialect, now: time.Now}
}

func (s *SQLCache) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// Fetch a fresh value for key.
func (s *SQLCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "cache.sql.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("sql cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, nil
	}

	q := s.Dialect.Rebind(`
	SELECT value
	FROM kv_cache
	WHERE cache_key = ? AND expires_at > ?;
	`)

	var value []byte
	err = s.DB.QueryRowContext(ctx, q, key, s.clock().Unix()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get sql cache key=%q: %w", key, err)
	}

	return value, true, nil
}

// Store value under key until ttl elapses, replacing any previous entry.
func (s *SQLCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "cache.sql.Set")(&err)

	if s.DB == nil {
		return errors.New("sql cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert sql cache: empty key")
	}
	if ttl <= 0 {
		return fmt.Errorf("insert sql cache key=%q: ttl must be positive", key)
	}

	var q string
	switch s.Dialect {
	case db.MySQL:
		q = `
		INSERT INTO kv_cache (cache_key, value, expires_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE
			value = VALUES(value),
			expires_at = VALUES(expires_at);
		`
	default:
		q = `
		INSERT INTO kv_cache (cache_key, value, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT (cache_key) DO UPDATE
		SET value = excluded.value,
			expires_at = excluded.expires_at;
		`
	}

	expires := s.clock().Add(ttl).Unix()
	if _, err := s.DB.ExecContext(ctx, s.Dialect.Rebind(q), key, value, expires); err != nil {
		return fmt.Errorf("insert sql cache key=%q: %w", key, err)
	}

	return nil
}

// DeleteExpired removes stale rows and reports how many were dropped.
func (s *SQLCache) DeleteExpired(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("sql cache: db is nil")
	}

	res, err := s.DB.ExecContext(ctx, s.Dialect.Rebind(`DELETE FROM kv_cache WHERE expires_at <= ?;`), s.clock().Unix())
	if err != nil {
		return 0, fmt.Errorf("delete expired sql cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired sql cache: rows affected: %w", err)
	}
	return n, nil
}
