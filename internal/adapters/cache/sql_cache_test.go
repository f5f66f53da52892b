package cache

import (
	"context"
	"fuel-route-service/internal/adapters/repositories"
	"fuel-route-service/internal/platform/db"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLCache(t *testing.T) (*SQLCache, *time.Time) {
	t.Helper()

	conn, dialect, err := db.Open("sqlite::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, repositories.InitSchema(context.Background(), conn, dialect))

	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	c := NewSQLCache(conn, dialect)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestSQLCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestSQLCache(t)

	_, ok, err := c.Get(ctx, "geocode_Dallas, TX")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "geocode_Dallas, TX", []byte(`[-96.797,32.7767]`), time.Hour))

	v, ok, err := c.Get(ctx, "geocode_Dallas, TX")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[-96.797,32.7767]`, string(v))
}

func TestSQLCache_Overwrite(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestSQLCache(t)

	require.NoError(t, c.Set(ctx, "k", []byte("a"), time.Hour))
	require.NoError(t, c.Set(ctx, "k", []byte("b"), time.Hour))

	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", string(v))
}

func TestSQLCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c, now := newTestSQLCache(t)

	require.NoError(t, c.Set(ctx, "short", []byte("x"), time.Minute))
	require.NoError(t, c.Set(ctx, "long", []byte("y"), time.Hour))

	*now = now.Add(2 * time.Minute)

	_, ok, err := c.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = c.Get(ctx, "long")
	require.NoError(t, err)
	assert.True(t, ok)

	n, err := c.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSQLCache_RejectsBadInput(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestSQLCache(t)

	assert.Error(t, c.Set(ctx, " ", []byte("x"), time.Hour))
	assert.Error(t, c.Set(ctx, "k", []byte("x"), 0))
}
