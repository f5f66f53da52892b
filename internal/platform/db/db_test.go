package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	q := "SELECT a FROM t WHERE x = ? AND y = ?"
	assert.Equal(t, q, SQLite.Rebind(q))
	assert.Equal(t, q, MySQL.Rebind(q))
	assert.Equal(t, "SELECT a FROM t WHERE x = $1 AND y = $2", Postgres.Rebind(q))
}

func TestParseURL(t *testing.T) {
	driver, dsn, d, err := parseURL("sqlite://data/app.db")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", driver)
	assert.Equal(t, "data/app.db", dsn)
	assert.Equal(t, SQLite, d)

	driver, _, d, err = parseURL("postgres://u:p@localhost:5432/fuel")
	require.NoError(t, err)
	assert.Equal(t, "pgx", driver)
	assert.Equal(t, Postgres, d)

	driver, dsn, d, err = parseURL("mysql://u:p@localhost:3306/fuel")
	require.NoError(t, err)
	assert.Equal(t, "mysql", driver)
	assert.Equal(t, MySQL, d)
	assert.Contains(t, dsn, "u:p@tcp(localhost:3306)/fuel")
	assert.Contains(t, dsn, "parseTime=true")

	_, _, _, err = parseURL("mongodb://localhost")
	assert.Error(t, err)

	_, _, _, err = parseURL("mysql://u:p@localhost:3306")
	assert.Error(t, err)
}

func TestOpenSQLiteMemory(t *testing.T) {
	conn, d, err := Open("sqlite::memory:")
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, SQLite, d)
	require.NoError(t, conn.Ping())
}
