package db

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	conn, err := Open(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	UseDB(conn, DriverSQLite)
	t.Cleanup(func() { conn.Close() })
}

func TestRebind(t *testing.T) {
	t.Cleanup(func() { Driver = DriverSQLite })

	Driver = DriverSQLite
	assert.Equal(t, "SELECT * FROM t WHERE a = ? AND b = ?", Rebind("SELECT * FROM t WHERE a = ? AND b = ?"))

	Driver = DriverPostgres
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2", Rebind("SELECT * FROM t WHERE a = ? AND b = ?"))
	assert.Equal(t, "SELECT '?' FROM t WHERE a = $1", Rebind("SELECT '?' FROM t WHERE a = ?"))
}

func TestMigrate_Idempotent(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx))
	require.NoError(t, Migrate(ctx))

	for _, col := range []string{"processing"} {
		ok, err := columnExists(ctx, "order_products", col)
		require.NoError(t, err)
		assert.True(t, ok, col)
	}
}

func TestAddColumnIfMissing_OldSchema(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	// order_products as it looked before the processing flag existed
	_, err := DB.ExecContext(ctx, `CREATE TABLE order_products (id INTEGER PRIMARY KEY, qty INTEGER)`)
	require.NoError(t, err)

	require.NoError(t, AddColumnIfMissing(ctx, "order_products", "processing", "INTEGER NOT NULL DEFAULT 0"))
	require.NoError(t, AddColumnIfMissing(ctx, "order_products", "processing", "INTEGER NOT NULL DEFAULT 0"))

	ok, err := columnExists(ctx, "order_products", "processing")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestColumnExists_Postgres(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	UseDB(conn, DriverPostgres)
	t.Cleanup(func() { Driver = DriverSQLite })

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM information_schema.columns WHERE table_name = $1 AND column_name = $2")).
		WithArgs("orders", "last_edited").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("ALTER TABLE orders ADD COLUMN last_edited TEXT NOT NULL DEFAULT ''")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, AddColumnIfMissing(context.Background(), "orders", "last_edited", "TEXT NOT NULL DEFAULT ''"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshot(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, Migrate(ctx))

	dest := filepath.Join(t.TempDir(), "copy.db")
	require.NoError(t, Snapshot(ctx, dest))
	assert.FileExists(t, dest)
}
