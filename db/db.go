package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"avon-hello/logger"
)

// Driver names accepted by Open
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// DB holds the database connection
var DB *sql.DB

// Driver is the driver DB was opened with
var Driver = DriverSQLite

// InitDB opens the database and runs migrations.
// DATABASE_URL selects Postgres; otherwise the embedded SQLite file at sqlitePath is used.
func InitDB(ctx context.Context, sqlitePath string) error {
	driver, dsn := DriverSQLite, sqliteDSN(sqlitePath)
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		driver, dsn = DriverPostgres, connStr
	}

	conn, err := Open(ctx, driver, dsn)
	if err != nil {
		return err
	}
	DB, Driver = conn, driver

	if err := Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("✓ Database connection established successfully", zap.String("driver", driver))
	return nil
}

// Open opens and pings a connection for driver
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if driver == DriverSQLite {
		// one writer; also keeps ":memory:" databases on a single connection
		conn.SetMaxOpenConns(1)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

// UseDB installs an already opened connection, e.g. an in-memory database in tests
func UseDB(conn *sql.DB, driver string) {
	DB, Driver = conn, driver
}

func sqliteDSN(path string) string {
	if path == ":memory:" {
		return path
	}
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// Rebind rewrites "?" placeholders into "$n" for Postgres.
// Queries are written once with "?" and run on either engine.
func Rebind(query string) string {
	if Driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		if c == '\'' {
			inQuote = !inQuote
		}
		if c == '?' && !inQuote {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Snapshot writes a consistent copy of the SQLite database to dest
func Snapshot(ctx context.Context, dest string) error {
	if Driver != DriverSQLite {
		return fmt.Errorf("snapshot is only supported for the embedded database")
	}
	if _, err := DB.ExecContext(ctx, `VACUUM INTO ?`, dest); err != nil {
		return fmt.Errorf("failed to snapshot database: %w", err)
	}
	return nil
}
