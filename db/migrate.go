package db

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"avon-hello/logger"
)

// tables are created on demand; {{id}} expands to the engine's auto-increment key
var tables = []struct {
	name string
	ddl  string
}{
	{"customers", `
		CREATE TABLE IF NOT EXISTS customers (
			customer_id {{id}},
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL DEFAULT '',
			zip_code TEXT NOT NULL DEFAULT '',
			office_phone TEXT NOT NULL DEFAULT '',
			cell_phone TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'Active',
			created_at TEXT NOT NULL DEFAULT ''
		)`},
	{"orders", `
		CREATE TABLE IF NOT EXISTS orders (
			order_id {{id}},
			customer_id BIGINT NOT NULL REFERENCES customers(customer_id),
			campaign_year INTEGER NOT NULL,
			campaign_number INTEGER NOT NULL,
			order_total BIGINT NOT NULL DEFAULT 0,
			previous_balance BIGINT NOT NULL DEFAULT 0,
			payment BIGINT NOT NULL DEFAULT 0,
			net_due BIGINT NOT NULL DEFAULT 0,
			time_submitted TEXT NOT NULL DEFAULT '',
			last_edited TEXT NOT NULL DEFAULT ''
		)`},
	{"order_products", `
		CREATE TABLE IF NOT EXISTS order_products (
			id {{id}},
			order_id BIGINT NOT NULL REFERENCES orders(order_id) ON DELETE CASCADE,
			product_number TEXT NOT NULL DEFAULT '',
			page TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			shade TEXT NOT NULL DEFAULT '',
			size TEXT NOT NULL DEFAULT '',
			qty INTEGER NOT NULL DEFAULT 0,
			unit_price BIGINT NOT NULL DEFAULT 0,
			reg_price BIGINT NOT NULL DEFAULT 0,
			tax INTEGER NOT NULL DEFAULT 0,
			discount TEXT NOT NULL DEFAULT '0',
			total_price BIGINT NOT NULL DEFAULT 0
		)`},
	{"campaign_settings", `
		CREATE TABLE IF NOT EXISTS campaign_settings (
			id {{id}},
			year INTEGER NOT NULL DEFAULT 2025,
			campaign INTEGER NOT NULL DEFAULT 1,
			last_campaign INTEGER NOT NULL DEFAULT 30,
			created_at TEXT NOT NULL DEFAULT ''
		)`},
	{"representative_info", `
		CREATE TABLE IF NOT EXISTS representative_info (
			id {{id}},
			rep_name TEXT NOT NULL DEFAULT '',
			rep_address TEXT NOT NULL DEFAULT '',
			rep_phone TEXT NOT NULL DEFAULT '',
			rep_email TEXT NOT NULL DEFAULT '',
			rep_website TEXT NOT NULL DEFAULT '',
			rep_cell TEXT NOT NULL DEFAULT '',
			rep_office TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT ''
		)`},
}

// columns added after the first release; older databases get them on startup
var addedColumns = []struct {
	table, column, ddl string
}{
	{"order_products", "processing", "INTEGER NOT NULL DEFAULT 0"},
	{"orders", "time_submitted", "TEXT NOT NULL DEFAULT ''"},
	{"orders", "last_edited", "TEXT NOT NULL DEFAULT ''"},
	{"representative_info", "logo_path", "TEXT NOT NULL DEFAULT ''"},
}

func autoIDColumn() string {
	if Driver == DriverPostgres {
		return "BIGSERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

// Migrate creates missing tables and columns. It is idempotent.
func Migrate(ctx context.Context) error {
	for _, t := range tables {
		ddl := strings.ReplaceAll(t.ddl, "{{id}}", autoIDColumn())
		if _, err := DB.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.name, err)
		}
	}
	for _, c := range addedColumns {
		if err := AddColumnIfMissing(ctx, c.table, c.column, c.ddl); err != nil {
			return err
		}
	}
	return nil
}

// AddColumnIfMissing adds column to table unless it already exists
func AddColumnIfMissing(ctx context.Context, table, column, ddl string) error {
	exists, err := columnExists(ctx, table, column)
	if err != nil {
		return fmt.Errorf("failed to inspect %s.%s: %w", table, column, err)
	}
	if exists {
		return nil
	}
	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, ddl)
	if _, err := DB.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to add column %s.%s: %w", table, column, err)
	}
	logger.Info("🔧 Added column", zap.String("table", table), zap.String("column", column))
	return nil
}

func columnExists(ctx context.Context, table, column string) (bool, error) {
	var query string
	if Driver == DriverPostgres {
		query = `SELECT COUNT(*) FROM information_schema.columns WHERE table_name = ? AND column_name = ?`
	} else {
		query = `SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`
	}
	var n int
	if err := DB.QueryRowContext(ctx, Rebind(query), table, column).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
