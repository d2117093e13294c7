package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"furnitech/internal/config"
)

// Open connects to the configured database and verifies the connection.
// PRE: dbcfg came from config.Config.Database
// POST: Returns a live *sql.DB; SQLite pools are limited to one writer
func Open(ctx context.Context, dbcfg config.Database) (*sql.DB, error) {
	db, err := sql.Open(dbcfg.Driver, dbcfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbcfg.Driver, err)
	}
	if dbcfg.Dialect == config.DialectSQLite {
		// Each :memory: connection is its own database.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", dbcfg.Driver, err)
	}
	return db, nil
}

// schema is portable between SQLite and PostgreSQL: TEXT timestamps,
// INTEGER flags, and no engine-specific types.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS admin (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS content_block (
		id TEXT PRIMARY KEY,
		section TEXT NOT NULL,
		body TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS content_block_section ON content_block (section)`,

	`CREATE TABLE IF NOT EXISTS service (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL,
		image_path TEXT NOT NULL DEFAULT '',
		order_index INTEGER NOT NULL DEFAULT 0,
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS service_category_order ON service (category, order_index)`,

	`CREATE TABLE IF NOT EXISTS contact_message (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL,
		service_interest TEXT NOT NULL,
		body TEXT NOT NULL,
		is_read INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS contact_message_created ON contact_message (created_at)`,

	`CREATE TABLE IF NOT EXISTS site_settings (
		id TEXT PRIMARY KEY,
		logo_path TEXT NOT NULL DEFAULT '',
		whatsapp_number TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		email TEXT NOT NULL,
		address TEXT NOT NULL,
		company_name TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS outbox (
		id TEXT PRIMARY KEY,
		action_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		status TEXT NOT NULL,
		attempts INTEGER NOT NULL DEFAULT 0,
		max_attempts INTEGER NOT NULL,
		last_attempted_at TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		error_message TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS outbox_status_created ON outbox (status, created_at)`,
}

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables and indexes exist; running it again is a no-op
func InitDB(ctx context.Context, db *sql.DB, dialect config.Dialect) error {
	if dialect == config.DialectSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
