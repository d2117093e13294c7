// Package storagetest opens throwaway databases for store and orchestrator tests.
package storagetest

import (
	"context"
	"testing"

	"furnitech/internal/adapters/storage"
	"furnitech/internal/config"
)

// OpenDB returns a migrated in-memory SQLite database wrapped in a TimedDB.
// The database is closed when the test finishes.
func OpenDB(t testing.TB) *storage.TimedDB {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, config.Database{Driver: "sqlite", DSN: ":memory:", Dialect: config.DialectSQLite})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := storage.InitDB(ctx, db, config.DialectSQLite); err != nil {
		db.Close()
		t.Fatalf("init test db: %v", err)
	}
	tdb := storage.NewTimedDB(db, nil, storage.TimedDBOptions{Dialect: config.DialectSQLite})
	t.Cleanup(func() { tdb.Close() })
	return tdb
}
