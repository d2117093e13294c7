package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"furnitech/internal/adapters/storage"
	domain "furnitech/internal/domain/admin"
)

// SQLiteStore implements Store on any SQLDB.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const selectAdmin = "SELECT id, username, password_hash FROM admin"

// GetByID retrieves an Admin by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Admin, error) {
	row := s.db.QueryRowContext(ctx, selectAdmin+" WHERE id = ?", id)
	return scanAdmin(row)
}

// GetByUsername retrieves an Admin by username.
// PRE: username is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetByUsername(ctx context.Context, username string) (domain.Admin, error) {
	row := s.db.QueryRowContext(ctx, selectAdmin+" WHERE username = ?", username)
	return scanAdmin(row)
}

// Save persists an Admin to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, a domain.Admin) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admin (id, username, password_hash) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   username=excluded.username, password_hash=excluded.password_hash`,
		a.ID, a.Username, a.PasswordHash)
	return err
}

// Count returns the number of administrators.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM admin").Scan(&n)
	return n, err
}

func scanAdmin(row *sql.Row) (domain.Admin, error) {
	var a domain.Admin
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Admin{}, fmt.Errorf("admin not found: %w", err)
		}
		return domain.Admin{}, err
	}
	return a, nil
}
