package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"furnitech/internal/adapters/storage"
	domain "furnitech/internal/domain/content"
)

// SQLiteStore implements Store on any SQLDB.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetBySection retrieves the Block for a section.
// PRE: section is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetBySection(ctx context.Context, section string) (domain.Block, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, section, body, created_at, updated_at
		 FROM content_block WHERE section = ?`, section)

	var b domain.Block
	var createdAt, updatedAt string
	if err := row.Scan(&b.ID, &b.Section, &b.Body, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Block{}, fmt.Errorf("content %q not found: %w", section, err)
		}
		return domain.Block{}, err
	}

	var err error
	if b.CreatedAt, err = storage.ParseTime(createdAt); err != nil {
		return domain.Block{}, err
	}
	if b.UpdatedAt, err = storage.ParseTime(updatedAt); err != nil {
		return domain.Block{}, err
	}
	return b, nil
}

// CreateIfAbsent inserts a Block; a concurrent or earlier insert for the
// same section wins and this call becomes a no-op.
// POST: exactly one row exists for b.Section
func (s *SQLiteStore) CreateIfAbsent(ctx context.Context, b domain.Block) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO content_block (id, section, body, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(section) DO NOTHING`,
		b.ID, b.Section, b.Body, storage.FormatTime(b.CreatedAt), storage.FormatTime(b.UpdatedAt))
	return err
}

// Save upserts a Block keyed by section.
// PRE: b has been validated
// POST: the section's body and updated_at match b; id and created_at of an existing row are kept
func (s *SQLiteStore) Save(ctx context.Context, b domain.Block) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO content_block (id, section, body, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(section) DO UPDATE SET
		   body=excluded.body, updated_at=excluded.updated_at`,
		b.ID, b.Section, b.Body, storage.FormatTime(b.CreatedAt), storage.FormatTime(b.UpdatedAt))
	return err
}
