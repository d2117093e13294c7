package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"furnitech/internal/adapters/storage"
	domain "furnitech/internal/domain/settings"
)

// SQLiteStore implements Store on any SQLDB.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves the singleton settings row.
// POST: Returns the row or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) Get(ctx context.Context) (domain.Settings, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, logo_path, whatsapp_number, phone_number, email, address, company_name, updated_at
		 FROM site_settings WHERE id = ?`, domain.SingletonID)

	var st domain.Settings
	var updatedAt string
	err := row.Scan(&st.ID, &st.LogoPath, &st.WhatsAppNumber, &st.PhoneNumber,
		&st.Email, &st.Address, &st.CompanyName, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Settings{}, fmt.Errorf("site settings not found: %w", err)
	}
	if err != nil {
		return domain.Settings{}, err
	}
	if st.UpdatedAt, err = storage.ParseTime(updatedAt); err != nil {
		return domain.Settings{}, err
	}
	return st, nil
}

// CreateIfAbsent inserts the singleton row unless it exists.
// POST: exactly one settings row exists
func (s *SQLiteStore) CreateIfAbsent(ctx context.Context, st domain.Settings) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO site_settings (id, logo_path, whatsapp_number, phone_number, email, address, company_name, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		domain.SingletonID, st.LogoPath, st.WhatsAppNumber, st.PhoneNumber,
		st.Email, st.Address, st.CompanyName, storage.FormatTime(st.UpdatedAt))
	return err
}

// Save upserts the singleton row. The ID on st is ignored.
// POST: the stored row matches st
func (s *SQLiteStore) Save(ctx context.Context, st domain.Settings) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO site_settings (id, logo_path, whatsapp_number, phone_number, email, address, company_name, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   logo_path=excluded.logo_path, whatsapp_number=excluded.whatsapp_number,
		   phone_number=excluded.phone_number, email=excluded.email,
		   address=excluded.address, company_name=excluded.company_name,
		   updated_at=excluded.updated_at`,
		domain.SingletonID, st.LogoPath, st.WhatsAppNumber, st.PhoneNumber,
		st.Email, st.Address, st.CompanyName, storage.FormatTime(st.UpdatedAt))
	return err
}
