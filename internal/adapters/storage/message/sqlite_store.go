package message

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"furnitech/internal/adapters/storage"
	domain "furnitech/internal/domain/message"
)

// SQLiteStore implements Store on any SQLDB.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Message by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Message, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, phone, service_interest, body, is_read, created_at
		 FROM contact_message WHERE id = ?`, id)
	m, err := scanMessage(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Message{}, fmt.Errorf("message not found: %w", err)
	}
	return m, err
}

// Save persists a Message to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, m domain.Message) error {
	read := 0
	if m.Read {
		read = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_message (id, name, phone, service_interest, body, is_read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, phone=excluded.phone,
		   service_interest=excluded.service_interest, body=excluded.body,
		   is_read=excluded.is_read`,
		m.ID, m.Name, m.Phone, m.ServiceInterest, m.Body, read, storage.FormatTime(m.CreatedAt))
	return err
}

// Delete removes a Message from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM contact_message WHERE id = ?`, id)
	return err
}

// List retrieves all Messages, newest first.
// POST: Returns messages ordered by created_at descending
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, phone, service_interest, body, is_read, created_at
		 FROM contact_message ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		m, err := scanMessage(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// Count returns the total number of messages.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_message`).Scan(&n)
	return n, err
}

// CountUnread returns the number of unread messages.
func (s *SQLiteStore) CountUnread(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_message WHERE is_read = 0`).Scan(&n)
	return n, err
}

func scanMessage(scan func(dest ...any) error) (domain.Message, error) {
	var m domain.Message
	var read int
	var createdAt string
	if err := scan(&m.ID, &m.Name, &m.Phone, &m.ServiceInterest, &m.Body, &read, &createdAt); err != nil {
		return domain.Message{}, err
	}
	m.Read = read != 0
	t, err := storage.ParseTime(createdAt)
	if err != nil {
		return domain.Message{}, err
	}
	m.CreatedAt = t
	return m, nil
}
