package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"furnitech/internal/adapters/storage"
	domain "furnitech/internal/domain/service"
)

// SQLiteStore implements Store on any SQLDB.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const selectService = `SELECT id, title, description, category, image_path, order_index, active, created_at FROM service`

// GetByID retrieves a Service by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Service, error) {
	row := s.db.QueryRowContext(ctx, selectService+" WHERE id = ?", id)
	svc, err := scanService(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Service{}, fmt.Errorf("service not found: %w", err)
	}
	return svc, err
}

// Save persists a Service to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, svc domain.Service) error {
	fields := []string{"id", "title", "description", "category", "image_path", "order_index", "active", "created_at"}
	updates := []string{
		"title=excluded.title",
		"description=excluded.description",
		"category=excluded.category",
		"image_path=excluded.image_path",
		"order_index=excluded.order_index",
		"active=excluded.active",
	}
	query := fmt.Sprintf(
		"INSERT INTO service (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(fields)), ", "),
		strings.Join(updates, ", "),
	)

	_, err := s.db.ExecContext(ctx, query,
		svc.ID,
		svc.Title,
		svc.Description,
		svc.Category,
		svc.ImagePath,
		svc.OrderIndex,
		boolToInt(svc.Active),
		storage.FormatTime(svc.CreatedAt),
	)
	return err
}

// Delete removes a Service. The image file on disk is left alone.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM service WHERE id = ?", id)
	return err
}

// List retrieves Services based on the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities ordered by category, order_index
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Service, error) {
	var queryBuilder strings.Builder
	var where []string
	var args []any

	queryBuilder.WriteString(selectService)

	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.ActiveOnly {
		where = append(where, "active = 1")
	}
	if len(where) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(where, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY category, order_index, created_at")

	rows, err := s.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Service
	for rows.Next() {
		svc, err := scanService(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, svc)
	}
	return results, rows.Err()
}

// Count returns the total number of services.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM service").Scan(&n)
	return n, err
}

// NextOrderIndex returns the order index for a new service in category.
// POST: result > every order_index currently in category; 0 when empty
func (s *SQLiteStore) NextOrderIndex(ctx context.Context, category string) (int, error) {
	var next int
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(order_index), -1) + 1 FROM service WHERE category = ?", category).Scan(&next)
	return next, err
}

// scanService extracts a Service from a row scanner function.
func scanService(scan func(dest ...any) error) (domain.Service, error) {
	var svc domain.Service
	var active int
	var createdAt string
	if err := scan(&svc.ID, &svc.Title, &svc.Description, &svc.Category,
		&svc.ImagePath, &svc.OrderIndex, &active, &createdAt); err != nil {
		return domain.Service{}, err
	}
	svc.Active = active != 0

	t, err := storage.ParseTime(createdAt)
	if err != nil {
		return domain.Service{}, err
	}
	svc.CreatedAt = t
	return svc, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
