package settings

import (
	"context"

	domain "furnitech/internal/domain/settings"
)

// Store persists the site Settings singleton.
type Store interface {
	Get(ctx context.Context) (domain.Settings, error)
	// CreateIfAbsent inserts s unless the singleton row already exists.
	CreateIfAbsent(ctx context.Context, s domain.Settings) error
	Save(ctx context.Context, s domain.Settings) error
}
