package outbox

import (
	"context"

	domain "furnitech/internal/domain/outbox"
)

// Store persists deferred side effects.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Entry, error)
	Save(ctx context.Context, e domain.Entry) error
	// ListPending returns up to limit pending or retrying entries, oldest first.
	ListPending(ctx context.Context, limit int) ([]domain.Entry, error)
	// CountFailed returns the number of entries that gave up.
	CountFailed(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
