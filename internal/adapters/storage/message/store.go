package message

import (
	"context"

	domain "furnitech/internal/domain/message"
)

// Store persists contact Message state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Message, error)
	Save(ctx context.Context, value domain.Message) error
	Delete(ctx context.Context, id string) error
	// List returns every message, newest first.
	List(ctx context.Context) ([]domain.Message, error)
	Count(ctx context.Context) (int, error)
	CountUnread(ctx context.Context) (int, error)
}
