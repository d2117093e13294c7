package service

import (
	"context"

	domain "furnitech/internal/domain/service"
)

// ListFilter narrows a service listing. Zero value lists everything.
type ListFilter struct {
	Category   string
	ActiveOnly bool
}

// Store persists Service state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Service, error)
	Save(ctx context.Context, value domain.Service) error
	Delete(ctx context.Context, id string) error
	// List orders by category, then order index, then creation time.
	List(ctx context.Context, filter ListFilter) ([]domain.Service, error)
	Count(ctx context.Context) (int, error)
	// NextOrderIndex returns one past the highest index used in category, or 0.
	NextOrderIndex(ctx context.Context, category string) (int, error)
}
