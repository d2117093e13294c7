package content

import (
	"context"

	domain "furnitech/internal/domain/content"
)

// Store persists content Blocks, one per section.
type Store interface {
	GetBySection(ctx context.Context, section string) (domain.Block, error)
	// CreateIfAbsent inserts b unless its section already has a block.
	CreateIfAbsent(ctx context.Context, b domain.Block) error
	Save(ctx context.Context, b domain.Block) error
}
