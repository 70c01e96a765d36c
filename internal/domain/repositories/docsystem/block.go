package docsystem

import (
	"context"

	"notebook/internal/domain/models/docsystem"
)

// BlockRepository defines data access operations for blocks
type BlockRepository interface {
	// Create creates a new block, filling ID and timestamps
	Create(ctx context.Context, block *docsystem.Block) error

	// GetByID retrieves a block by ID
	GetByID(ctx context.Context, id int64) (*docsystem.Block, error)

	// GetByIDs retrieves the blocks that exist among ids, keyed by id.
	// Missing ids are simply absent from the result.
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*docsystem.Block, error)

	// ListByDocument lists blocks ordered by order_index, then id
	ListByDocument(ctx context.Context, documentID int64) ([]docsystem.Block, error)

	// MaxOrderIndex returns the highest order_index in a document;
	// ok is false when the document has no blocks
	MaxOrderIndex(ctx context.Context, documentID int64) (max int, ok bool, err error)

	// Update persists content and block_type
	Update(ctx context.Context, block *docsystem.Block) error

	// UpdateOrderIndexes applies every placement as one batch
	UpdateOrderIndexes(ctx context.Context, placements []docsystem.Placement) error

	// Delete deletes a single block
	Delete(ctx context.Context, id int64) error
}
