package docsystem

import (
	"context"

	"notebook/internal/domain/models/docsystem"
)

// BlockService handles block lifecycle within documents
type BlockService interface {
	// CreateBlock appends a block after the document's current last block
	CreateBlock(ctx context.Context, userID int64, req *CreateBlockRequest) (*docsystem.Block, error)

	// GetBlock retrieves a block of an owned document
	GetBlock(ctx context.Context, userID, id int64) (*docsystem.Block, error)

	// ListBlocks returns a document's blocks in render order
	ListBlocks(ctx context.Context, userID, documentID int64) ([]docsystem.Block, error)

	// UpdateBlock changes content and/or type
	UpdateBlock(ctx context.Context, userID, id int64, req *UpdateBlockRequest) (*docsystem.Block, error)

	// DeleteBlock deletes a single block; remaining indices keep their gaps
	DeleteBlock(ctx context.Context, userID, id int64) error

	// ReorderBlocks applies a batch of placements atomically
	ReorderBlocks(ctx context.Context, userID, documentID int64, req *ReorderBlocksRequest) error
}

// OrderingEngine assigns and maintains order_index within a document.
// It runs inside the caller's transaction and takes no locks of its own.
type OrderingEngine interface {
	// NextIndex returns max(order_index)+1, or 0 for a document with no blocks
	NextIndex(ctx context.Context, documentID int64) (int, error)

	// Reorder validates that every placement targets a block of documentID,
	// then applies all of them; nothing is written if any placement is rejected
	Reorder(ctx context.Context, documentID int64, placements []docsystem.Placement) error
}

// CreateBlockRequest represents a block creation request
type CreateBlockRequest struct {
	DocumentID int64               `json:"document_id"`
	Content    string              `json:"content"`
	BlockType  docsystem.BlockType `json:"block_type"` // defaults to paragraph
}

// UpdateBlockRequest represents a block update request
type UpdateBlockRequest struct {
	Content   *string              `json:"content,omitempty"`
	BlockType *docsystem.BlockType `json:"block_type,omitempty"`
}

// ReorderBlocksRequest represents a reorder batch
type ReorderBlocksRequest struct {
	Blocks []docsystem.Placement `json:"blocks"`
}
