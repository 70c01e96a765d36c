package docsystem

import (
	"context"

	"notebook/internal/domain/models/docsystem"
)

// DocumentRepository defines data access operations for documents.
// Deleting a document deletes its blocks.
type DocumentRepository interface {
	// Create creates a new document, filling ID and timestamps
	Create(ctx context.Context, doc *docsystem.Document) error

	// GetByID retrieves a document by ID (no owner scoping)
	GetByID(ctx context.Context, id int64) (*docsystem.Document, error)

	// GetByIDForUpdate retrieves a document and locks its row until the
	// surrounding transaction ends
	GetByIDForUpdate(ctx context.Context, id int64) (*docsystem.Document, error)

	// ListByOwner retrieves all documents of a user (flat list)
	ListByOwner(ctx context.Context, ownerID int64) ([]docsystem.Document, error)

	// ListByFolder lists documents in a folder; folderID nil lists root documents
	ListByFolder(ctx context.Context, ownerID int64, folderID *int64) ([]docsystem.Document, error)

	// Update persists title and folder_id
	Update(ctx context.Context, doc *docsystem.Document) error

	// Delete deletes a document and its blocks
	Delete(ctx context.Context, id int64) error
}
