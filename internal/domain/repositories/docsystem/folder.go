package docsystem

import (
	"context"

	"notebook/internal/domain/models/docsystem"
)

// FolderRepository defines data access operations for folders.
// Deleting a folder removes every descendant folder and detaches (sets
// folder_id to NULL on) the documents that lived in any removed folder.
type FolderRepository interface {
	// Create creates a new folder, filling ID and timestamps
	Create(ctx context.Context, folder *docsystem.Folder) error

	// GetByID retrieves a folder by ID (no owner scoping)
	GetByID(ctx context.Context, id int64) (*docsystem.Folder, error)

	// ListByOwner retrieves all folders of a user (flat list)
	ListByOwner(ctx context.Context, ownerID int64) ([]docsystem.Folder, error)

	// ListChildren lists immediate child folders; parentID nil lists root folders
	ListChildren(ctx context.Context, ownerID int64, parentID *int64) ([]docsystem.Folder, error)

	// GetAncestorIDs returns the ids from the folder's parent up to its root,
	// nearest first, walking at most maxDepth levels
	GetAncestorIDs(ctx context.Context, id int64, maxDepth int) ([]int64, error)

	// Update persists name and parent_folder_id
	Update(ctx context.Context, folder *docsystem.Folder) error

	// Delete deletes a folder and cascades as described above
	Delete(ctx context.Context, id int64) error
}
