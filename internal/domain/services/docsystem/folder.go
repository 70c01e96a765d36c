package docsystem

import (
	"context"

	"notebook/internal/domain/models/docsystem"
	"notebook/internal/httputil"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder creates a folder at root or under an owned parent
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*docsystem.Folder, error)

	// GetFolder retrieves an owned folder
	GetFolder(ctx context.Context, userID, id int64) (*docsystem.Folder, error)

	// UpdateFolder renames and/or moves a folder (rejects cycles)
	UpdateFolder(ctx context.Context, userID, id int64, req *UpdateFolderRequest) (*docsystem.Folder, error)

	// DeleteFolder deletes a folder and its subtree; documents inside are moved to root
	DeleteFolder(ctx context.Context, userID, id int64) error

	// ListFolderContents lists immediate children; folderID nil lists the root level
	ListFolderContents(ctx context.Context, userID int64, folderID *int64) (*docsystem.FolderContents, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	UserID         int64  `json:"-"`
	Name           string `json:"name"`
	ParentFolderID *int64 `json:"parent_folder_id,omitempty"` // null for root
}

// UpdateFolderRequest represents a folder update request
type UpdateFolderRequest struct {
	Name           *string             `json:"name,omitempty"`   // rename
	ParentFolderID httputil.OptionalID `json:"parent_folder_id"` // move; null = root, absent = keep
}
