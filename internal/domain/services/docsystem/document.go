package docsystem

import (
	"context"

	"notebook/internal/domain/models/docsystem"
	"notebook/internal/httputil"
)

// DocumentService handles document business logic
type DocumentService interface {
	// CreateDocument creates a document at root or in an owned folder
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*docsystem.Document, error)

	// GetDocument retrieves an owned document
	GetDocument(ctx context.Context, userID, id int64) (*docsystem.Document, error)

	// UpdateDocument renames and/or moves a document
	UpdateDocument(ctx context.Context, userID, id int64, req *UpdateDocumentRequest) (*docsystem.Document, error)

	// MoveDocument reassigns the document's folder; nil moves it to root
	MoveDocument(ctx context.Context, userID, id int64, folderID *int64) (*docsystem.Document, error)

	// DeleteDocument deletes a document and its blocks
	DeleteDocument(ctx context.Context, userID, id int64) error
}

// CreateDocumentRequest represents a document creation request
type CreateDocumentRequest struct {
	UserID   int64  `json:"-"`
	Title    string `json:"title"`
	FolderID *int64 `json:"folder_id,omitempty"` // null for root
}

// UpdateDocumentRequest represents a document update request
type UpdateDocumentRequest struct {
	Title    *string             `json:"title,omitempty"`
	FolderID httputil.OptionalID `json:"folder_id"` // null = root, absent = keep
}

// MoveDocumentRequest is the body of a folder reassignment
type MoveDocumentRequest struct {
	FolderID *int64 `json:"folder_id"`
}
