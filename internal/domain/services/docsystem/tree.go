package docsystem

import (
	"context"

	"notebook/internal/domain/models/docsystem"
)

// TreeService defines operations for building workspace trees
type TreeService interface {
	// GetWorkspaceTree builds the nested folder/document tree owned by userID
	GetWorkspaceTree(ctx context.Context, userID int64) (*docsystem.WorkspaceTree, error)
}
