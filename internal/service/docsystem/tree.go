package docsystem

import (
	"context"
	"log/slog"

	models "notebook/internal/domain/models/docsystem"
	"notebook/internal/domain/repositories"
	docsysRepo "notebook/internal/domain/repositories/docsystem"
	docsysSvc "notebook/internal/domain/services/docsystem"
)

// treeService implements the TreeService interface
type treeService struct {
	folderRepo   docsysRepo.FolderRepository
	documentRepo docsysRepo.DocumentRepository
	txManager    repositories.TransactionManager
	logger       *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	folderRepo docsysRepo.FolderRepository,
	documentRepo docsysRepo.DocumentRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) docsysSvc.TreeService {
	return &treeService{
		folderRepo:   folderRepo,
		documentRepo: documentRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetWorkspaceTree loads the user's folders and documents in two flat
// queries and nests them
func (s *treeService) GetWorkspaceTree(ctx context.Context, userID int64) (*models.WorkspaceTree, error) {
	var folders []models.Folder
	var documents []models.Document

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		if folders, err = s.folderRepo.ListByOwner(ctx, userID); err != nil {
			return err
		}
		documents, err = s.documentRepo.ListByOwner(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	tree := BuildTree(folders, documents, s.logger)

	s.logger.Debug("workspace tree built",
		"user_id", userID,
		"folder_count", len(folders),
		"document_count", len(documents),
	)

	return tree, nil
}

// BuildTree nests flat folder and document rows.
//
// Pass one links each folder under its parent; pass two places each document
// in its folder. A reference that does not resolve within the given rows
// (stale or foreign) falls back to the root level and is logged. Input order
// is preserved among siblings. A nil logger disables the warnings.
func BuildTree(folders []models.Folder, documents []models.Document, logger *slog.Logger) *models.WorkspaceTree {
	nodes := make(map[int64]*models.FolderNode, len(folders))
	for _, folder := range folders {
		nodes[folder.ID] = &models.FolderNode{
			ID:             folder.ID,
			OwnerID:        folder.OwnerID,
			Name:           folder.Name,
			ParentFolderID: folder.ParentFolderID,
			CreatedAt:      folder.CreatedAt,
			UpdatedAt:      folder.UpdatedAt,
			Children:       []*models.FolderNode{},
			Documents:      []models.Document{},
		}
	}

	tree := &models.WorkspaceTree{
		Folders:   []*models.FolderNode{},
		Documents: []models.Document{},
	}

	// Pass one: folders
	for _, folder := range folders {
		node := nodes[folder.ID]
		if folder.ParentFolderID == nil {
			tree.Folders = append(tree.Folders, node)
			continue
		}
		parent, ok := nodes[*folder.ParentFolderID]
		if !ok || parent == node || createsCycle(nodes, node, parent) {
			if logger != nil {
				logger.Warn("folder parent unresolved, placing at root",
					"folder_id", folder.ID,
					"parent_folder_id", *folder.ParentFolderID,
				)
			}
			tree.Folders = append(tree.Folders, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	// Pass two: documents
	for _, doc := range documents {
		if doc.FolderID == nil {
			tree.Documents = append(tree.Documents, doc)
			continue
		}
		folder, ok := nodes[*doc.FolderID]
		if !ok {
			if logger != nil {
				logger.Warn("document folder unresolved, placing at root",
					"document_id", doc.ID,
					"folder_id", *doc.FolderID,
				)
			}
			tree.Documents = append(tree.Documents, doc)
			continue
		}
		folder.Documents = append(folder.Documents, doc)
	}

	return tree
}

// createsCycle reports whether node is an ancestor of parent along the
// stored parent links, which would make the subtree unreachable from root
func createsCycle(nodes map[int64]*models.FolderNode, node, parent *models.FolderNode) bool {
	seen := map[int64]bool{}
	for current := parent; current != nil && current.ParentFolderID != nil; {
		// A loop that does not pass through node: its members are placed at
		// root themselves, so parent stays reachable
		if seen[current.ID] {
			return false
		}
		seen[current.ID] = true
		next, ok := nodes[*current.ParentFolderID]
		if !ok {
			return false
		}
		if next == node {
			return true
		}
		current = next
	}
	return false
}
