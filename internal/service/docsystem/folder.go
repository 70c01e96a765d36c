package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	"notebook/internal/config"
	"notebook/internal/domain"
	models "notebook/internal/domain/models/docsystem"
	"notebook/internal/domain/repositories"
	docsysRepo "notebook/internal/domain/repositories/docsystem"
	"notebook/internal/domain/services"
	docsysSvc "notebook/internal/domain/services/docsystem"
)

type folderService struct {
	folderRepo docsysRepo.FolderRepository
	docRepo    docsysRepo.DocumentRepository
	resolver   *FolderResolver
	txManager  repositories.TransactionManager
	guard      services.OwnershipGuard
	logger     *slog.Logger

	// maxDepth bounds nesting; a root folder is at level 1
	maxDepth int
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo docsysRepo.FolderRepository,
	docRepo docsysRepo.DocumentRepository,
	txManager repositories.TransactionManager,
	guard services.OwnershipGuard,
	logger *slog.Logger,
) docsysSvc.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		docRepo:    docRepo,
		resolver:   NewFolderResolver(folderRepo),
		txManager:  txManager,
		guard:      guard,
		logger:     logger,
		maxDepth:   config.MaxFolderDepth,
	}
}

// CreateFolder creates a new folder at root or under an owned parent
func (s *folderService) CreateFolder(ctx context.Context, req *docsysSvc.CreateFolderRequest) (*models.Folder, error) {
	if err := validateFolderName(&req.Name); err != nil {
		return nil, err
	}

	folder := &models.Folder{
		OwnerID:        req.UserID,
		Name:           req.Name,
		ParentFolderID: req.ParentFolderID,
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.resolver.Resolve(ctx, "parent_folder_id", req.UserID, req.ParentFolderID); err != nil {
			return err
		}
		if req.ParentFolderID != nil {
			ancestors, err := s.folderRepo.GetAncestorIDs(ctx, *req.ParentFolderID, s.maxDepth)
			if err != nil {
				return err
			}
			// parent level is len(ancestors)+1, the new folder one below it
			if err := s.checkDepth(len(ancestors) + 2); err != nil {
				return err
			}
		}
		return s.folderRepo.Create(ctx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"user_id", folder.OwnerID,
		"parent_folder_id", folder.ParentFolderID,
	)

	return folder, nil
}

// GetFolder retrieves an owned folder
func (s *folderService) GetFolder(ctx context.Context, userID, id int64) (*models.Folder, error) {
	var folder *models.Folder
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		folder, err = s.getOwnedFolder(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return folder, nil
}

// UpdateFolder renames and/or moves a folder
func (s *folderService) UpdateFolder(ctx context.Context, userID, id int64, req *docsysSvc.UpdateFolderRequest) (*models.Folder, error) {
	var folder *models.Folder
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		folder, err = s.getOwnedFolder(ctx, userID, id)
		if err != nil {
			return err
		}

		if err := s.validateUpdateRequest(req); err != nil {
			return err
		}

		if req.Name != nil {
			folder.Name = *req.Name
		}

		// Tri-state: only move when the field was present in the request
		if req.ParentFolderID.Present {
			if req.ParentFolderID.Value != nil {
				newParentID := *req.ParentFolderID.Value
				if err := s.resolver.Resolve(ctx, "parent_folder_id", userID, &newParentID); err != nil {
					return err
				}
				if err := s.validateNoCircularReference(ctx, userID, id, newParentID); err != nil {
					return err
				}
				s.logger.Debug("moving folder to new parent", "folder_id", id, "parent_folder_id", newParentID)
			} else {
				s.logger.Debug("moving folder to root", "folder_id", id)
			}
			folder.ParentFolderID = req.ParentFolderID.Value
		}

		return s.folderRepo.Update(ctx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"user_id", userID,
		"parent_folder_id", folder.ParentFolderID,
	)

	return folder, nil
}

// DeleteFolder deletes a folder; the backend removes descendant folders and
// moves documents of every removed folder to the root level
func (s *folderService) DeleteFolder(ctx context.Context, userID, id int64) error {
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.getOwnedFolder(ctx, userID, id); err != nil {
			return err
		}
		return s.folderRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", id, "user_id", userID)
	return nil
}

// ListFolderContents lists the immediate child folders and documents of a
// folder, or of the root level when folderID is nil
func (s *folderService) ListFolderContents(ctx context.Context, userID int64, folderID *int64) (*models.FolderContents, error) {
	contents := &models.FolderContents{}
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if folderID != nil {
			folder, err := s.getOwnedFolder(ctx, userID, *folderID)
			if err != nil {
				return err
			}
			contents.Folder = folder
		}

		folders, err := s.folderRepo.ListChildren(ctx, userID, folderID)
		if err != nil {
			return fmt.Errorf("list child folders: %w", err)
		}

		docs, err := s.docRepo.ListByFolder(ctx, userID, folderID)
		if err != nil {
			return fmt.Errorf("list documents: %w", err)
		}

		contents.Folders = folders
		contents.Documents = docs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contents, nil
}

// getOwnedFolder fetches a folder (NotFound) and checks ownership (Forbidden)
func (s *folderService) getOwnedFolder(ctx context.Context, userID, id int64) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Require(ctx, "folder", id, folder, userID); err != nil {
		return nil, err
	}
	return folder, nil
}

// validateUpdateRequest validates a folder update request
func (s *folderService) validateUpdateRequest(req *docsysSvc.UpdateFolderRequest) error {
	if req.Name == nil && !req.ParentFolderID.Present {
		return domain.NewValidation("at least one field must be provided")
	}
	if req.Name != nil {
		return validateFolderName(req.Name)
	}
	return nil
}

// validateNoCircularReference ensures moving folderID under newParentID
// won't make the folder its own ancestor, and that the moved subtree still
// fits within the depth bound. An ancestor walk cut off at the bound cannot
// prove the absence of a cycle, so it is rejected too.
func (s *folderService) validateNoCircularReference(ctx context.Context, userID, folderID, newParentID int64) error {
	if folderID == newParentID {
		return domain.NewValidation("cannot move folder to be its own parent")
	}

	ancestors, err := s.folderRepo.GetAncestorIDs(ctx, newParentID, s.maxDepth)
	if err != nil {
		return err
	}

	visited := make(map[int64]bool, len(ancestors))
	for _, ancestorID := range ancestors {
		if ancestorID == folderID {
			return domain.NewValidation("cannot move folder to be a child of its own descendant")
		}
		if visited[ancestorID] {
			s.logger.Error("folder hierarchy contains a cycle", "folder_id", newParentID, "ancestor_id", ancestorID)
			return domain.NewValidation("folder hierarchy is inconsistent")
		}
		visited[ancestorID] = true
	}

	height, err := s.subtreeHeight(ctx, userID, folderID)
	if err != nil {
		return err
	}
	return s.checkDepth(len(ancestors) + 2 + height)
}

// subtreeHeight returns how many levels sit below folderID (0 for a leaf)
func (s *folderService) subtreeHeight(ctx context.Context, userID, folderID int64) (int, error) {
	folders, err := s.folderRepo.ListByOwner(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list folders: %w", err)
	}

	children := make(map[int64][]int64, len(folders))
	for _, f := range folders {
		if f.ParentFolderID != nil {
			children[*f.ParentFolderID] = append(children[*f.ParentFolderID], f.ID)
		}
	}

	height := 0
	level := []int64{folderID}
	visited := map[int64]bool{folderID: true}
	for {
		var next []int64
		for _, id := range level {
			for _, child := range children[id] {
				if !visited[child] {
					visited[child] = true
					next = append(next, child)
				}
			}
		}
		if len(next) == 0 {
			return height, nil
		}
		height++
		level = next
	}
}

// checkDepth rejects a deepest level beyond the nesting bound
func (s *folderService) checkDepth(level int) error {
	if level > s.maxDepth {
		return domain.NewValidation(fmt.Sprintf("folders cannot be nested deeper than %d levels", s.maxDepth))
	}
	return nil
}
