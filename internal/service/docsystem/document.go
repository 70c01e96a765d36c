package docsystem

import (
	"context"
	"log/slog"

	"notebook/internal/domain"
	models "notebook/internal/domain/models/docsystem"
	"notebook/internal/domain/repositories"
	docsysRepo "notebook/internal/domain/repositories/docsystem"
	"notebook/internal/domain/services"
	docsysSvc "notebook/internal/domain/services/docsystem"
)

// documentService implements the DocumentService interface
type documentService struct {
	docRepo   docsysRepo.DocumentRepository
	resolver  *FolderResolver
	txManager repositories.TransactionManager
	guard     services.OwnershipGuard
	logger    *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo docsysRepo.DocumentRepository,
	folderRepo docsysRepo.FolderRepository,
	txManager repositories.TransactionManager,
	guard services.OwnershipGuard,
	logger *slog.Logger,
) docsysSvc.DocumentService {
	return &documentService{
		docRepo:   docRepo,
		resolver:  NewFolderResolver(folderRepo),
		txManager: txManager,
		guard:     guard,
		logger:    logger,
	}
}

// CreateDocument creates a document at root or in an owned folder
func (s *documentService) CreateDocument(ctx context.Context, req *docsysSvc.CreateDocumentRequest) (*models.Document, error) {
	if err := validateDocumentTitle(&req.Title); err != nil {
		return nil, err
	}

	doc := &models.Document{
		OwnerID:  req.UserID,
		Title:    req.Title,
		FolderID: req.FolderID,
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.resolver.Resolve(ctx, "folder_id", req.UserID, req.FolderID); err != nil {
			return err
		}
		return s.docRepo.Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"id", doc.ID,
		"title", doc.Title,
		"user_id", doc.OwnerID,
		"folder_id", doc.FolderID,
	)

	return doc, nil
}

// GetDocument retrieves an owned document
func (s *documentService) GetDocument(ctx context.Context, userID, id int64) (*models.Document, error) {
	var doc *models.Document
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.getOwnedDocument(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// UpdateDocument renames and/or moves a document
func (s *documentService) UpdateDocument(ctx context.Context, userID, id int64, req *docsysSvc.UpdateDocumentRequest) (*models.Document, error) {
	var doc *models.Document
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.getOwnedDocument(ctx, userID, id)
		if err != nil {
			return err
		}

		if req.Title == nil && !req.FolderID.Present {
			return domain.NewValidation("at least one field must be provided")
		}
		if req.Title != nil {
			if err := validateDocumentTitle(req.Title); err != nil {
				return err
			}
			doc.Title = *req.Title
		}

		// Tri-state: absent keeps the folder, null moves to root
		if req.FolderID.Present {
			if err := s.resolver.Resolve(ctx, "folder_id", userID, req.FolderID.Value); err != nil {
				return err
			}
			doc.FolderID = req.FolderID.Value
		}

		return s.docRepo.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document updated",
		"id", doc.ID,
		"title", doc.Title,
		"user_id", userID,
		"folder_id", doc.FolderID,
	)

	return doc, nil
}

// MoveDocument reassigns the document's folder; nil moves it to root
func (s *documentService) MoveDocument(ctx context.Context, userID, id int64, folderID *int64) (*models.Document, error) {
	var doc *models.Document
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.getOwnedDocument(ctx, userID, id)
		if err != nil {
			return err
		}

		if err := s.resolver.Resolve(ctx, "folder_id", userID, folderID); err != nil {
			return err
		}

		doc.FolderID = folderID
		return s.docRepo.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document moved",
		"id", doc.ID,
		"user_id", userID,
		"folder_id", doc.FolderID,
	)

	return doc, nil
}

// DeleteDocument deletes a document; its blocks go with it
func (s *documentService) DeleteDocument(ctx context.Context, userID, id int64) error {
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.getOwnedDocument(ctx, userID, id); err != nil {
			return err
		}
		return s.docRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("document deleted", "id", id, "user_id", userID)
	return nil
}

// getOwnedDocument fetches a document (NotFound) and checks ownership (Forbidden)
func (s *documentService) getOwnedDocument(ctx context.Context, userID, id int64) (*models.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Require(ctx, "document", id, doc, userID); err != nil {
		return nil, err
	}
	return doc, nil
}
