package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	"notebook/internal/blocktypes"
	"notebook/internal/config"
	"notebook/internal/domain"
	models "notebook/internal/domain/models/docsystem"
	"notebook/internal/domain/repositories"
	docsysRepo "notebook/internal/domain/repositories/docsystem"
	"notebook/internal/domain/services"
	docsysSvc "notebook/internal/domain/services/docsystem"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// blockService implements the BlockService interface
type blockService struct {
	blockRepo  docsysRepo.BlockRepository
	docRepo    docsysRepo.DocumentRepository
	ordering   docsysSvc.OrderingEngine
	blockTypes *blocktypes.Registry
	txManager  repositories.TransactionManager
	guard      services.OwnershipGuard
	logger     *slog.Logger
}

// NewBlockService creates a new block service
func NewBlockService(
	blockRepo docsysRepo.BlockRepository,
	docRepo docsysRepo.DocumentRepository,
	ordering docsysSvc.OrderingEngine,
	blockTypes *blocktypes.Registry,
	txManager repositories.TransactionManager,
	guard services.OwnershipGuard,
	logger *slog.Logger,
) docsysSvc.BlockService {
	return &blockService{
		blockRepo:  blockRepo,
		docRepo:    docRepo,
		ordering:   ordering,
		blockTypes: blockTypes,
		txManager:  txManager,
		guard:      guard,
		logger:     logger,
	}
}

// CreateBlock appends a block to an owned document.
// The document row stays locked until commit so concurrent creates in the
// same document compute distinct indices.
func (s *blockService) CreateBlock(ctx context.Context, userID int64, req *docsysSvc.CreateBlockRequest) (*models.Block, error) {
	var block *models.Block
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		doc, err := s.docRepo.GetByIDForUpdate(ctx, req.DocumentID)
		if err != nil {
			return err
		}
		if err := s.guard.Require(ctx, "document", doc.ID, doc, userID); err != nil {
			return err
		}

		if req.BlockType == "" {
			req.BlockType = models.BlockTypeParagraph
		}
		if err := s.validateCreateRequest(req); err != nil {
			return err
		}

		index, err := s.ordering.NextIndex(ctx, doc.ID)
		if err != nil {
			return err
		}

		block = &models.Block{
			DocumentID: doc.ID,
			Content:    req.Content,
			BlockType:  req.BlockType,
			OrderIndex: index,
		}
		return s.blockRepo.Create(ctx, block)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("block created",
		"id", block.ID,
		"document_id", block.DocumentID,
		"block_type", block.BlockType,
		"order_index", block.OrderIndex,
		"user_id", userID,
	)

	return block, nil
}

// GetBlock retrieves a block of an owned document
func (s *blockService) GetBlock(ctx context.Context, userID, id int64) (*models.Block, error) {
	var block *models.Block
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		block, err = s.getOwnedBlock(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return block, nil
}

// ListBlocks returns the blocks of an owned document in render order
func (s *blockService) ListBlocks(ctx context.Context, userID, documentID int64) ([]models.Block, error) {
	var blocks []models.Block
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.getOwnedDocument(ctx, userID, documentID); err != nil {
			return err
		}
		var err error
		blocks, err = s.blockRepo.ListByDocument(ctx, documentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

// UpdateBlock changes content and/or type of a block in an owned document
func (s *blockService) UpdateBlock(ctx context.Context, userID, id int64, req *docsysSvc.UpdateBlockRequest) (*models.Block, error) {
	var block *models.Block
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		block, err = s.getOwnedBlock(ctx, userID, id)
		if err != nil {
			return err
		}

		if err := s.validateUpdateRequest(req); err != nil {
			return err
		}
		if req.Content != nil {
			block.Content = *req.Content
		}
		if req.BlockType != nil {
			block.BlockType = *req.BlockType
		}

		return s.blockRepo.Update(ctx, block)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("block updated",
		"id", block.ID,
		"document_id", block.DocumentID,
		"block_type", block.BlockType,
		"user_id", userID,
	)

	return block, nil
}

// DeleteBlock deletes one block; the indices of the others are left as they are
func (s *blockService) DeleteBlock(ctx context.Context, userID, id int64) error {
	var documentID int64
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		block, err := s.getOwnedBlock(ctx, userID, id)
		if err != nil {
			return err
		}
		documentID = block.DocumentID
		return s.blockRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("block deleted", "id", id, "document_id", documentID, "user_id", userID)
	return nil
}

// ReorderBlocks checks document ownership once, then hands the batch to the ordering engine
func (s *blockService) ReorderBlocks(ctx context.Context, userID, documentID int64, req *docsysSvc.ReorderBlocksRequest) error {
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.getOwnedDocument(ctx, userID, documentID); err != nil {
			return err
		}

		if len(req.Blocks) > config.MaxReorderBatchSize {
			return domain.NewValidation(fmt.Sprintf("reorder batch exceeds %d blocks", config.MaxReorderBatchSize))
		}

		return s.ordering.Reorder(ctx, documentID, req.Blocks)
	})
	if err != nil {
		return err
	}

	s.logger.Info("blocks reordered",
		"document_id", documentID,
		"count", len(req.Blocks),
		"user_id", userID,
	)
	return nil
}

func (s *blockService) getOwnedDocument(ctx context.Context, userID, id int64) (*models.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Require(ctx, "document", id, doc, userID); err != nil {
		return nil, err
	}
	return doc, nil
}

// getOwnedBlock fetches a block and its document; ownership is the document's
func (s *blockService) getOwnedBlock(ctx context.Context, userID, id int64) (*models.Block, error) {
	block, err := s.blockRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	doc, err := s.docRepo.GetByID(ctx, block.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("load document of block %d: %w", id, err)
	}
	if err := s.guard.Require(ctx, "block", id, models.BlockRef{Block: block, Document: doc}, userID); err != nil {
		return nil, err
	}
	return block, nil
}

// validateCreateRequest validates a block creation request
func (s *blockService) validateCreateRequest(req *docsysSvc.CreateBlockRequest) error {
	return validationErr(validation.ValidateStruct(req,
		validation.Field(&req.Content, validation.Length(0, config.MaxBlockContentLength)),
		validation.Field(&req.BlockType, validation.Required, validation.By(s.registeredBlockType)),
	))
}

// validateUpdateRequest validates a block update request
func (s *blockService) validateUpdateRequest(req *docsysSvc.UpdateBlockRequest) error {
	if req.Content == nil && req.BlockType == nil {
		return domain.NewValidation("at least one field must be provided")
	}

	rules := []*validation.FieldRules{}
	if req.Content != nil {
		rules = append(rules, validation.Field(&req.Content, validation.Length(0, config.MaxBlockContentLength)))
	}
	if req.BlockType != nil {
		rules = append(rules, validation.Field(&req.BlockType, validation.Required, validation.By(s.registeredBlockType)))
	}

	return validationErr(validation.ValidateStruct(req, rules...))
}

// registeredBlockType is an ozzo rule accepting only block types from the registry
func (s *blockService) registeredBlockType(value interface{}) error {
	var t models.BlockType
	switch v := value.(type) {
	case models.BlockType:
		t = v
	case *models.BlockType:
		if v == nil {
			return nil
		}
		t = *v
	default:
		return fmt.Errorf("unexpected block type value %T", value)
	}

	if !s.blockTypes.IsValid(t) {
		return validation.NewError("validation_block_type_unknown", fmt.Sprintf("unknown block type %q", t))
	}
	return nil
}
