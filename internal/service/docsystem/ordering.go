package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	"notebook/internal/config"
	"notebook/internal/domain"
	models "notebook/internal/domain/models/docsystem"
	docsysRepo "notebook/internal/domain/repositories/docsystem"
	docsysSvc "notebook/internal/domain/services/docsystem"
)

// orderingEngine implements OrderingEngine on top of the block repository.
// It takes no locks: callers run it inside their transaction and the
// backend's isolation decides concurrent races (last write wins per row).
type orderingEngine struct {
	blockRepo docsysRepo.BlockRepository
	logger    *slog.Logger
}

// NewOrderingEngine creates a new ordering engine
func NewOrderingEngine(blockRepo docsysRepo.BlockRepository, logger *slog.Logger) docsysSvc.OrderingEngine {
	return &orderingEngine{blockRepo: blockRepo, logger: logger}
}

// NextIndex returns max(order_index)+1, or 0 for a document with no blocks.
// A document whose last block already sits at MaxOrderIndex has no room to
// append until it is reordered.
func (e *orderingEngine) NextIndex(ctx context.Context, documentID int64) (int, error) {
	maxIndex, ok, err := e.blockRepo.MaxOrderIndex(ctx, documentID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	if maxIndex >= config.MaxOrderIndex {
		return 0, domain.NewValidation(fmt.Sprintf("document %d has no order_index left after %d; reorder its blocks first", documentID, maxIndex))
	}
	return maxIndex + 1, nil
}

// Reorder applies placements after checking all of them up front.
// Duplicate target indices are allowed; reads break ties by id.
func (e *orderingEngine) Reorder(ctx context.Context, documentID int64, placements []models.Placement) error {
	if len(placements) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(placements))
	seen := make(map[int64]bool, len(placements))
	for _, p := range placements {
		if seen[p.BlockID] {
			return domain.NewValidation(fmt.Sprintf("block %d appears more than once", p.BlockID))
		}
		if p.OrderIndex < 0 || p.OrderIndex > config.MaxOrderIndex {
			return domain.NewValidation(fmt.Sprintf("block %d: order_index must be between 0 and %d", p.BlockID, config.MaxOrderIndex))
		}
		seen[p.BlockID] = true
		ids = append(ids, p.BlockID)
	}

	blocks, err := e.blockRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for _, id := range ids {
		block, ok := blocks[id]
		if !ok || block.DocumentID != documentID {
			// Missing and foreign blocks look the same to the caller
			e.logger.Debug("reorder rejected", "document_id", documentID, "block_id", id, "found", ok)
			return domain.NewValidation(fmt.Sprintf("block %d does not belong to document %d", id, documentID))
		}
	}

	return e.blockRepo.UpdateOrderIndexes(ctx, placements)
}
