package embedded

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/dgraph-io/badger/v4"
	models "notebook/internal/domain/models/docsystem"
	docsysRepo "notebook/internal/domain/repositories/docsystem"
)

// BlockRepository implements docsystem.BlockRepository on badger
type BlockRepository struct {
	store *Store
}

// NewBlockRepository creates a new block repository
func NewBlockRepository(store *Store) docsysRepo.BlockRepository {
	return &BlockRepository{store: store}
}

// Create creates a new block
func (r *BlockRepository) Create(ctx context.Context, block *models.Block) error {
	id, err := r.store.nextID(seqBlocks)
	if err != nil {
		return err
	}

	ts := now()
	block.ID = id
	block.CreatedAt = ts
	block.UpdatedAt = ts

	err = r.store.update(ctx, func(txn *badger.Txn) error {
		if err := requireRef(txn, key(prefixDocument, block.DocumentID), "document_id", block.DocumentID); err != nil {
			return err
		}
		if err := putRecord(txn, key(prefixBlock, id), block); err != nil {
			return err
		}
		return txn.Set(key(indexBlocksByDoc, block.DocumentID, id), nil)
	})
	return storageErr("create block", "block", id, err)
}

// GetByID retrieves a block by ID
func (r *BlockRepository) GetByID(ctx context.Context, id int64) (*models.Block, error) {
	var block models.Block
	err := r.store.view(ctx, func(txn *badger.Txn) error {
		return getRecord(txn, key(prefixBlock, id), &block)
	})
	if err != nil {
		return nil, storageErr("get block", "block", id, err)
	}
	return &block, nil
}

// GetByIDs loads the blocks that exist among ids
func (r *BlockRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Block, error) {
	result := make(map[int64]*models.Block, len(ids))
	err := r.store.view(ctx, func(txn *badger.Txn) error {
		for _, id := range ids {
			if _, seen := result[id]; seen {
				continue
			}
			var block models.Block
			err := getRecord(txn, key(prefixBlock, id), &block)
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			result[id] = &block
		}
		return nil
	})
	if err != nil {
		return nil, storageErr("get blocks", "block", 0, err)
	}
	return result, nil
}

// ListByDocument lists blocks by order_index, ties broken by id
func (r *BlockRepository) ListByDocument(ctx context.Context, documentID int64) ([]models.Block, error) {
	blocks := []models.Block{}
	err := r.store.view(ctx, func(txn *badger.Txn) error {
		for _, id := range prefixIDs(txn, key(indexBlocksByDoc, documentID)) {
			var block models.Block
			if err := getRecord(txn, key(prefixBlock, id), &block); err != nil {
				return err
			}
			blocks = append(blocks, block)
		}
		return nil
	})
	if err != nil {
		return nil, storageErr("list blocks", "block", 0, err)
	}

	slices.SortFunc(blocks, func(a, b models.Block) int {
		if c := cmp.Compare(a.OrderIndex, b.OrderIndex); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return blocks, nil
}

// MaxOrderIndex returns the highest order_index in a document
func (r *BlockRepository) MaxOrderIndex(ctx context.Context, documentID int64) (int, bool, error) {
	maxIndex, found := 0, false
	err := r.store.view(ctx, func(txn *badger.Txn) error {
		for _, id := range prefixIDs(txn, key(indexBlocksByDoc, documentID)) {
			var block models.Block
			if err := getRecord(txn, key(prefixBlock, id), &block); err != nil {
				return err
			}
			if !found || block.OrderIndex > maxIndex {
				maxIndex, found = block.OrderIndex, true
			}
		}
		return nil
	})
	if err != nil {
		return 0, false, storageErr("max order index", "block", 0, err)
	}
	return maxIndex, found, nil
}

// Update persists content and block_type
func (r *BlockRepository) Update(ctx context.Context, block *models.Block) error {
	err := r.store.update(ctx, func(txn *badger.Txn) error {
		var stored models.Block
		if err := getRecord(txn, key(prefixBlock, block.ID), &stored); err != nil {
			return err
		}
		stored.Content = block.Content
		stored.BlockType = block.BlockType
		stored.UpdatedAt = now()
		if err := putRecord(txn, key(prefixBlock, stored.ID), &stored); err != nil {
			return err
		}
		block.UpdatedAt = stored.UpdatedAt
		return nil
	})
	return storageErr("update block", "block", block.ID, err)
}

// UpdateOrderIndexes applies every placement in the same transaction
func (r *BlockRepository) UpdateOrderIndexes(ctx context.Context, placements []models.Placement) error {
	if len(placements) == 0 {
		return nil
	}

	var failedID int64
	err := r.store.update(ctx, func(txn *badger.Txn) error {
		ts := now()
		for _, p := range placements {
			var stored models.Block
			if err := getRecord(txn, key(prefixBlock, p.BlockID), &stored); err != nil {
				failedID = p.BlockID
				return err
			}
			stored.OrderIndex = p.OrderIndex
			stored.UpdatedAt = ts
			if err := putRecord(txn, key(prefixBlock, stored.ID), &stored); err != nil {
				return err
			}
		}
		return nil
	})
	return storageErr("reorder blocks", "block", failedID, err)
}

// Delete deletes a single block
func (r *BlockRepository) Delete(ctx context.Context, id int64) error {
	err := r.store.update(ctx, func(txn *badger.Txn) error {
		var block models.Block
		if err := getRecord(txn, key(prefixBlock, id), &block); err != nil {
			return err
		}
		if err := txn.Delete(key(prefixBlock, id)); err != nil {
			return err
		}
		return txn.Delete(key(indexBlocksByDoc, block.DocumentID, id))
	})
	return storageErr("delete block", "block", id, err)
}
