package embedded

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	models "notebook/internal/domain/models/docsystem"
	docsysRepo "notebook/internal/domain/repositories/docsystem"
)

// FolderRepository implements docsystem.FolderRepository on badger
type FolderRepository struct {
	store *Store
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(store *Store) docsysRepo.FolderRepository {
	return &FolderRepository{store: store}
}

// Create creates a new folder
func (r *FolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	id, err := r.store.nextID(seqFolders)
	if err != nil {
		return err
	}

	ts := now()
	folder.ID = id
	folder.CreatedAt = ts
	folder.UpdatedAt = ts

	err = r.store.update(ctx, func(txn *badger.Txn) error {
		if err := requireRef(txn, key(prefixUser, folder.OwnerID), "user_id", folder.OwnerID); err != nil {
			return err
		}
		if folder.ParentFolderID != nil {
			if err := requireRef(txn, key(prefixFolder, *folder.ParentFolderID), "parent_folder_id", *folder.ParentFolderID); err != nil {
				return err
			}
		}
		if err := putRecord(txn, key(prefixFolder, id), folder); err != nil {
			return err
		}
		if err := txn.Set(key(indexFoldersByOwner, folder.OwnerID, id), nil); err != nil {
			return err
		}
		return txn.Set(key(indexFoldersByParent, folder.OwnerID, parentOrRoot(folder.ParentFolderID), id), nil)
	})
	return storageErr("create folder", "folder", id, err)
}

// GetByID retrieves a folder by ID
func (r *FolderRepository) GetByID(ctx context.Context, id int64) (*models.Folder, error) {
	var folder models.Folder
	err := r.store.view(ctx, func(txn *badger.Txn) error {
		return getRecord(txn, key(prefixFolder, id), &folder)
	})
	if err != nil {
		return nil, storageErr("get folder", "folder", id, err)
	}
	return &folder, nil
}

// ListByOwner retrieves all folders of a user, by name then id
func (r *FolderRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Folder, error) {
	return r.list(ctx, "list folders", key(indexFoldersByOwner, ownerID))
}

// ListChildren lists immediate child folders; nil lists root folders
func (r *FolderRepository) ListChildren(ctx context.Context, ownerID int64, parentID *int64) ([]models.Folder, error) {
	return r.list(ctx, "list folder children", key(indexFoldersByParent, ownerID, parentOrRoot(parentID)))
}

// GetAncestorIDs follows parent links upward, stopping at a root, a
// dangling reference or maxDepth entries
func (r *FolderRepository) GetAncestorIDs(ctx context.Context, id int64, maxDepth int) ([]int64, error) {
	ids := []int64{}
	err := r.store.view(ctx, func(txn *badger.Txn) error {
		var folder models.Folder
		if err := getRecord(txn, key(prefixFolder, id), &folder); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}

		next := folder.ParentFolderID
		for next != nil && len(ids) < maxDepth {
			ids = append(ids, *next)
			var parent models.Folder
			if err := getRecord(txn, key(prefixFolder, *next), &parent); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return nil
				}
				return err
			}
			next = parent.ParentFolderID
		}
		return nil
	})
	if err != nil {
		return nil, storageErr("get folder ancestors", "folder", id, err)
	}
	return ids, nil
}

// Update persists name and parent_folder_id, moving the parent index entry
func (r *FolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	err := r.store.update(ctx, func(txn *badger.Txn) error {
		var stored models.Folder
		if err := getRecord(txn, key(prefixFolder, folder.ID), &stored); err != nil {
			return err
		}

		oldSlot := parentOrRoot(stored.ParentFolderID)
		newSlot := parentOrRoot(folder.ParentFolderID)

		stored.Name = folder.Name
		stored.ParentFolderID = folder.ParentFolderID
		stored.UpdatedAt = now()
		if err := putRecord(txn, key(prefixFolder, stored.ID), &stored); err != nil {
			return err
		}

		if oldSlot != newSlot {
			if folder.ParentFolderID != nil {
				if err := requireRef(txn, key(prefixFolder, newSlot), "parent_folder_id", newSlot); err != nil {
					return err
				}
			}
			if err := txn.Delete(key(indexFoldersByParent, stored.OwnerID, oldSlot, stored.ID)); err != nil {
				return err
			}
			if err := txn.Set(key(indexFoldersByParent, stored.OwnerID, newSlot, stored.ID), nil); err != nil {
				return err
			}
		}

		folder.UpdatedAt = stored.UpdatedAt
		return nil
	})
	return storageErr("update folder", "folder", folder.ID, err)
}

// Delete removes the folder and every descendant folder, and moves the
// documents of each removed folder to the root level
func (r *FolderRepository) Delete(ctx context.Context, id int64) error {
	err := r.store.update(ctx, func(txn *badger.Txn) error {
		var root models.Folder
		if err := getRecord(txn, key(prefixFolder, id), &root); err != nil {
			return err
		}

		// Breadth-first; the visited set keeps a corrupted cycle from looping
		subtree := []models.Folder{root}
		visited := map[int64]bool{root.ID: true}
		for i := 0; i < len(subtree); i++ {
			current := subtree[i]
			for _, childID := range prefixIDs(txn, key(indexFoldersByParent, current.OwnerID, current.ID)) {
				if visited[childID] {
					continue
				}
				var child models.Folder
				if err := getRecord(txn, key(prefixFolder, childID), &child); err != nil {
					return err
				}
				visited[childID] = true
				subtree = append(subtree, child)
			}
		}

		for i := range subtree {
			if err := detachDocumentsTx(txn, subtree[i].OwnerID, subtree[i].ID); err != nil {
				return err
			}
			if err := deleteFolderRecordTx(txn, &subtree[i]); err != nil {
				return err
			}
		}

		r.store.logger.Debug("folder subtree deleted", "folder_id", id, "folders", len(subtree))
		return nil
	})
	return storageErr("delete folder", "folder", id, err)
}

func (r *FolderRepository) list(ctx context.Context, op string, prefix []byte) ([]models.Folder, error) {
	folders := []models.Folder{}
	err := r.store.view(ctx, func(txn *badger.Txn) error {
		for _, id := range prefixIDs(txn, prefix) {
			var folder models.Folder
			if err := getRecord(txn, key(prefixFolder, id), &folder); err != nil {
				return err
			}
			folders = append(folders, folder)
		}
		return nil
	})
	if err != nil {
		return nil, storageErr(op, "folder", 0, err)
	}

	slices.SortFunc(folders, func(a, b models.Folder) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return folders, nil
}
