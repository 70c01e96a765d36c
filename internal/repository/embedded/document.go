package embedded

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	models "notebook/internal/domain/models/docsystem"
	docsysRepo "notebook/internal/domain/repositories/docsystem"
)

// DocumentRepository implements docsystem.DocumentRepository on badger
type DocumentRepository struct {
	store *Store
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(store *Store) docsysRepo.DocumentRepository {
	return &DocumentRepository{store: store}
}

// Create creates a new document
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	id, err := r.store.nextID(seqDocuments)
	if err != nil {
		return err
	}

	ts := now()
	doc.ID = id
	doc.CreatedAt = ts
	doc.UpdatedAt = ts

	err = r.store.update(ctx, func(txn *badger.Txn) error {
		if err := requireRef(txn, key(prefixUser, doc.OwnerID), "user_id", doc.OwnerID); err != nil {
			return err
		}
		if doc.FolderID != nil {
			if err := requireRef(txn, key(prefixFolder, *doc.FolderID), "folder_id", *doc.FolderID); err != nil {
				return err
			}
		}
		if err := putRecord(txn, key(prefixDocument, id), doc); err != nil {
			return err
		}
		if err := txn.Set(key(indexDocsByOwner, doc.OwnerID, id), nil); err != nil {
			return err
		}
		return txn.Set(key(indexDocsByFolder, doc.OwnerID, parentOrRoot(doc.FolderID), id), nil)
	})
	return storageErr("create document", "document", id, err)
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	var doc models.Document
	err := r.store.view(ctx, func(txn *badger.Txn) error {
		return getRecord(txn, key(prefixDocument, id), &doc)
	})
	if err != nil {
		return nil, storageErr("get document", "document", id, err)
	}
	return &doc, nil
}

// GetByIDForUpdate reads the document and rewrites its record unchanged.
// The write puts the key in this transaction's conflict set, so two
// transactions locking the same document cannot both commit.
func (r *DocumentRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Document, error) {
	var doc models.Document
	err := r.store.update(ctx, func(txn *badger.Txn) error {
		k := key(prefixDocument, id)
		item, err := txn.Get(k)
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if err := decode(val, &doc); err != nil {
			return err
		}
		return txn.Set(k, val)
	})
	if err != nil {
		return nil, storageErr("lock document", "document", id, err)
	}
	return &doc, nil
}

// ListByOwner retrieves all documents of a user, by title then id
func (r *DocumentRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Document, error) {
	return r.list(ctx, "list documents", key(indexDocsByOwner, ownerID))
}

// ListByFolder lists documents in a folder; nil lists root documents
func (r *DocumentRepository) ListByFolder(ctx context.Context, ownerID int64, folderID *int64) ([]models.Document, error) {
	return r.list(ctx, "list folder documents", key(indexDocsByFolder, ownerID, parentOrRoot(folderID)))
}

// Update persists title and folder_id, moving the folder index entry
func (r *DocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	err := r.store.update(ctx, func(txn *badger.Txn) error {
		var stored models.Document
		if err := getRecord(txn, key(prefixDocument, doc.ID), &stored); err != nil {
			return err
		}

		oldSlot := parentOrRoot(stored.FolderID)
		newSlot := parentOrRoot(doc.FolderID)

		stored.Title = doc.Title
		stored.FolderID = doc.FolderID
		stored.UpdatedAt = now()
		if err := putRecord(txn, key(prefixDocument, stored.ID), &stored); err != nil {
			return err
		}

		if oldSlot != newSlot {
			if doc.FolderID != nil {
				if err := requireRef(txn, key(prefixFolder, newSlot), "folder_id", newSlot); err != nil {
					return err
				}
			}
			if err := txn.Delete(key(indexDocsByFolder, stored.OwnerID, oldSlot, stored.ID)); err != nil {
				return err
			}
			if err := txn.Set(key(indexDocsByFolder, stored.OwnerID, newSlot, stored.ID), nil); err != nil {
				return err
			}
		}

		doc.UpdatedAt = stored.UpdatedAt
		return nil
	})
	return storageErr("update document", "document", doc.ID, err)
}

// Delete removes a document and its blocks
func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	err := r.store.update(ctx, func(txn *badger.Txn) error {
		var doc models.Document
		if err := getRecord(txn, key(prefixDocument, id), &doc); err != nil {
			return err
		}
		return deleteDocumentTx(txn, &doc)
	})
	return storageErr("delete document", "document", id, err)
}

func (r *DocumentRepository) list(ctx context.Context, op string, prefix []byte) ([]models.Document, error) {
	docs := []models.Document{}
	err := r.store.view(ctx, func(txn *badger.Txn) error {
		for _, id := range prefixIDs(txn, prefix) {
			var doc models.Document
			if err := getRecord(txn, key(prefixDocument, id), &doc); err != nil {
				return err
			}
			docs = append(docs, doc)
		}
		return nil
	})
	if err != nil {
		return nil, storageErr(op, "document", 0, err)
	}

	slices.SortFunc(docs, func(a, b models.Document) int {
		if c := strings.Compare(a.Title, b.Title); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return docs, nil
}
