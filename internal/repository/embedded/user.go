package embedded

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"notebook/internal/domain"
	"notebook/internal/domain/models"
	docmodels "notebook/internal/domain/models/docsystem"
	"notebook/internal/domain/repositories"
)

// UserRepository implements repositories.UserRepository on badger
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(store *Store) repositories.UserRepository {
	return &UserRepository{store: store}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	id, err := r.store.nextID(seqUsers)
	if err != nil {
		return err
	}

	ts := now()
	user.ID = id
	user.CreatedAt = ts
	user.UpdatedAt = ts

	err = r.store.update(ctx, func(txn *badger.Txn) error {
		if err := claimUnique(txn, uniqueUsername, "username", user.Username, id); err != nil {
			return err
		}
		if err := claimUnique(txn, uniqueEmail, "email", user.Email, id); err != nil {
			return err
		}
		return putRecord(txn, key(prefixUser, id), user)
	})
	return storageErr("create user", "user", id, err)
}

// List returns every user ordered by id
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := r.store.view(ctx, func(txn *badger.Txn) error {
		for _, id := range prefixIDs(txn, []byte(prefixUser)) {
			var user models.User
			if err := getRecord(txn, key(prefixUser, id), &user); err != nil {
				return err
			}
			users = append(users, user)
		}
		return nil
	})
	if err != nil {
		return nil, storageErr("list users", "user", 0, err)
	}
	return users, nil
}

// Update persists username and email, moving their unique index entries
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	err := r.store.update(ctx, func(txn *badger.Txn) error {
		var stored models.User
		if err := getRecord(txn, key(prefixUser, user.ID), &stored); err != nil {
			return err
		}

		if stored.Username != user.Username {
			if err := claimUnique(txn, uniqueUsername, "username", user.Username, user.ID); err != nil {
				return err
			}
			if err := txn.Delete(uniqueKey(uniqueUsername, stored.Username)); err != nil {
				return err
			}
		}
		if stored.Email != user.Email {
			if err := claimUnique(txn, uniqueEmail, "email", user.Email, user.ID); err != nil {
				return err
			}
			if err := txn.Delete(uniqueKey(uniqueEmail, stored.Email)); err != nil {
				return err
			}
		}

		stored.Username = user.Username
		stored.Email = user.Email
		stored.UpdatedAt = now()
		if err := putRecord(txn, key(prefixUser, stored.ID), &stored); err != nil {
			return err
		}

		user.CreatedAt = stored.CreatedAt
		user.UpdatedAt = stored.UpdatedAt
		return nil
	})
	return storageErr("update user", "user", user.ID, err)
}

// claimUnique records value in a unique index for userID. The read makes two
// transactions claiming the same value conflict at commit.
func claimUnique(txn *badger.Txn, prefix, field, value string, userID int64) error {
	k := uniqueKey(prefix, value)
	item, err := txn.Get(k)
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		return txn.Set(k, binary.BigEndian.AppendUint64(nil, uint64(userID)))
	case err != nil:
		return err
	}

	owner, err := item.ValueCopy(nil)
	if err != nil {
		return err
	}
	if len(owner) == 8 && int64(binary.BigEndian.Uint64(owner)) == userID {
		return nil
	}
	return domain.NewConflict("user", field, value)
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.store.view(ctx, func(txn *badger.Txn) error {
		return getRecord(txn, key(prefixUser, id), &user)
	})
	if err != nil {
		return nil, storageErr("get user", "user", id, err)
	}
	return &user, nil
}

// Delete removes a user together with every folder, document and block they own
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	err := r.store.update(ctx, func(txn *badger.Txn) error {
		var user models.User
		if err := getRecord(txn, key(prefixUser, id), &user); err != nil {
			return err
		}
		if err := releaseGuard(txn, key(prefixUser, id)); err != nil {
			return err
		}

		for _, docID := range prefixIDs(txn, key(indexDocsByOwner, id)) {
			var doc docmodels.Document
			if err := getRecord(txn, key(prefixDocument, docID), &doc); err != nil {
				return err
			}
			if err := deleteDocumentTx(txn, &doc); err != nil {
				return err
			}
		}

		for _, folderID := range prefixIDs(txn, key(indexFoldersByOwner, id)) {
			var folder docmodels.Folder
			if err := getRecord(txn, key(prefixFolder, folderID), &folder); err != nil {
				return err
			}
			if err := deleteFolderRecordTx(txn, &folder); err != nil {
				return err
			}
		}

		if err := txn.Delete(uniqueKey(uniqueUsername, user.Username)); err != nil {
			return err
		}
		if err := txn.Delete(uniqueKey(uniqueEmail, user.Email)); err != nil {
			return err
		}
		return txn.Delete(key(prefixUser, id))
	})
	if err != nil {
		return storageErr("delete user", "user", id, err)
	}

	r.store.logger.Debug("user deleted", "user_id", id)
	return nil
}
