package embedded

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"notebook/internal/domain"
	"notebook/internal/domain/repositories"
)

// TransactionManager runs service operations in badger read-write transactions
type TransactionManager struct {
	store *Store
}

// NewTransactionManager creates a transaction manager over store
func NewTransactionManager(store *Store) repositories.TransactionManager {
	return &TransactionManager{store: store}
}

// ExecTx executes fn inside a read-write transaction. Badger is optimistic:
// a commit that lost a race returns badger.ErrConflict, surfaced as a storage
// failure for the caller to retry. A call made while a transaction is already
// in the context joins it.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if _, ok := repositories.TxFrom[*badger.Txn](ctx); ok {
		return fn(ctx)
	}

	txn := tm.store.db.NewTransaction(true)
	defer txn.Discard()

	if err := fn(repositories.WithTx(ctx, txn)); err != nil {
		return err
	}

	if err := txn.Commit(); err != nil {
		if errors.Is(err, badger.ErrConflict) {
			tm.store.logger.Warn("transaction conflict", "error", err)
		}
		return domain.NewStorage("commit transaction", err)
	}
	return nil
}
