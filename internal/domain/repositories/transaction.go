package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager handles database transactions.
// One transaction per request: services wrap each operation in ExecTx and
// repositories pick the transaction up from the context.
type TransactionManager interface {
	// ExecTx executes fn within a transaction. The transaction commits when fn
	// returns nil and rolls back otherwise. Nested calls join the outer transaction.
	ExecTx(ctx context.Context, fn TxFn) error
}

// txContextKey is the type for transaction context keys
type txContextKey struct{}

// WithTx stores a backend transaction handle in the context
func WithTx(ctx context.Context, tx any) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// TxFrom retrieves a backend transaction handle of type T from the context.
// Returns false if no transaction of that type is present.
func TxFrom[T any](ctx context.Context) (T, bool) {
	tx, ok := ctx.Value(txContextKey{}).(T)
	return tx, ok
}
