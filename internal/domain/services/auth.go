package services

import (
	"context"

	"notebook/internal/domain/models/docsystem"
)

// Decision is the outcome of an ownership check
type Decision struct {
	Allowed bool
	Reason  string // set when denied
}

// OwnershipGuard decides whether a user may act on an entity.
// Current implementation: strict ownership (entity owner == requester,
// transitively through the document for blocks).
//
// The guard only sees entities that exist; a missing entity is reported by
// the repository as not found before the guard runs, so callers can tell
// 404 from 403.
type OwnershipGuard interface {
	// Authorize is the pure allow/deny check
	Authorize(entity docsystem.Owned, userID int64) Decision

	// Require returns a ForbiddenError naming resource and id when denied
	Require(ctx context.Context, resource string, id int64, entity docsystem.Owned, userID int64) error
}
