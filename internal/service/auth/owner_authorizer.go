package auth

import (
	"context"
	"log/slog"

	"notebook/internal/domain"
	"notebook/internal/domain/models/docsystem"
	"notebook/internal/domain/services"
)

// OwnerBasedGuard implements OwnershipGuard using strict ownership.
// A user can act on a folder or document they own, and on a block whose
// document they own.
//
// Sharing or role-based models would be additional OwnershipGuard
// implementations; services depend only on the interface.
type OwnerBasedGuard struct {
	logger *slog.Logger
}

// NewOwnerBasedGuard creates a new ownership guard
func NewOwnerBasedGuard(logger *slog.Logger) *OwnerBasedGuard {
	return &OwnerBasedGuard{logger: logger}
}

// Authorize allows the request when the entity's owner is the requester.
// A nil entity or a non-positive user id is always denied.
func (g *OwnerBasedGuard) Authorize(entity docsystem.Owned, userID int64) services.Decision {
	if userID <= 0 {
		return services.Decision{Reason: "no authenticated user"}
	}
	if entity == nil {
		return services.Decision{Reason: "no entity"}
	}

	owner := entity.Owner()
	if owner == 0 {
		return services.Decision{Reason: "entity has no resolvable owner"}
	}
	if owner != userID {
		return services.Decision{Reason: "not the owner"}
	}
	return services.Decision{Allowed: true}
}

// Require turns a denial into a ForbiddenError and records it
func (g *OwnerBasedGuard) Require(ctx context.Context, resource string, id int64, entity docsystem.Owned, userID int64) error {
	decision := g.Authorize(entity, userID)
	if decision.Allowed {
		return nil
	}

	g.logger.WarnContext(ctx, "access denied",
		"resource", resource,
		"id", id,
		"user_id", userID,
		"reason", decision.Reason,
	)
	return domain.NewForbidden(resource, id, decision.Reason)
}
