package repositories

import (
	"context"

	"notebook/internal/domain/models"
)

// UserRepository stores the owner anchors. Deleting a user cascades to every
// folder, document and block the user owns. Username and email are unique;
// Create and Update report a taken value as domain.ConflictError.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// List returns every user ordered by id
	List(ctx context.Context) ([]models.User, error)
	// Update persists username and email
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}
