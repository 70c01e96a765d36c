package services

import (
	"context"

	"notebook/internal/domain/models"
)

// AccountService handles account-level lifecycle
type AccountService interface {
	// GetAccount returns the requester's user record
	GetAccount(ctx context.Context, userID int64) (*models.User, error)

	// UpdateAccount changes the requester's username and/or email
	UpdateAccount(ctx context.Context, userID int64, req *UpdateAccountRequest) (*models.User, error)

	// DeleteAccount removes the user and, by cascade, every folder,
	// document and block they own
	DeleteAccount(ctx context.Context, userID int64) error

	// CreateAccount provisions a user. Operator tooling only; the HTTP
	// surface never creates users.
	CreateAccount(ctx context.Context, req *CreateAccountRequest) (*models.User, error)

	// ListAccounts returns every user ordered by id. Operator tooling only.
	ListAccounts(ctx context.Context) ([]models.User, error)
}

// UpdateAccountRequest carries the profile fields to change; nil keeps the
// stored value
type UpdateAccountRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// CreateAccountRequest describes a user to provision
type CreateAccountRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
