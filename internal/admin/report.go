// Package admin builds the operator views printed by cmd/admin.
package admin

import (
	"context"
	"fmt"
	"time"

	"notebook/internal/domain/repositories"
	docsysRepo "notebook/internal/domain/repositories/docsystem"
)

// UserRow is one line of the users listing
type UserRow struct {
	ID        int64     `yaml:"id"`
	Username  string    `yaml:"username"`
	Email     string    `yaml:"email"`
	CreatedAt time.Time `yaml:"created_at"`
	Folders   int       `yaml:"folders"`
	Documents int       `yaml:"documents"`
}

// Stats summarizes the whole store
type Stats struct {
	Users     int `yaml:"users"`
	Folders   int `yaml:"folders"`
	Documents int `yaml:"documents"`
}

// Reporter reads users and their content counts
type Reporter struct {
	users     repositories.UserRepository
	folders   docsysRepo.FolderRepository
	documents docsysRepo.DocumentRepository
}

func NewReporter(
	users repositories.UserRepository,
	folders docsysRepo.FolderRepository,
	documents docsysRepo.DocumentRepository,
) *Reporter {
	return &Reporter{users: users, folders: folders, documents: documents}
}

// Users lists every user with how many folders and documents they own
func (r *Reporter) Users(ctx context.Context) ([]UserRow, error) {
	users, err := r.users.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		folders, err := r.folders.ListByOwner(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("list folders of user %d: %w", u.ID, err)
		}
		docs, err := r.documents.ListByOwner(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("list documents of user %d: %w", u.ID, err)
		}
		rows = append(rows, UserRow{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
			Folders:   len(folders),
			Documents: len(docs),
		})
	}
	return rows, nil
}

// Stats totals the users listing
func (r *Reporter) Stats(ctx context.Context) (*Stats, error) {
	rows, err := r.Users(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Users: len(rows)}
	for _, row := range rows {
		stats.Folders += row.Folders
		stats.Documents += row.Documents
	}
	return stats, nil
}
