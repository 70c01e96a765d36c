// Package seed creates demo workspaces through the regular services, so
// seeded data passes the same validation as API traffic.
package seed

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"notebook/internal/domain/models"
	docsystem "notebook/internal/domain/models/docsystem"
	"notebook/internal/domain/repositories"
	docsysSvc "notebook/internal/domain/services/docsystem"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/*.yaml
var fixtureFiles embed.FS

// Fixture describes one user's workspace
type Fixture struct {
	User struct {
		Username string `yaml:"username"`
		Email    string `yaml:"email"`
	} `yaml:"user"`
	Folders   []FolderFixture   `yaml:"folders"`
	Documents []DocumentFixture `yaml:"documents"`
}

// FolderFixture is a folder with nested folders and documents
type FolderFixture struct {
	Name      string            `yaml:"name"`
	Folders   []FolderFixture   `yaml:"folders"`
	Documents []DocumentFixture `yaml:"documents"`
}

// DocumentFixture is a document with its blocks in order
type DocumentFixture struct {
	Title  string         `yaml:"title"`
	Blocks []BlockFixture `yaml:"blocks"`
}

// BlockFixture is one block; an empty type means paragraph
type BlockFixture struct {
	Type    docsystem.BlockType `yaml:"type"`
	Content string              `yaml:"content"`
}

// Result counts what a seed run created
type Result struct {
	UserID    int64
	Folders   int
	Documents int
	Blocks    int
}

// LoadFixture reads an embedded fixture by name (without extension)
func LoadFixture(name string) (*Fixture, error) {
	data, err := fixtureFiles.ReadFile("fixtures/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", name, err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes fixture YAML
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if f.User.Username == "" {
		return nil, fmt.Errorf("fixture has no user")
	}
	return &f, nil
}

// WorkspaceSeeder writes fixtures through the services
type WorkspaceSeeder struct {
	users     repositories.UserRepository
	folders   docsysSvc.FolderService
	documents docsysSvc.DocumentService
	blocks    docsysSvc.BlockService
	logger    *slog.Logger
}

// NewWorkspaceSeeder creates a new workspace seeder
func NewWorkspaceSeeder(
	users repositories.UserRepository,
	folders docsysSvc.FolderService,
	documents docsysSvc.DocumentService,
	blocks docsysSvc.BlockService,
	logger *slog.Logger,
) *WorkspaceSeeder {
	return &WorkspaceSeeder{
		users:     users,
		folders:   folders,
		documents: documents,
		blocks:    blocks,
		logger:    logger,
	}
}

// Seed creates the fixture's user and everything below it
func (s *WorkspaceSeeder) Seed(ctx context.Context, f *Fixture) (*Result, error) {
	user := &models.User{Username: f.User.Username, Email: f.User.Email}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user %s: %w", f.User.Username, err)
	}

	result := &Result{UserID: user.ID}
	for _, folder := range f.Folders {
		if err := s.seedFolder(ctx, result, folder, nil); err != nil {
			return result, err
		}
	}
	for _, doc := range f.Documents {
		if err := s.seedDocument(ctx, result, doc, nil); err != nil {
			return result, err
		}
	}

	s.logger.Info("workspace seeded",
		"user_id", result.UserID,
		"folders", result.Folders,
		"documents", result.Documents,
		"blocks", result.Blocks,
	)
	return result, nil
}

func (s *WorkspaceSeeder) seedFolder(ctx context.Context, result *Result, f FolderFixture, parentID *int64) error {
	folder, err := s.folders.CreateFolder(ctx, &docsysSvc.CreateFolderRequest{
		UserID:         result.UserID,
		Name:           f.Name,
		ParentFolderID: parentID,
	})
	if err != nil {
		return fmt.Errorf("create folder %q: %w", f.Name, err)
	}
	result.Folders++

	for _, child := range f.Folders {
		if err := s.seedFolder(ctx, result, child, &folder.ID); err != nil {
			return err
		}
	}
	for _, doc := range f.Documents {
		if err := s.seedDocument(ctx, result, doc, &folder.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *WorkspaceSeeder) seedDocument(ctx context.Context, result *Result, f DocumentFixture, folderID *int64) error {
	doc, err := s.documents.CreateDocument(ctx, &docsysSvc.CreateDocumentRequest{
		UserID:   result.UserID,
		Title:    f.Title,
		FolderID: folderID,
	})
	if err != nil {
		return fmt.Errorf("create document %q: %w", f.Title, err)
	}
	result.Documents++

	for i, b := range f.Blocks {
		_, err := s.blocks.CreateBlock(ctx, result.UserID, &docsysSvc.CreateBlockRequest{
			DocumentID: doc.ID,
			Content:    b.Content,
			BlockType:  b.Type,
		})
		if err != nil {
			return fmt.Errorf("create block %d of %q: %w", i, f.Title, err)
		}
		result.Blocks++
	}
	return nil
}
