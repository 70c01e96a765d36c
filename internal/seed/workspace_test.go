package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"notebook/internal/blocktypes"
	"notebook/internal/repository/embedded"
	"notebook/internal/service/auth"
	serviceDocsys "notebook/internal/service/docsystem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFixture(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{"minimal", "user:\n  username: x\n  email: x@example.com\n", false},
		{"no user", "folders: []\n", true},
		{"malformed", "user: [", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFixture([]byte(tt.yaml))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSeedDemoWorkspace(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := embedded.Open(embedded.Options{InMemory: true, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	txManager := embedded.NewTransactionManager(store)
	folderRepo := embedded.NewFolderRepository(store)
	docRepo := embedded.NewDocumentRepository(store)
	blockRepo := embedded.NewBlockRepository(store)
	guard := auth.NewOwnerBasedGuard(logger)

	seeder := NewWorkspaceSeeder(
		embedded.NewUserRepository(store),
		serviceDocsys.NewFolderService(folderRepo, docRepo, txManager, guard, logger),
		serviceDocsys.NewDocumentService(docRepo, folderRepo, txManager, guard, logger),
		serviceDocsys.NewBlockService(blockRepo, docRepo, serviceDocsys.NewOrderingEngine(blockRepo, logger),
			blocktypes.MustNewRegistry(), txManager, guard, logger),
		logger,
	)

	fixture, err := LoadFixture("demo")
	require.NoError(t, err)

	result, err := seeder.Seed(ctx, fixture)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Folders)
	assert.Equal(t, 4, result.Documents)
	assert.Equal(t, 12, result.Blocks)

	tree, err := serviceDocsys.NewTreeService(folderRepo, docRepo, txManager, logger).GetWorkspaceTree(ctx, result.UserID)
	require.NoError(t, err)
	require.Len(t, tree.Folders, 2)
	assert.Equal(t, "Personal", tree.Folders[0].Name)
	assert.Equal(t, "Work", tree.Folders[1].Name)
	require.Len(t, tree.Folders[1].Children, 1)
	assert.Equal(t, "Q4", tree.Folders[1].Children[0].Name)
	require.Len(t, tree.Documents, 1)
	assert.Equal(t, "Scratchpad", tree.Documents[0].Title)
}
