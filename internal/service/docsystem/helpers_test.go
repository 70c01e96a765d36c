package docsystem

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"notebook/internal/blocktypes"
	"notebook/internal/domain/models"
	modelsDoc "notebook/internal/domain/models/docsystem"
	"notebook/internal/domain/repositories"
	docsysRepo "notebook/internal/domain/repositories/docsystem"
	docsysSvc "notebook/internal/domain/services/docsystem"
	"notebook/internal/repository/embedded"
	"notebook/internal/service/auth"

	"github.com/stretchr/testify/require"
)

// testEnv wires the real services to an in-memory badger store
type testEnv struct {
	store      *embedded.Store
	txManager  repositories.TransactionManager
	userRepo   repositories.UserRepository
	folderRepo docsysRepo.FolderRepository
	docRepo    docsysRepo.DocumentRepository
	blockRepo  docsysRepo.BlockRepository

	folders   docsysSvc.FolderService
	documents docsysSvc.DocumentService
	blocks    docsysSvc.BlockService
	tree      docsysSvc.TreeService
	ordering  docsysSvc.OrderingEngine
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := testLogger()
	store, err := embedded.Open(embedded.Options{InMemory: true, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	registry, err := blocktypes.NewRegistry()
	require.NoError(t, err)

	env := &testEnv{
		store:      store,
		txManager:  embedded.NewTransactionManager(store),
		userRepo:   embedded.NewUserRepository(store),
		folderRepo: embedded.NewFolderRepository(store),
		docRepo:    embedded.NewDocumentRepository(store),
		blockRepo:  embedded.NewBlockRepository(store),
	}

	guard := auth.NewOwnerBasedGuard(logger)
	env.ordering = NewOrderingEngine(env.blockRepo, logger)
	env.folders = NewFolderService(env.folderRepo, env.docRepo, env.txManager, guard, logger)
	env.documents = NewDocumentService(env.docRepo, env.folderRepo, env.txManager, guard, logger)
	env.blocks = NewBlockService(env.blockRepo, env.docRepo, env.ordering, registry, env.txManager, guard, logger)
	env.tree = NewTreeService(env.folderRepo, env.docRepo, env.txManager, logger)

	return env
}

func (e *testEnv) createUser(t *testing.T, name string) int64 {
	t.Helper()
	user := &models.User{Username: name, Email: fmt.Sprintf("%s@example.com", name)}
	require.NoError(t, e.userRepo.Create(context.Background(), user))
	return user.ID
}

func (e *testEnv) createFolder(t *testing.T, userID int64, name string, parentID *int64) *modelsDoc.Folder {
	t.Helper()
	folder, err := e.folders.CreateFolder(context.Background(), &docsysSvc.CreateFolderRequest{
		UserID:         userID,
		Name:           name,
		ParentFolderID: parentID,
	})
	require.NoError(t, err)
	return folder
}

func (e *testEnv) createDocument(t *testing.T, userID int64, title string, folderID *int64) *modelsDoc.Document {
	t.Helper()
	doc, err := e.documents.CreateDocument(context.Background(), &docsysSvc.CreateDocumentRequest{
		UserID:   userID,
		Title:    title,
		FolderID: folderID,
	})
	require.NoError(t, err)
	return doc
}

func (e *testEnv) createBlock(t *testing.T, userID, documentID int64, content string) *modelsDoc.Block {
	t.Helper()
	block, err := e.blocks.CreateBlock(context.Background(), userID, &docsysSvc.CreateBlockRequest{
		DocumentID: documentID,
		Content:    content,
	})
	require.NoError(t, err)
	return block
}

func blockIDs(blocks []modelsDoc.Block) []int64 {
	ids := make([]int64, len(blocks))
	for i, b := range blocks {
		ids[i] = b.ID
	}
	return ids
}

func ptr[T any](v T) *T {
	return &v
}
