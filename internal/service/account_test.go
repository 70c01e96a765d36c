package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"notebook/internal/domain"
	"notebook/internal/domain/models"
	modelsDoc "notebook/internal/domain/models/docsystem"
	"notebook/internal/domain/services"
	"notebook/internal/repository/embedded"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := embedded.Open(embedded.Options{InMemory: true, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	userRepo := embedded.NewUserRepository(store)
	folderRepo := embedded.NewFolderRepository(store)
	docRepo := embedded.NewDocumentRepository(store)
	blockRepo := embedded.NewBlockRepository(store)
	svc := NewAccountService(userRepo, embedded.NewTransactionManager(store), logger)

	alice := &models.User{Username: "alice", Email: "alice@example.com"}
	bob := &models.User{Username: "bob", Email: "bob@example.com"}
	require.NoError(t, userRepo.Create(ctx, alice))
	require.NoError(t, userRepo.Create(ctx, bob))

	folder := &modelsDoc.Folder{OwnerID: alice.ID, Name: "Work"}
	require.NoError(t, folderRepo.Create(ctx, folder))
	doc := &modelsDoc.Document{OwnerID: alice.ID, Title: "Plan", FolderID: &folder.ID}
	require.NoError(t, docRepo.Create(ctx, doc))
	block := &modelsDoc.Block{DocumentID: doc.ID, Content: "hello", BlockType: modelsDoc.BlockTypeParagraph}
	require.NoError(t, blockRepo.Create(ctx, block))

	bobsDoc := &modelsDoc.Document{OwnerID: bob.ID, Title: "Bob's"}
	require.NoError(t, docRepo.Create(ctx, bobsDoc))

	t.Run("get account", func(t *testing.T) {
		got, err := svc.GetAccount(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, "alice@example.com", got.Email)
	})

	t.Run("delete cascades to owned content", func(t *testing.T) {
		require.NoError(t, svc.DeleteAccount(ctx, alice.ID))

		_, err := svc.GetAccount(ctx, alice.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = folderRepo.GetByID(ctx, folder.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = docRepo.GetByID(ctx, doc.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = blockRepo.GetByID(ctx, block.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("other users untouched", func(t *testing.T) {
		_, err := svc.GetAccount(ctx, bob.ID)
		require.NoError(t, err)
		_, err = docRepo.GetByID(ctx, bobsDoc.ID)
		require.NoError(t, err)
	})

	t.Run("delete missing account", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteAccount(ctx, alice.ID), domain.ErrNotFound)
	})
}

func strPtr(s string) *string { return &s }

func TestAccountProfile(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := embedded.Open(embedded.Options{InMemory: true, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := NewAccountService(embedded.NewUserRepository(store), embedded.NewTransactionManager(store), logger)

	alice, err := svc.CreateAccount(ctx, &services.CreateAccountRequest{Username: " alice ", Email: " Alice@Example.COM "})
	require.NoError(t, err)
	assert.Equal(t, "alice", alice.Username)
	assert.Equal(t, "alice@example.com", alice.Email)

	bob, err := svc.CreateAccount(ctx, &services.CreateAccountRequest{Username: "bob", Email: "bob@example.com"})
	require.NoError(t, err)

	t.Run("create rejects taken username", func(t *testing.T) {
		_, err := svc.CreateAccount(ctx, &services.CreateAccountRequest{Username: "bob", Email: "other@example.com"})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("create validates", func(t *testing.T) {
		_, err := svc.CreateAccount(ctx, &services.CreateAccountRequest{Username: "al", Email: "not-an-email"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	tests := []struct {
		name string
		req  services.UpdateAccountRequest
		want error
	}{
		{"no fields", services.UpdateAccountRequest{}, domain.ErrValidation},
		{"username too short", services.UpdateAccountRequest{Username: strPtr("ab")}, domain.ErrValidation},
		{"username with spaces", services.UpdateAccountRequest{Username: strPtr("a b c")}, domain.ErrValidation},
		{"blank username", services.UpdateAccountRequest{Username: strPtr("   ")}, domain.ErrValidation},
		{"malformed email", services.UpdateAccountRequest{Email: strPtr("alice@")}, domain.ErrValidation},
		{"username taken", services.UpdateAccountRequest{Username: strPtr("bob")}, domain.ErrConflict},
		{"email taken in other case", services.UpdateAccountRequest{Email: strPtr("BOB@example.com")}, domain.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateAccount(ctx, alice.ID, &tt.req)
			assert.ErrorIs(t, err, tt.want)

			got, err := svc.GetAccount(ctx, alice.ID)
			require.NoError(t, err)
			assert.Equal(t, "alice", got.Username)
			assert.Equal(t, "alice@example.com", got.Email)
		})
	}

	t.Run("rename frees the old username", func(t *testing.T) {
		updated, err := svc.UpdateAccount(ctx, alice.ID, &services.UpdateAccountRequest{
			Username: strPtr("alice_w"),
			Email:    strPtr("ALICE.W@example.com"),
		})
		require.NoError(t, err)
		assert.Equal(t, "alice_w", updated.Username)
		assert.Equal(t, "alice.w@example.com", updated.Email)

		_, err = svc.UpdateAccount(ctx, bob.ID, &services.UpdateAccountRequest{Username: strPtr("alice")})
		require.NoError(t, err)
	})

	t.Run("keeping own values is not a conflict", func(t *testing.T) {
		_, err := svc.UpdateAccount(ctx, bob.ID, &services.UpdateAccountRequest{Email: strPtr("bob@example.com")})
		require.NoError(t, err)
	})

	t.Run("update missing account", func(t *testing.T) {
		_, err := svc.UpdateAccount(ctx, 999, &services.UpdateAccountRequest{Username: strPtr("ghost")})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		users, err := svc.ListAccounts(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, []string{"alice_w", "alice"}, []string{users[0].Username, users[1].Username})
	})
}
