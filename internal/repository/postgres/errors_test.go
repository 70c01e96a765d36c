package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"notebook/internal/domain"
)

func TestConstraintErr(t *testing.T) {
	folderID := int64(7)
	ownerID := int64(3)
	refs := map[string]*int64{"user_id": &ownerID, "folder_id": &folderID}

	folderFK := &pgconn.PgError{Code: "23503", ConstraintName: "test_documents_folder_id_fkey"}
	ownerFK := &pgconn.PgError{Code: "23503", ConstraintName: "test_documents_user_id_fkey"}
	check := &pgconn.PgError{Code: "23514", ConstraintName: "test_blocks_order_index_check"}

	tests := []struct {
		name    string
		refs    map[string]*int64
		err     error
		want    error
		wantMsg string
	}{
		{"folder reference", refs, folderFK, domain.ErrReferenceInvalid, "invalid folder_id 7"},
		{"owner reference", refs, ownerFK, domain.ErrReferenceInvalid, "invalid user_id 3"},
		{"wrapped reference", refs, fmt.Errorf("insert: %w", folderFK), domain.ErrReferenceInvalid, "invalid folder_id 7"},
		{"unlisted column", map[string]*int64{"user_id": &ownerID}, folderFK, domain.ErrStorage, ""},
		{"nil reference id", map[string]*int64{"folder_id": nil}, folderFK, domain.ErrStorage, ""},
		{"check violation", nil, check, domain.ErrValidation, ""},
		{"other driver error", refs, errors.New("connection reset"), domain.ErrStorage, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ConstraintErr("create document", tt.err, tt.refs)
			assert.ErrorIs(t, err, tt.want)
			if tt.wantMsg != "" {
				assert.EqualError(t, err, tt.wantMsg)
			}
		})
	}
}

func TestUniqueErr(t *testing.T) {
	values := map[string]string{"username": "alice", "email": "alice@example.com"}

	tests := []struct {
		name      string
		err       error
		want      error
		wantField string
	}{
		{"username taken", &pgconn.PgError{Code: "23505", ConstraintName: "test_users_username_key"}, domain.ErrConflict, "username"},
		{"email taken", fmt.Errorf("update: %w", &pgconn.PgError{Code: "23505", ConstraintName: "test_users_email_key"}), domain.ErrConflict, "email"},
		{"unknown unique constraint", &pgconn.PgError{Code: "23505", ConstraintName: "test_users_pkey"}, domain.ErrStorage, ""},
		{"other driver error", errors.New("connection reset"), domain.ErrStorage, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := UniqueErr("update user", "user", tt.err, values)
			assert.ErrorIs(t, err, tt.want)
			if tt.wantField != "" {
				var conflict *domain.ConflictError
				assert.ErrorAs(t, err, &conflict)
				assert.Equal(t, tt.wantField, conflict.Field)
				assert.Equal(t, values[tt.wantField], conflict.Value)
			}
		})
	}
}

func TestNotFoundOr(t *testing.T) {
	err := NotFoundOr("get folder", "folder", 3, pgx.ErrNoRows)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "folder 3: not found")

	err = NotFoundOr("get folder", "folder", 3, errors.New("boom"))
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.EqualError(t, err, "get folder 3: boom")
}

func TestStorageErrKeepsDomainErrors(t *testing.T) {
	notFound := domain.NewNotFound("block", 1)
	assert.Same(t, notFound, StorageErr("delete block", notFound))

	wrapped := StorageErr("delete block", errors.New("boom"))
	assert.ErrorIs(t, wrapped, domain.ErrStorage)
}

func TestNewTableNames(t *testing.T) {
	tables := NewTableNames("test_")
	assert.Equal(t, "test_users", tables.Users)
	assert.Equal(t, "test_folders", tables.Folders)
	assert.Equal(t, "test_documents", tables.Documents)
	assert.Equal(t, "test_blocks", tables.Blocks)
}
