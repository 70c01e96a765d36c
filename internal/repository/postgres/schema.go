package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates tables and indexes if they don't exist.
// Every foreign key is indexed; the cascades here are what make a single
// DELETE remove a whole subtree atomically.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, tablePrefix string) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + tables.Users + ` (
			id BIGSERIAL PRIMARY KEY,
			username VARCHAR(255) NOT NULL UNIQUE,
			email VARCHAR(255) NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Folders + ` (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			parent_folder_id BIGINT REFERENCES ` + tables.Folders + `(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Documents + ` (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			folder_id BIGINT REFERENCES ` + tables.Folders + `(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Blocks + ` (
			id BIGSERIAL PRIMARY KEY,
			document_id BIGINT NOT NULL REFERENCES ` + tables.Documents + `(id) ON DELETE CASCADE,
			content TEXT NOT NULL DEFAULT '',
			block_type VARCHAR(32) NOT NULL,
			order_index INTEGER NOT NULL CHECK (order_index >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_user_id ON ` + tables.Folders + `(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_parent_folder_id ON ` + tables.Folders + `(parent_folder_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `documents_user_id ON ` + tables.Documents + `(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `documents_folder_id ON ` + tables.Documents + `(folder_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `blocks_document_id ON ` + tables.Blocks + `(document_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `blocks_document_order ON ` + tables.Blocks + `(document_id, order_index)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}

// DropSchema drops all tables in reverse dependency order
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range []string{tables.Blocks, tables.Documents, tables.Folders, tables.Users} {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}

// ClearData removes every row while keeping the schema.
// Deleting users is enough; the cascades take the rest.
func ClearData(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	if _, err := pool.Exec(ctx, "DELETE FROM "+tables.Users); err != nil {
		return fmt.Errorf("clear data: %w", err)
	}
	return nil
}
