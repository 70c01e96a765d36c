// Package backend opens the configured storage backend and exposes its
// repositories behind the domain interfaces.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"notebook/internal/config"
	"notebook/internal/domain/repositories"
	docsysRepo "notebook/internal/domain/repositories/docsystem"
	"notebook/internal/repository/embedded"
	"notebook/internal/repository/postgres"
	postgresDocsys "notebook/internal/repository/postgres/docsystem"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Backend is an opened storage backend
type Backend struct {
	Name      string
	Users     repositories.UserRepository
	Folders   docsysRepo.FolderRepository
	Documents docsysRepo.DocumentRepository
	Blocks    docsysRepo.BlockRepository
	TxManager repositories.TransactionManager

	// postgres
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	prefix string

	// badger
	store *embedded.Store
}

// Open connects to the backend named by cfg.StorageBackend
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		return openPostgres(ctx, cfg, logger)
	case config.StorageBadger:
		return openEmbedded(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for the %s backend", config.StoragePostgres)
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}

	logger.Info("database connected", "max_conns", 25, "min_conns", 5, "table_prefix", cfg.TablePrefix)

	return &Backend{
		Name:      config.StoragePostgres,
		Users:     postgres.NewUserRepository(repoConfig),
		Folders:   postgresDocsys.NewFolderRepository(repoConfig),
		Documents: postgresDocsys.NewDocumentRepository(repoConfig),
		Blocks:    postgresDocsys.NewBlockRepository(repoConfig),
		TxManager: postgres.NewTransactionManager(pool, logger),
		pool:      pool,
		tables:    tables,
		prefix:    cfg.TablePrefix,
	}, nil
}

func openEmbedded(cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	store, err := embedded.Open(embedded.Options{Dir: cfg.BadgerDir, Logger: logger})
	if err != nil {
		return nil, err
	}

	logger.Info("embedded store opened", "dir", cfg.BadgerDir)

	return &Backend{
		Name:      config.StorageBadger,
		Users:     embedded.NewUserRepository(store),
		Folders:   embedded.NewFolderRepository(store),
		Documents: embedded.NewDocumentRepository(store),
		Blocks:    embedded.NewBlockRepository(store),
		TxManager: embedded.NewTransactionManager(store),
		store:     store,
	}, nil
}

// EnsureSchema creates missing tables and indexes. The embedded store has
// no schema.
func (b *Backend) EnsureSchema(ctx context.Context) error {
	if b.pool == nil {
		return nil
	}
	return postgres.EnsureSchema(ctx, b.pool, b.tables, b.prefix)
}

// DropSchema drops every table, or empties the embedded store
func (b *Backend) DropSchema(ctx context.Context) error {
	if b.pool == nil {
		return b.store.ClearData()
	}
	return postgres.DropSchema(ctx, b.pool, b.tables)
}

// ClearData deletes all users and, by cascade, everything they own
func (b *Backend) ClearData(ctx context.Context) error {
	if b.pool == nil {
		return b.store.ClearData()
	}
	return postgres.ClearData(ctx, b.pool, b.tables)
}

// Close releases the pool or database handle
func (b *Backend) Close() error {
	if b.pool != nil {
		b.pool.Close()
		return nil
	}
	return b.store.Close()
}
