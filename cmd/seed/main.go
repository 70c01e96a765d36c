package main

import (
	"context"
	"flag"
	"log"

	"notebook/internal/blocktypes"
	"notebook/internal/config"
	"notebook/internal/repository/backend"
	"notebook/internal/seed"
	"notebook/internal/service/auth"
	serviceDocsys "notebook/internal/service/docsystem"

	"github.com/joho/godotenv"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed data")
	clearData := flag.Bool("clear-data", false, "Delete all users and their content (keep schema)")
	fixtureName := flag.String("fixture", "demo", "Embedded fixture to seed")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: cannot run --drop-tables or --clear-data in production")
	}

	logger, logFile, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	logger.Info("seed starting",
		"environment", cfg.Environment,
		"storage_backend", cfg.StorageBackend,
		"table_prefix", cfg.TablePrefix,
	)

	ctx := context.Background()
	store, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open storage backend: %v", err)
	}
	defer store.Close()

	if *dropTables {
		if err := store.DropSchema(ctx); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		logger.Info("tables dropped")
	}

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	logger.Info("schema ready")

	if *schemaOnly {
		return
	}

	if *clearData {
		if err := store.ClearData(ctx); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		logger.Info("data cleared")
		return
	}

	fixture, err := seed.LoadFixture(*fixtureName)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}

	guard := auth.NewOwnerBasedGuard(logger)
	ordering := serviceDocsys.NewOrderingEngine(store.Blocks, logger)
	seeder := seed.NewWorkspaceSeeder(
		store.Users,
		serviceDocsys.NewFolderService(store.Folders, store.Documents, store.TxManager, guard, logger),
		serviceDocsys.NewDocumentService(store.Documents, store.Folders, store.TxManager, guard, logger),
		serviceDocsys.NewBlockService(store.Blocks, store.Documents, ordering, blocktypes.MustNewRegistry(), store.TxManager, guard, logger),
		logger,
	)

	result, err := seeder.Seed(ctx, fixture)
	if err != nil {
		log.Fatalf("Failed to seed workspace: %v", err)
	}

	logger.Info("seeding complete",
		"user_id", result.UserID,
		"folders", result.Folders,
		"documents", result.Documents,
		"blocks", result.Blocks,
	)
}
