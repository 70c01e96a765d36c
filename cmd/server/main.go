package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"notebook/internal/auth"
	"notebook/internal/blocktypes"
	"notebook/internal/config"
	"notebook/internal/handler"
	"notebook/internal/middleware"
	"notebook/internal/repository/backend"
	"notebook/internal/sanitizer"
	"notebook/internal/service"
	serviceAuth "notebook/internal/service/auth"
	serviceDocsys "notebook/internal/service/docsystem"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logger, logFile, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"storage_backend", cfg.StorageBackend,
	)

	// JWT verifier for bearer tokens issued by the identity provider
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	ctx := context.Background()
	store, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open storage backend: %v", err)
	}
	defer store.Close()

	if cfg.AutoMigrate {
		if err := store.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}
		logger.Info("schema ready", "backend", store.Name)
	}

	blockTypes, err := blocktypes.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load block types: %v", err)
	}
	logger.Info("block type registry initialized", "count", len(blockTypes.Names()))

	// Services
	guard := serviceAuth.NewOwnerBasedGuard(logger)
	ordering := serviceDocsys.NewOrderingEngine(store.Blocks, logger)
	folderService := serviceDocsys.NewFolderService(store.Folders, store.Documents, store.TxManager, guard, logger)
	docService := serviceDocsys.NewDocumentService(store.Documents, store.Folders, store.TxManager, guard, logger)
	blockService := serviceDocsys.NewBlockService(store.Blocks, store.Documents, ordering, blockTypes, store.TxManager, guard, logger)
	treeService := serviceDocsys.NewTreeService(store.Folders, store.Documents, store.TxManager, logger)
	accountService := service.NewAccountService(store.Users, store.TxManager, logger)

	// Handlers
	clean := sanitizer.New()
	handlers := &handler.Handlers{
		Folders:    handler.NewFolderHandler(folderService, clean, logger),
		Documents:  handler.NewDocumentHandler(docService, clean, logger),
		Blocks:     handler.NewBlockHandler(blockService, blockTypes, clean, logger),
		Tree:       handler.NewTreeHandler(treeService, logger),
		BlockTypes: handler.NewBlockTypesHandler(blockTypes),
		Account:    handler.NewAccountHandler(accountService, logger),
	}

	logger.Info("services initialized")

	// Build middleware chain
	var h http.Handler = handlers.Routes()

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestLogger → Recovery → Auth → Routes
	h = middleware.AuthMiddleware(jwtVerifier, logger)(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLogger(logger)(h)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
