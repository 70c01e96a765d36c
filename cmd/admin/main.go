package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"notebook/internal/admin"
	"notebook/internal/config"
	"notebook/internal/domain/services"
	"notebook/internal/repository/backend"
	"notebook/internal/service"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const usage = `usage:
  admin users list
  admin users create --username NAME --email ADDRESS
  admin users delete --id ID
  admin stats`

func main() {
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	_ = godotenv.Load()
	cfg := config.Load()

	logger, logFile, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	ctx := context.Background()
	store, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open storage backend: %v", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	accounts := service.NewAccountService(store.Users, store.TxManager, logger)
	reporter := admin.NewReporter(store.Users, store.Folders, store.Documents)

	switch os.Args[1] {
	case "users":
		if len(os.Args) < 3 {
			log.Fatal(usage)
		}
		err = runUsers(ctx, cfg, accounts, reporter, os.Args[2], os.Args[3:])
	case "stats":
		var stats *admin.Stats
		stats, err = reporter.Stats(ctx)
		if err == nil {
			err = printYAML(stats)
		}
	default:
		log.Fatal(usage)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func runUsers(
	ctx context.Context,
	cfg *config.Config,
	accounts services.AccountService,
	reporter *admin.Reporter,
	cmd string,
	args []string,
) error {
	switch cmd {
	case "list":
		rows, err := reporter.Users(ctx)
		if err != nil {
			return err
		}
		return printYAML(rows)

	case "create":
		fs := flag.NewFlagSet("users create", flag.ExitOnError)
		username := fs.String("username", "", "Username (3-50 letters, digits or underscores)")
		email := fs.String("email", "", "Email address")
		_ = fs.Parse(args)

		user, err := accounts.CreateAccount(ctx, &services.CreateAccountRequest{Username: *username, Email: *email})
		if err != nil {
			return err
		}
		return printYAML(admin.UserRow{ID: user.ID, Username: user.Username, Email: user.Email, CreatedAt: user.CreatedAt})

	case "delete":
		fs := flag.NewFlagSet("users delete", flag.ExitOnError)
		id := fs.Int64("id", 0, "User id")
		_ = fs.Parse(args)

		// SAFETY: account deletion cascades to all content
		if cfg.Environment == "prod" {
			return fmt.Errorf("BLOCKED: cannot delete users in production")
		}
		if *id <= 0 {
			return fmt.Errorf("--id is required")
		}
		return accounts.DeleteAccount(ctx, *id)

	default:
		return fmt.Errorf("unknown users command %q\n%s", cmd, usage)
	}
}

func printYAML(v interface{}) error {
	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	return enc.Encode(v)
}
