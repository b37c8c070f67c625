package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/yangart/storefront/internal/auth"
	"github.com/yangart/storefront/internal/config"
	"github.com/yangart/storefront/internal/domain"
	"github.com/yangart/storefront/internal/repository/postgres"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run cmd/create-admin/main.go <username> <password>")
		fmt.Println("Example: go run cmd/create-admin/main.go \"owner\" \"s3cret-pass\"")
		os.Exit(1)
	}

	username := os.Args[1]
	password := os.Args[2]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(context.Background(), db); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to migrate schema: %v\n", err)
		os.Exit(1)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash password: %v\n", err)
		os.Exit(1)
	}

	repos := postgres.NewRepositories(db, logger)

	admin := &domain.Admin{
		Username:     username,
		PasswordHash: passwordHash,
	}

	if err := repos.Admin.Create(context.Background(), admin); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Admin created successfully!\n\n")
	fmt.Printf("Admin ID: %s\n", admin.ID.String())
	fmt.Printf("Username: %s\n", admin.Username)
	fmt.Printf("\nLog in with POST /admin/login to obtain an admin token.\n")
}
