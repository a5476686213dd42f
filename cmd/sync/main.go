package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/scottsawyer/commerce-printful/internal/assets"
	"github.com/scottsawyer/commerce-printful/internal/config"
	"github.com/scottsawyer/commerce-printful/internal/printful"
	"github.com/scottsawyer/commerce-printful/internal/repository/postgres"
	"github.com/scottsawyer/commerce-printful/internal/service"
)

func main() {
	update := flag.Bool("update", false, "refresh variations that already exist locally")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: go run cmd/sync/main.go [-update] <printful-store-id>")
		os.Exit(1)
	}
	storeID := flag.Arg(0)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.Open(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	client := printful.NewClient(cfg.Printful.BaseURL, logger)
	mapper := service.NewAttributeMapper(repos, assets.NewStore(cfg.Assets, logger), logger)
	integrator := service.NewProductIntegrator(client, cfg.Printful, repos, mapper, logger)

	ctx := context.Background()
	cursor := service.SyncCursor{}
	for {
		cursor, err = integrator.SyncStep(ctx, storeID, *update, cursor)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Printful API connection error: %v\n", err)
			os.Exit(1)
		}
		if cursor.Done() {
			break
		}
		fmt.Printf("%s (%.0f%%)\n", cursor.Message(), cursor.Progress()*100)
	}

	fmt.Printf("Synchronized %d products.\n", cursor.Synced)
}
