package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/scottsawyer/commerce-printful/internal/api"
	"github.com/scottsawyer/commerce-printful/internal/assets"
	"github.com/scottsawyer/commerce-printful/internal/config"
	"github.com/scottsawyer/commerce-printful/internal/printful"
	"github.com/scottsawyer/commerce-printful/internal/repository/postgres"
	"github.com/scottsawyer/commerce-printful/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Connect to the database
	db, err := postgres.Open(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	client := printful.NewClient(cfg.Printful.BaseURL, logger)
	assetStore := assets.NewStore(cfg.Assets, logger)

	mapper := service.NewAttributeMapper(repos, assetStore, logger)
	exchange := service.IdentityExchanger{}
	services := api.Services{
		ProductIntegrator: service.NewProductIntegrator(client, cfg.Printful, repos, mapper, logger),
		OrderIntegrator:   service.NewOrderIntegrator(client, cfg.Printful, repos, exchange, logger),
		ShippingRates:     service.NewShippingRateService(client, cfg.Printful, repos, exchange, logger),
		Stores:            service.NewStoreService(client, cfg.Printful, logger),
		Webhooks:          service.NewWebhookProcessor(repos, logger),
	}

	router := api.NewRouter(cfg, services, logger)

	logger.Info("Starting server", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
