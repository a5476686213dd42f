package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/scottsawyer/commerce-printful/internal/config"
	"github.com/scottsawyer/commerce-printful/internal/printful"
	pkgerrors "github.com/scottsawyer/commerce-printful/pkg/errors"
)

// WebhookPath is the inbound webhook endpoint registered with Printful.
const WebhookPath = "/printful/webhooks"

// StoreService exposes per-store administrative operations: credential
// validation and remote webhook reconfiguration.
type StoreService struct {
	client *printful.Client
	cfg    config.PrintfulConfig
	logger *zap.Logger
}

// NewStoreService creates a new store service
func NewStoreService(client *printful.Client, cfg config.PrintfulConfig, logger *zap.Logger) *StoreService {
	return &StoreService{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// ValidateConnection checks the store's API key by fetching the remote
// store info. An API error here blocks the triggering admin action.
func (s *StoreService) ValidateConnection(ctx context.Context, printfulStoreID string) (*printful.StoreInfo, error) {
	store, ok := s.cfg.StoreByID(printfulStoreID)
	if !ok {
		return nil, &pkgerrors.ErrConfiguration{Message: fmt.Sprintf("unknown printful store %q", printfulStoreID)}
	}
	return s.client.WithKey(store.APIKey).StoreInfo(ctx)
}

// SyncWebhooks replaces the store's remote webhook configuration with the
// configured event types, pointing at this service's public callback URL.
// With no event types enabled the remote configuration is only removed.
func (s *StoreService) SyncWebhooks(ctx context.Context, printfulStoreID string) error {
	store, ok := s.cfg.StoreByID(printfulStoreID)
	if !ok {
		return &pkgerrors.ErrConfiguration{Message: fmt.Sprintf("unknown printful store %q", printfulStoreID)}
	}
	if s.cfg.PublicURL == "" {
		return &pkgerrors.ErrConfiguration{Message: "PUBLIC_URL is required to register webhooks"}
	}

	client := s.client.WithKey(store.APIKey)
	if err := client.UnsetWebhooks(ctx); err != nil {
		return err
	}
	if len(store.Webhooks) == 0 {
		return nil
	}

	url := strings.TrimSuffix(s.cfg.PublicURL, "/") + WebhookPath
	if err := client.SetWebhooks(ctx, printful.WebhookConfig{
		URL:   url,
		Types: store.Webhooks,
	}); err != nil {
		return err
	}

	s.logger.Info("Registered Printful webhooks",
		zap.String("printful_store", store.ID),
		zap.String("url", url),
		zap.Strings("types", store.Webhooks),
	)
	return nil
}
