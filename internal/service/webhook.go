package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scottsawyer/commerce-printful/internal/printful"
	"github.com/scottsawyer/commerce-printful/internal/repository"
)

// WebhookProcessor dispatches inbound Printful webhook events to their
// handlers.
type WebhookProcessor struct {
	repos    *repository.Repositories
	logger   *zap.Logger
	handlers map[string]func(context.Context, printful.WebhookEvent) error
}

// NewWebhookProcessor creates a new webhook processor
func NewWebhookProcessor(repos *repository.Repositories, logger *zap.Logger) *WebhookProcessor {
	p := &WebhookProcessor{
		repos:  repos,
		logger: logger,
	}
	p.handlers = map[string]func(context.Context, printful.WebhookEvent) error{
		printful.WebhookPackageShipped: p.packageShipped,
	}
	return p
}

// Supported reports whether the event type has a handler.
func (p *WebhookProcessor) Supported(eventType string) bool {
	_, ok := p.handlers[eventType]
	return ok
}

// Process handles one webhook event. Unrecognized event types are
// rejected.
func (p *WebhookProcessor) Process(ctx context.Context, event printful.WebhookEvent) error {
	handler, ok := p.handlers[event.Type]
	if !ok {
		return fmt.Errorf("unsupported event type %q", event.Type)
	}
	return handler(ctx, event)
}

// packageShipped records tracking number, shipping service and shipped
// time on the local shipment referenced by the order's external ID.
func (p *WebhookProcessor) packageShipped(ctx context.Context, event printful.WebhookEvent) error {
	order, shipped := event.Data.Order, event.Data.Shipment
	if order == nil || shipped == nil {
		return fmt.Errorf("package_shipped event missing order or shipment data")
	}

	shipmentID, err := uuid.Parse(order.ExternalID)
	if err != nil {
		return fmt.Errorf("invalid shipment reference %q: %w", order.ExternalID, err)
	}

	if _, err := p.repos.Shipment.GetByID(ctx, shipmentID); err != nil {
		// A shipment we don't know about is not an error worth retrying
		// on Printful's side.
		p.logger.Warn("Ignoring package_shipped for unknown shipment",
			zap.String("shipment", order.ExternalID),
		)
		return nil
	}

	shippedAt := time.Unix(shipped.Created, 0)
	if err := p.repos.Shipment.UpdateTracking(ctx, shipmentID, shipped.TrackingNumber, shipped.Service, shippedAt); err != nil {
		return err
	}

	p.logger.Info("Shipment marked shipped",
		zap.String("shipment", shipmentID.String()),
		zap.String("tracking_number", shipped.TrackingNumber),
		zap.String("service", shipped.Service),
	)
	return nil
}
