package service

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/scottsawyer/commerce-printful/internal/config"
	"github.com/scottsawyer/commerce-printful/internal/domain"
	"github.com/scottsawyer/commerce-printful/internal/printful"
	"github.com/scottsawyer/commerce-printful/internal/repository"
	pkgerrors "github.com/scottsawyer/commerce-printful/pkg/errors"
)

// PrintfulShippingMethod identifies shipments fulfilled by Printful.
const PrintfulShippingMethod = "printful_shipping"

// OrderIntegrator submits paid orders to Printful for fulfillment, one
// request per Printful shipment.
type OrderIntegrator struct {
	client   *printful.Client
	cfg      config.PrintfulConfig
	repos    *repository.Repositories
	builder  *payloadBuilder
	exchange CurrencyExchanger
	logger   *zap.Logger
}

// NewOrderIntegrator creates a new order integrator
func NewOrderIntegrator(
	client *printful.Client,
	cfg config.PrintfulConfig,
	repos *repository.Repositories,
	exchange CurrencyExchanger,
	logger *zap.Logger,
) *OrderIntegrator {
	return &OrderIntegrator{
		client:   client,
		cfg:      cfg,
		repos:    repos,
		builder:  &payloadBuilder{repos: repos},
		exchange: exchange,
		logger:   logger,
	}
}

// CreateOrder builds and submits one fulfillment request per shipment of
// the order that uses the Printful shipping method. Shipments are
// processed independently: a failed submission is logged with its full
// request diagnostics and the remaining shipments continue.
func (s *OrderIntegrator) CreateOrder(ctx context.Context, order *domain.Order) {
	for _, shipment := range order.Shipments {
		if shipment.ShippingMethod != PrintfulShippingMethod {
			continue
		}

		if err := s.createShipmentOrder(ctx, order, shipment); err != nil {
			fields := []zap.Field{
				zap.String("order", order.OrderNumber),
				zap.String("shipment", shipment.ID.String()),
				zap.Error(err),
			}
			var apiErr *pkgerrors.ErrAPI
			if stderrors.As(err, &apiErr) {
				fields = append(fields, zap.String("details", apiErr.FullInfo()))
			}
			s.logger.Error("Couldn't create Printful order", fields...)
		}
	}
}

func (s *OrderIntegrator) createShipmentOrder(ctx context.Context, order *domain.Order, shipment domain.Shipment) error {
	payload, err := s.builder.build(ctx, order, shipment, true)
	if err != nil {
		return err
	}
	if payload == nil || len(payload.Items) == 0 {
		// Nothing for Printful to fulfill on this shipment.
		return nil
	}

	store, ok := s.cfg.StoreByBundle(payload.ProductBundle)
	if !ok {
		return &pkgerrors.ErrConfiguration{Message: "no printful store bound to product bundle " + payload.ProductBundle}
	}
	if !store.SyncOrders {
		return nil
	}

	items, err := s.convertItemPrices(ctx, payload.Items, order.Currency, store.Currency)
	if err != nil {
		return err
	}

	req := &printful.OrderRequest{
		// The shipment ID correlates resubmissions of the same shipment
		// so Printful updates the existing order instead of duplicating.
		ExternalID: shipment.ID.String(),
		Recipient:  payload.Recipient,
		Items:      items,
		Shipping:   shipment.ShippingService,
	}

	client := s.client.WithKey(store.APIKey)
	result, err := client.CreateOrder(ctx, req, !store.DraftOrders)
	if err != nil {
		return err
	}

	s.logger.Info("Created Printful order",
		zap.String("order", order.OrderNumber),
		zap.String("shipment", shipment.ID.String()),
		zap.Int64("printful_order", result.ID),
		zap.String("status", result.Status),
	)
	return nil
}

// convertItemPrices rewrites item retail prices into the store's billing
// currency when it differs from the order currency.
func (s *OrderIntegrator) convertItemPrices(ctx context.Context, items []printful.OrderItem, orderCurrency, storeCurrency string) ([]printful.OrderItem, error) {
	if storeCurrency == "" || storeCurrency == orderCurrency {
		return items, nil
	}

	converted := make([]printful.OrderItem, len(items))
	for i, item := range items {
		price, err := domain.NewPrice(item.RetailPrice, orderCurrency)
		if err != nil {
			return nil, err
		}
		exchanged, err := s.exchange.Convert(ctx, price, storeCurrency)
		if err != nil {
			return nil, err
		}
		item.RetailPrice = exchanged.Amount.StringFixed(2)
		converted[i] = item
	}
	return converted, nil
}
