package service

import (
	"context"
	stderrors "errors"
	"sort"

	"go.uber.org/zap"

	"github.com/scottsawyer/commerce-printful/internal/config"
	"github.com/scottsawyer/commerce-printful/internal/domain"
	"github.com/scottsawyer/commerce-printful/internal/printful"
	"github.com/scottsawyer/commerce-printful/internal/repository"
	pkgerrors "github.com/scottsawyer/commerce-printful/pkg/errors"
)

// ShippingRateService fetches Printful shipping quotes for a shipment
// during checkout.
type ShippingRateService struct {
	client   *printful.Client
	cfg      config.PrintfulConfig
	builder  *payloadBuilder
	exchange CurrencyExchanger
	logger   *zap.Logger
}

// NewShippingRateService creates a new shipping rate service
func NewShippingRateService(
	client *printful.Client,
	cfg config.PrintfulConfig,
	repos *repository.Repositories,
	exchange CurrencyExchanger,
	logger *zap.Logger,
) *ShippingRateService {
	return &ShippingRateService{
		client:   client,
		cfg:      cfg,
		builder:  &payloadBuilder{repos: repos},
		exchange: exchange,
		logger:   logger,
	}
}

// CalculateRates returns the available shipping options sorted ascending
// by quoted amount. targetCurrency, when non-empty and different from the
// quoted currency, triggers conversion of each quote. An empty result
// means no rates are available; API failures, malformed quotes and
// unconvertible quotes are logged and degrade to that same empty result
// rather than failing checkout.
func (s *ShippingRateService) CalculateRates(ctx context.Context, order *domain.Order, shipment domain.Shipment, targetCurrency string) ([]domain.RateQuote, error) {
	if shipment.Address == nil {
		return nil, nil
	}

	payload, err := s.builder.build(ctx, order, shipment, false)
	if err != nil {
		return nil, err
	}
	if payload == nil || len(payload.Items) == 0 {
		return nil, nil
	}

	client := s.client
	if store, ok := s.cfg.StoreByBundle(payload.ProductBundle); ok {
		client = client.WithKey(store.APIKey)
	}

	options, err := client.ShippingRates(ctx, &printful.ShippingRateRequest{
		Recipient: payload.Recipient,
		Items:     payload.Items,
	})
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		var apiErr *pkgerrors.ErrAPI
		if stderrors.As(err, &apiErr) {
			fields = append(fields, zap.String("details", apiErr.FullInfo()))
		}
		s.logger.Error("Couldn't load shipping data", fields...)
		return nil, nil
	}

	rates := make([]domain.RateQuote, 0, len(options))
	for _, option := range options {
		price, err := domain.NewPrice(option.Rate, option.Currency)
		if err != nil {
			s.logger.Warn("Skipping malformed shipping rate",
				zap.String("service", option.ID),
				zap.Error(err),
			)
			continue
		}

		if targetCurrency != "" && targetCurrency != price.Currency {
			price, err = s.exchange.Convert(ctx, price, targetCurrency)
			if err != nil {
				s.logger.Warn("Skipping shipping rate, currency conversion failed",
					zap.String("service", option.ID),
					zap.Error(err),
				)
				continue
			}
		}

		rates = append(rates, domain.RateQuote{
			ServiceID:   option.ID,
			ServiceName: option.Name,
			Amount:      price,
		})
	}

	// Sort by price ASC, stable on input order for equal amounts.
	sort.SliceStable(rates, func(i, j int) bool {
		return rates[i].Amount.Amount.LessThan(rates[j].Amount.Amount)
	})

	return rates, nil
}
