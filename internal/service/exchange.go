package service

import (
	"context"

	"github.com/scottsawyer/commerce-printful/internal/domain"
)

// CurrencyExchanger converts a price into a target currency. Rate sourcing
// is outside this module; implementations typically wrap an exchange rate
// provider.
type CurrencyExchanger interface {
	Convert(ctx context.Context, price domain.Price, currency string) (domain.Price, error)
}

// IdentityExchanger relabels the currency without touching the amount.
// Stand-in for deployments that bill in a single currency.
type IdentityExchanger struct{}

func (IdentityExchanger) Convert(_ context.Context, price domain.Price, currency string) (domain.Price, error) {
	return domain.Price{Amount: price.Amount, Currency: currency}, nil
}
