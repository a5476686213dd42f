package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Price is a money amount in a specific currency.
type Price struct {
	Amount   decimal.Decimal
	Currency string
}

// NewPrice parses a decimal amount string as returned by the Printful API.
func NewPrice(amount, currency string) (Price, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Price{}, fmt.Errorf("invalid price amount %q: %w", amount, err)
	}
	return Price{Amount: d, Currency: currency}, nil
}

// IsZero reports whether the price is the zero value.
func (p Price) IsZero() bool {
	return p.Currency == "" && p.Amount.IsZero()
}

// Equal reports whether two prices have the same amount and currency.
func (p Price) Equal(other Price) bool {
	return p.Currency == other.Currency && p.Amount.Equal(other.Amount)
}

func (p Price) String() string {
	return p.Amount.String() + " " + p.Currency
}
