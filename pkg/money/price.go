package money

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/threadz-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/threadz-backend/pkg/errors"
)

var oneHundred = decimal.NewFromInt(100)

// Price is an amount tagged with the currency it is denominated in. Arithmetic
// across currencies is a caller error and is surfaced, never coerced.
type Price struct {
	Amount   decimal.Decimal
	Currency enums.Currency
}

// New builds a price from an amount and currency.
func New(amount decimal.Decimal, currency enums.Currency) Price {
	return Price{Amount: amount, Currency: currency}
}

// FromString parses a decimal string into a price.
func FromString(amount string, currency enums.Currency) (Price, error) {
	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return Price{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("invalid amount %q", amount))
	}
	return Price{Amount: dec, Currency: currency}, nil
}

// Zero returns the zero price in the provided currency.
func Zero(currency enums.Currency) Price {
	return Price{Amount: decimal.Zero, Currency: currency}
}

// Add returns p + other. Both prices must share a currency.
func (p Price) Add(other Price) (Price, error) {
	if err := p.ensureSameCurrency(other); err != nil {
		return Price{}, err
	}
	return Price{Amount: p.Amount.Add(other.Amount), Currency: p.Currency}, nil
}

// Sub returns p - other. Both prices must share a currency. The result may be
// negative; flooring is left to callers that need it.
func (p Price) Sub(other Price) (Price, error) {
	if err := p.ensureSameCurrency(other); err != nil {
		return Price{}, err
	}
	return Price{Amount: p.Amount.Sub(other.Amount), Currency: p.Currency}, nil
}

// PercentOf returns rate percent of p, i.e. p * rate / 100.
func (p Price) PercentOf(rate decimal.Decimal) Price {
	return Price{Amount: p.Amount.Mul(rate).Div(oneHundred), Currency: p.Currency}
}

// Equal reports whether both amount and currency match.
func (p Price) Equal(other Price) bool {
	return p.Currency == other.Currency && p.Amount.Equal(other.Amount)
}

// IsNegative reports whether the amount is below zero.
func (p Price) IsNegative() bool {
	return p.Amount.IsNegative()
}

// String renders the price for logs and error details.
func (p Price) String() string {
	return fmt.Sprintf("%s %s", p.Amount.String(), p.Currency)
}

func (p Price) ensureSameCurrency(other Price) error {
	if p.Currency == other.Currency {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeCurrencyMismatch,
		fmt.Sprintf("cannot combine %s with %s", p.Currency, other.Currency)).
		WithDetails(map[string]any{"left": p.Currency.String(), "right": other.Currency.String()})
}
