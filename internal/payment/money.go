package payment

import (
	"strings"
	"unicode/utf8"

	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
	"github.com/shopspring/decimal"
)

// Money is an immutable non-negative amount in a 3-letter currency.
type Money struct {
	amount   decimal.Decimal
	currency string
}

func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, domain.Validationf("amount cannot be negative")
	}
	code := strings.TrimSpace(currency)
	if utf8.RuneCountInString(code) != 3 {
		return Money{}, domain.Validationf("currency must be a valid 3-letter ISO currency code, got %q", currency)
	}
	return Money{amount: amount, currency: strings.ToUpper(code)}, nil
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }

// IsZero reports whether m is the zero value rather than a constructed amount.
func (m Money) IsZero() bool {
	return m.currency == ""
}

func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, domain.Validationf("cannot add money with different currencies: %s and %s", m.currency, other.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, domain.Validationf("cannot subtract money with different currencies: %s and %s", m.currency, other.currency)
	}
	if m.amount.LessThan(other.amount) {
		return Money{}, domain.Validationf("cannot subtract a larger amount from a smaller amount")
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.String() + " " + m.currency
}
