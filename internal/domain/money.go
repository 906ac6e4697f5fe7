package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a caller does not name one.
const DefaultCurrency = "BRL"

const (
	// MaxAmountScale is the number of decimal places a stored amount keeps.
	MaxAmountScale = 2
	// MaxPriceIntegerDigits bounds a product price to fit NUMERIC(14, 2).
	MaxPriceIntegerDigits = 12
)

var maxPriceExclusive = decimal.New(1, MaxPriceIntegerDigits)

// Money is an immutable non-negative amount tied to a currency code.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney validates amount and currency. The currency code is trimmed and
// upper-cased. Amounts with more than two significant decimal places are
// rejected; trailing zeros such as 10.500 are accepted.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	if !amount.Equal(amount.Truncate(MaxAmountScale)) {
		return Money{}, ErrAmountPrecision
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return Money{}, ErrEmptyCurrency
	}
	return Money{amount: amount, currency: currency}, nil
}

// ValidatePriceAmount checks that amount can be stored as a product price.
// Aggregates such as stock value are not bound by the integer-digit limit.
func ValidatePriceAmount(amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(MaxAmountScale)) {
		return ErrAmountPrecision
	}
	if amount.Abs().GreaterThanOrEqual(maxPriceExclusive) {
		return ErrPriceTooLarge
	}
	return nil
}

// Zero returns a zero amount in currency.
func Zero(currency string) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

func (m Money) Amount() decimal.Decimal { return m.amount }

func (m Money) Currency() string { return m.currency }

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}

// Equal reports value equality; 10.0 BRL equals 10 BRL.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Add(other.amount), m.currency)
}

// Subtract fails when the result would be negative.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Sub(other.amount), m.currency)
}

// Multiply scales the amount by a non-negative integer factor.
func (m Money) Multiply(factor int) (Money, error) {
	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(factor))), m.currency)
}

func (m Money) GreaterThan(other Money) (bool, error) {
	if err := m.sameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.GreaterThan(other.amount), nil
}

func (m Money) LessThan(other Money) (bool, error) {
	if err := m.sameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.LessThan(other.amount), nil
}

func (m Money) sameCurrency(other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return nil
}
