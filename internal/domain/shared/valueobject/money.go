package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency is specified
const DefaultCurrency = "AED"

// Money represents a monetary amount in a single currency.
// The zero value is 0 in the default currency. Money is immutable;
// arithmetic methods return new values.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney creates a money value from a decimal amount
func NewMoney(amount decimal.Decimal, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{amount: amount, currency: currency}
}

// NewMoneyFromFloat creates a money value from a float amount
func NewMoneyFromFloat(amount float64, currency string) Money {
	return NewMoney(decimal.NewFromFloat(amount), currency)
}

// NewMoneyFromString creates a money value from a decimal string
func NewMoneyFromString(amount string, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money amount %q: %w", amount, err)
	}
	return NewMoney(d, currency), nil
}

// ZeroMoney returns zero in the given currency
func ZeroMoney(currency string) Money {
	return NewMoney(decimal.Zero, currency)
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() string {
	if m.currency == "" {
		return DefaultCurrency
	}
	return m.currency
}

// Add returns the sum of two money values
func (m Money) Add(other Money) (Money, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.Currency()}, nil
}

// Subtract returns the difference of two money values
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.Currency()}, nil
}

// Multiply returns the money value scaled by a factor
func (m Money) Multiply(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor), currency: m.Currency()}
}

// CalculatePercentage returns the given percentage of the amount
func (m Money) CalculatePercentage(percent decimal.Decimal) Money {
	return Money{
		amount:   m.amount.Mul(percent).Div(decimal.NewFromInt(100)),
		currency: m.Currency(),
	}
}

// IsNegative reports whether the amount is below zero
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsZero reports whether the amount is exactly zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Equals reports whether two money values are equal in amount and currency
func (m Money) Equals(other Money) bool {
	return m.Currency() == other.Currency() && m.amount.Equal(other.amount)
}

// String formats the amount with its currency code
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.Currency())
}

func (m Money) assertSameCurrency(other Money) error {
	if m.Currency() != other.Currency() {
		return fmt.Errorf("currency mismatch: %s vs %s", m.Currency(), other.Currency())
	}
	return nil
}

// Value implements driver.Valuer, storing the bare decimal amount
func (m Money) Value() (driver.Value, error) {
	return m.amount.String(), nil
}

// Scan implements sql.Scanner
func (m *Money) Scan(value interface{}) error {
	if value == nil {
		m.amount = decimal.Zero
		m.currency = DefaultCurrency
		return nil
	}
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	m.amount = d
	m.currency = DefaultCurrency
	return nil
}

// MarshalJSON serializes the amount as a JSON number string
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.amount.String())
}

// UnmarshalJSON parses a JSON number or string amount
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		var f float64
		if err2 := json.Unmarshal(data, &f); err2 != nil {
			return err
		}
		m.amount = decimal.NewFromFloat(f)
		m.currency = DefaultCurrency
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return err
	}
	m.amount = d
	m.currency = DefaultCurrency
	return nil
}
