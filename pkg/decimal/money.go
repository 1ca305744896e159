package decimal

import (
	"github.com/shopspring/decimal"
)

// Money represents a sum assured or benefit amount with exact decimal precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds the amount to cents
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Scale multiplies the amount by an actuarial factor such as an annuity or assurance value.
func (m Money) Scale(factor float64) Money {
	return Money{m.Decimal.Mul(decimal.NewFromFloat(factor))}
}

// IsPositive checks if the amount is positive
func (m Money) IsPositive() bool {
	return m.Decimal.IsPositive()
}

// String returns the amount fixed to two decimal places
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}
