package decimal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Rate is an annual effective rate (interest or growth) held as an exact decimal
// so that configuration values such as 0.04 are not perturbed on load.
type Rate struct {
	decimal.Decimal
}

// NewRate creates a Rate from a float64
func NewRate(value float64) Rate {
	return Rate{decimal.NewFromFloat(value)}
}

// NewRateFromString parses a Rate such as "0.04"
func NewRateFromString(value string) (Rate, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Rate{}, fmt.Errorf("invalid rate %q: %w", value, err)
	}
	return Rate{d}, nil
}

// Float64 returns the nearest float64.
func (r Rate) Float64() float64 {
	return r.Decimal.InexactFloat64()
}

// DiscountFactor returns v = 1/(1+i).
func (r Rate) DiscountFactor() decimal.Decimal {
	return one.DivRound(one.Add(r.Decimal), 16)
}

// DiscountRate returns d = i/(1+i).
func (r Rate) DiscountRate() decimal.Decimal {
	return r.Decimal.DivRound(one.Add(r.Decimal), 16)
}

// GrowthAdjusted returns (1+i)/(1+g) - 1, the rate that discounts a
// payment stream growing geometrically at g as if it were level.
func (r Rate) GrowthAdjusted(g Rate) Rate {
	return Rate{one.Add(r.Decimal).DivRound(one.Add(g.Decimal), 16).Sub(one)}
}

// AboveMinusOne reports whether 1+r is positive, the domain of a discount rate.
func (r Rate) AboveMinusOne() bool {
	return one.Add(r.Decimal).IsPositive()
}

// Percent formats the rate as a percentage with two decimals.
func (r Rate) Percent() string {
	return r.Decimal.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
