package calculation

import (
	"math"

	"github.com/rpgo/lifetable/internal/domain"
	"github.com/rpgo/lifetable/pkg/decimal"
)

// CashFlowStructure shapes the amount paid in each period.
type CashFlowStructure int

const (
	// Flat pays 1 per year.
	Flat CashFlowStructure = iota
	// Increasing pays j+1 in policy year j.
	Increasing
	// Decreasing pays n-j in policy year j.
	Decreasing
)

// CashFlowTiming places annuity payments at the start or end of each period.
// Death benefits are always paid at the end of the 1/m period of death.
type CashFlowTiming int

const (
	InAdvance CashFlowTiming = iota
	InArrears
)

type cashFlowKind int

const (
	annuityFlow cashFlowKind = iota
	benefitFlow
)

// cashFlow picks one member of the insurance / annuity family.
type cashFlow struct {
	kind      cashFlowKind
	structure CashFlowStructure
	timing    CashFlowTiming
}

// Query is the parameter bundle shared by every insurance and annuity
// function. Zero values of M and Moment mean 1. I is the annual effective
// interest rate and G a geometric growth rate used only by the Geometric
// variants.
type Query struct {
	I        float64 `json:"i" validate:"rate"`
	X        int     `json:"x"`
	N        int     `json:"n" validate:"gte=0"`
	T        int     `json:"t" validate:"gte=0"`
	M        int     `json:"m" validate:"min=1"`
	Moment   int     `json:"moment" validate:"min=1"`
	EntryAge *int    `json:"entry_age"`
	G        float64 `json:"g" validate:"rate"`
}

func (q Query) withDefaults() Query {
	if q.M == 0 {
		q.M = 1
	}
	if q.Moment == 0 {
		q.Moment = 1
	}
	return q
}

// validateQuery collects every tag and cross-field violation of q.
func (mt *MortTableConfig) validateQuery(q Query) error {
	v := structViolations(q)
	v = append(v, checkAges(mt.bounds(), float64(q.X), float64(q.T), float64(q.N), q.EntryAge)...)
	return v.Err()
}

// wholeLife sets the term to run to the table ceiling.
func (mt *MortTableConfig) wholeLife(q Query) Query {
	q.N = max(0, mt.MaxAge()-q.X-q.T)
	return q
}

// presentValue is the single summation kernel behind every insurance and
// annuity function. The deferral factor is v^t tpx whatever the moment;
// only the in-cover discounting is raised to the moment.
func (mt *MortTableConfig) presentValue(q Query, cf cashFlow) (float64, error) {
	q = q.withDefaults()
	if err := mt.validateQuery(q); err != nil {
		return 0, err
	}
	col, err := mt.project(q.EntryAge)
	if err != nil {
		return 0, err
	}

	a := mt.settings.Assumption
	v := discountFactor(q.I)
	moment := float64(q.Moment)
	m := float64(q.M)
	start := float64(q.X + q.T)

	deferred, err := col.tpx(float64(q.X), float64(q.T), a)
	if err != nil {
		return 0, err
	}
	deferred *= math.Pow(v, float64(q.T))

	terms := q.M * q.N
	lo, hi := 0, terms
	if cf.kind == annuityFlow && cf.timing == InArrears {
		lo, hi = 1, terms+1
	}

	sum := 0.0
	for k := lo; k < hi; k++ {
		at := float64(k) / m
		var disc, prob, amount float64
		switch cf.kind {
		case annuityFlow:
			disc = math.Pow(v, moment*at)
			prob, err = col.tpx(start, at, a)
			period := k
			if cf.timing == InArrears {
				period = k - 1
			}
			amount = flowAmount(cf.structure, period, q.M, q.N) / m
		case benefitFlow:
			next := float64(k+1) / m
			disc = math.Pow(v, moment*next)
			prob, err = col.deathBetween(start, at, next, a)
			amount = flowAmount(cf.structure, k, q.M, q.N)
		}
		if err != nil {
			return 0, err
		}
		sum += disc * prob * amount
	}
	return deferred * sum, nil
}

// flowAmount is the amount in period index j (of m per year) before any 1/m scaling.
func flowAmount(s CashFlowStructure, j, m, n int) float64 {
	switch s {
	case Increasing:
		return float64(j/m + 1)
	case Decreasing:
		return float64(n - j/m)
	default:
		return 1
	}
}

// deathBetween is the probability a life aged x dies between times from and to.
func (c *lifeColumn) deathBetween(x, from, to float64, a domain.Assumption) (float64, error) {
	before, err := c.tpx(x, from, a)
	if err != nil {
		return 0, err
	}
	after, err := c.tpx(x, to, a)
	if err != nil {
		return 0, err
	}
	return before - after, nil
}

// pureEndowment is v^(moment(t+n)) (t+n)px after validation.
func (mt *MortTableConfig) pureEndowment(q Query) (float64, error) {
	q = q.withDefaults()
	if err := mt.validateQuery(q); err != nil {
		return 0, err
	}
	col, err := mt.project(q.EntryAge)
	if err != nil {
		return 0, err
	}
	span := float64(q.T + q.N)
	p, err := col.tpx(float64(q.X), span, mt.settings.Assumption)
	if err != nil {
		return 0, err
	}
	return math.Pow(discountFactor(q.I), float64(q.Moment)*span) * p, nil
}

// geometric values a stream growing at q.G by evaluating the level
// function f at i' = (1+i)/(1+g) - 1.
func (mt *MortTableConfig) geometric(q Query, f func(Query) (float64, error)) (float64, error) {
	if err := mt.validateQuery(q.withDefaults()); err != nil {
		return 0, err
	}
	q.I = decimal.NewRate(q.I).GrowthAdjusted(decimal.NewRate(q.G)).Float64()
	q.G = 0
	return f(q)
}

// discountFactor is v = 1/(1+i) taken through the exact decimal rate, so a
// configured 0.04 is divided exactly before any compounding. i must already
// have passed the rate check.
func discountFactor(i float64) float64 {
	return decimal.NewRate(i).DiscountFactor().InexactFloat64()
}
