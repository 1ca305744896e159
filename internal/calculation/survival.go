package calculation

import (
	"math"

	"github.com/rpgo/lifetable/internal/domain"
)

// wholeTolerance is how close to an integer an age or time must be to take
// the exact lx-ratio path.
const wholeTolerance = 1e-9

// SurvivalQuery asks for survival of a life aged X over T years after a
// deferral of K years. Ages and times may be fractional.
type SurvivalQuery struct {
	X        float64 `json:"x"`
	T        float64 `json:"t" validate:"gte=0"`
	K        float64 `json:"k" validate:"gte=0"`
	EntryAge *int    `json:"entry_age"`
}

func (mt *MortTableConfig) survivalColumn(q SurvivalQuery) (*lifeColumn, error) {
	v := structViolations(q)
	v = append(v, checkAges(mt.bounds(), q.X, q.T+q.K, 0, q.EntryAge)...)
	if err := v.Err(); err != nil {
		return nil, err
	}
	return mt.project(q.EntryAge)
}

// Tpx returns the probability that a life aged X survives T+K years.
func (mt *MortTableConfig) Tpx(q SurvivalQuery) (float64, error) {
	col, err := mt.survivalColumn(q)
	if err != nil {
		return 0, err
	}
	return col.tpx(q.X, q.T+q.K, mt.settings.Assumption)
}

// Tqx returns the probability that a life aged X survives K years and then
// dies within the following T years: kpx - (k+t)px.
func (mt *MortTableConfig) Tqx(q SurvivalQuery) (float64, error) {
	col, err := mt.survivalColumn(q)
	if err != nil {
		return 0, err
	}
	return col.deathBetween(q.X, q.K, q.K+q.T, mt.settings.Assumption)
}

func asWhole(v float64) (int, bool) {
	r := math.Round(v)
	if math.Abs(v-r) < wholeTolerance {
		return int(r), true
	}
	return 0, false
}

// tpx survives from age x for t years. Whole x and t use lx ratios;
// otherwise the span is cut at integer ages into a leading fraction, whole
// years and a trailing fraction, each fraction interpolated under a.
func (c *lifeColumn) tpx(x, t float64, a domain.Assumption) (float64, error) {
	xi, xWhole := asWhole(x)
	ti, tWhole := asWhole(t)
	if xWhole && tWhole {
		return c.tpxWhole(xi, ti)
	}

	n, s := xi, 0.0
	if !xWhole {
		n = int(math.Floor(x))
		s = x - float64(n)
	}
	toNext := 1 - s
	if t <= toNext+wholeTolerance {
		return c.tpxFraction(n, s, math.Min(t, toNext), a)
	}

	lead, err := c.tpxFraction(n, s, toNext, a)
	if err != nil {
		return 0, err
	}
	rest := t - toNext
	years, whole := asWhole(rest)
	if !whole {
		years = int(math.Floor(rest))
	}
	mid, err := c.tpxWhole(n+1, years)
	if err != nil {
		return 0, err
	}
	if whole {
		return lead * mid, nil
	}
	tail, err := c.tpxFraction(n+1+years, 0, rest-float64(years), a)
	if err != nil {
		return 0, err
	}
	return lead * mid * tail, nil
}

func (c *lifeColumn) tpxWhole(x, t int) (float64, error) {
	if x < c.minAge || x+t > c.maxAge() {
		return 0, domain.NewRangeError("x+t", x+t, "outside table ages %d-%d", c.minAge, c.maxAge())
	}
	l := c.lxAt(x)
	if l <= 0 {
		return 0, domain.NewRangeError("x", x, "lx=%g leaves survival undefined", l)
	}
	return c.lxAt(x+t) / l, nil
}

// tpxFraction survives t years from age n+s, with s+t <= 1, under a.
func (c *lifeColumn) tpxFraction(n int, s, t float64, a domain.Assumption) (float64, error) {
	if n < c.minAge || n > c.maxAge() {
		return 0, domain.NewRangeError("x", n, "outside table ages %d-%d", c.minAge, c.maxAge())
	}
	q := c.qxAt(n)
	switch a {
	case domain.CFM:
		return math.Pow(1-q, t), nil
	case domain.HPB:
		return 1 - t*q/(1+s*q), nil
	default:
		denom := 1 - s*q
		if denom <= 0 {
			return 0, domain.NewRangeError("x", float64(n)+s, "survival denominator %g is not positive", denom)
		}
		return 1 - t*q/denom, nil
	}
}
