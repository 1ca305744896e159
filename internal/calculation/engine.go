package calculation

import (
	"fmt"

	"github.com/rpgo/lifetable/internal/domain"
)

// CalculationEngine turns a valuation basis into reports.
type CalculationEngine struct {
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	ce.Logger = orNop(l)
}

// SettingsFor fills basis defaults: radix 100000, pct 1.
func SettingsFor(basis *domain.Basis) Settings {
	s := DefaultSettings()
	if basis.Radix != 0 {
		s.Radix = basis.Radix
	}
	if basis.Pct != 0 {
		s.Pct = basis.Pct
	}
	s.Assumption = basis.Assumption
	return s
}

// BuildConfig canonicalises raw under the basis settings.
func (ce *CalculationEngine) BuildConfig(basis *domain.Basis, raw *domain.MortalityTable) (*MortTableConfig, error) {
	s := SettingsFor(basis)
	s.Logger = ce.Logger
	mt, err := NewMortTableConfig(raw, s)
	if err != nil {
		return nil, fmt.Errorf("basis %q: %w", basis.Name, err)
	}
	ce.Logger.Infof("loaded %s: ages %d-%d, select=%t, %s", basis.Table, mt.MinAge(), mt.MaxAge(), mt.IsSelect(), mt.Assumption())
	return mt, nil
}

func (ce *CalculationEngine) newReport(title string, mt *MortTableConfig, basis *domain.Basis) *domain.Report {
	summary := domain.BasisSummary{
		Table:      basis.Table.String(),
		Assumption: mt.Assumption().String(),
		Radix:      mt.Radix(),
		Pct:        mt.Pct(),
		MinAge:     mt.MinAge(),
		MaxAge:     mt.MaxAge(),
	}
	if !basis.Interest.IsZero() {
		summary.Interest = basis.Interest.Percent()
	}
	return &domain.Report{Title: title, Basis: summary}
}

// TableReport renders the canonical table, or its selected view for entryAge.
func (ce *CalculationEngine) TableReport(mt *MortTableConfig, basis *domain.Basis, entryAge *int) (*domain.Report, error) {
	r := ce.newReport("Mortality table", mt, basis)
	tbl := mt.Table()
	if entryAge != nil {
		selected, err := mt.SelectedTable(entryAge)
		if err != nil {
			return nil, err
		}
		tbl = selected
		r.Basis.EntryAge = entryAge
	}
	r.Table = tbl.Rows()
	r.Select = tbl.IsSelect()
	return r, nil
}

// CommutationReport renders Dx..Rx at the basis interest rate.
func (ce *CalculationEngine) CommutationReport(mt *MortTableConfig, basis *domain.Basis, entryAge *int) (*domain.Report, error) {
	r := ce.newReport("Commutation functions", mt, basis)
	rows, err := mt.CommutationTable(basis.Interest.Float64(), entryAge)
	if err != nil {
		return nil, err
	}
	r.Basis.EntryAge = entryAge
	r.Commutations = rows
	return r, nil
}

// SurvivalReport evaluates tpx and tqx for each query.
func (ce *CalculationEngine) SurvivalReport(mt *MortTableConfig, basis *domain.Basis, queries []SurvivalQuery) (*domain.Report, error) {
	r := ce.newReport("Survival probabilities", mt, basis)
	for _, q := range queries {
		p, err := mt.Tpx(q)
		if err != nil {
			return nil, fmt.Errorf("tpx(x=%g, t=%g, k=%g): %w", q.X, q.T, q.K, err)
		}
		d, err := mt.Tqx(q)
		if err != nil {
			return nil, fmt.Errorf("tqx(x=%g, t=%g, k=%g): %w", q.X, q.T, q.K, err)
		}
		r.Survival = append(r.Survival, domain.SurvivalResult{X: q.X, T: q.T, K: q.K, Tpx: p, Tqx: d})
	}
	return r, nil
}

// Evaluate computes every value the basis requests. A request without an
// age takes the basis life's age.
func (ce *CalculationEngine) Evaluate(mt *MortTableConfig, basis *domain.Basis) (*domain.Report, error) {
	r := ce.newReport("Actuarial values", mt, basis)

	lifeAge := -1
	var lifeEntry *int
	if basis.Life != nil {
		age, err := basis.Life.Age()
		if err != nil {
			return nil, fmt.Errorf("life: %w", err)
		}
		lifeAge, lifeEntry = age, basis.Life.EntryAge
	}

	ce.Logger.Debugf("interest %s: v=%s d=%s", basis.Interest.Percent(),
		basis.Interest.DiscountFactor().StringFixed(8), basis.Interest.DiscountRate().StringFixed(8))

	for i, req := range basis.Values {
		fn, ok := LookupValueFunction(req.Function)
		if !ok {
			return nil, domain.NewParameterError("function", req.Function, "unknown actuarial function")
		}
		q := Query{
			I:        basis.Interest.Float64(),
			N:        req.N,
			T:        req.T,
			M:        req.M,
			Moment:   req.Moment,
			EntryAge: req.EntryAge,
			G:        req.Growth.Float64(),
		}.withDefaults()
		switch {
		case req.X != nil:
			q.X = *req.X
		case lifeAge >= 0:
			// the life's entry age only applies to the life's own age
			q.X = lifeAge
			if q.EntryAge == nil {
				q.EntryAge = lifeEntry
			}
		default:
			return nil, domain.NewParameterError("x", nil, "value %d (%s) has no age and the basis has no life", i, req.Function)
		}

		val, err := fn.Eval(mt, q)
		if err != nil {
			return nil, fmt.Errorf("value %d (%s): %w", i, req.Function, err)
		}
		ce.Logger.Debugf("%s(x=%d, n=%d, t=%d, m=%d, moment=%d) = %.8f", fn.Notation, q.X, q.N, q.T, q.M, q.Moment, val)

		res := domain.ValueResult{
			Function:    fn.Notation,
			Description: fn.Description,
			X:           q.X,
			T:           q.T,
			M:           q.M,
			Moment:      q.Moment,
			EntryAge:    q.EntryAge,
			Value:       val,
		}
		if !fn.WholeLife {
			res.N = q.N
		}
		if basis.SumAssured != nil && q.Moment == 1 {
			res.Amount = basis.SumAssured.Scale(val).Round().String()
		}
		r.Values = append(r.Values, res)
	}
	return r, nil
}
