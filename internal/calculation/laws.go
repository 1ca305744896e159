package calculation

import (
	"math"

	"github.com/rpgo/lifetable/internal/domain"
)

// Law is an analytic mortality law giving the one-year rate qx at integer ages.
type Law interface {
	Qx(age int) float64
	Validate() error
	Name() string
}

// MakehamLaw has force of mortality A + B*C^x.
type MakehamLaw struct {
	A, B, C float64
}

func (l MakehamLaw) Name() string { return "makeham" }

func (l MakehamLaw) Qx(age int) float64 {
	x := float64(age)
	return 1 - math.Exp(-l.A-l.B/math.Log(l.C)*math.Pow(l.C, x)*(l.C-1))
}

func (l MakehamLaw) Validate() error {
	var v domain.Violations
	if l.B < 0 {
		v.Add(domain.NewParameterError("b", l.B, "must be non-negative"))
	}
	if !(l.C > 1) {
		v.Add(domain.NewParameterError("c", l.C, "must be greater than 1"))
	}
	return v.Err()
}

// GompertzLaw has force of mortality B*C^x.
type GompertzLaw struct {
	B, C float64
}

func (l GompertzLaw) Name() string       { return "gompertz" }
func (l GompertzLaw) Qx(age int) float64 { return MakehamLaw{B: l.B, C: l.C}.Qx(age) }
func (l GompertzLaw) Validate() error    { return MakehamLaw{B: l.B, C: l.C}.Validate() }

// ConstantForceLaw has the same force Lambda at every age, so qx = 1 - e^-Lambda.
type ConstantForceLaw struct {
	Lambda float64
}

func (l ConstantForceLaw) Name() string   { return "constant_force" }
func (l ConstantForceLaw) Qx(int) float64 { return 1 - math.Exp(-l.Lambda) }

func (l ConstantForceLaw) Validate() error {
	if !(l.Lambda > 0) {
		return domain.NewParameterError("lambda", l.Lambda, "must be positive")
	}
	return nil
}

// DeMoivreLaw spreads deaths uniformly up to the limiting age Omega: qx = 1/(Omega-x).
type DeMoivreLaw struct {
	Omega int
}

func (l DeMoivreLaw) Name() string { return "de_moivre" }

func (l DeMoivreLaw) Qx(age int) float64 {
	if age >= l.Omega-1 {
		return 1
	}
	return 1 / float64(l.Omega-age)
}

func (l DeMoivreLaw) Validate() error {
	if l.Omega < 1 {
		return domain.NewParameterError("omega", l.Omega, "must be positive")
	}
	return nil
}

// WeibullLaw has force of mortality K*x^N.
type WeibullLaw struct {
	K, N float64
}

func (l WeibullLaw) Name() string { return "weibull" }

func (l WeibullLaw) Qx(age int) float64 {
	x := float64(age)
	p := l.N + 1
	return 1 - math.Exp(-l.K/p*(math.Pow(x+1, p)-math.Pow(x, p)))
}

func (l WeibullLaw) Validate() error {
	var v domain.Violations
	if !(l.K > 0) {
		v.Add(domain.NewParameterError("k", l.K, "must be positive"))
	}
	if l.N < 0 {
		v.Add(domain.NewParameterError("n", l.N, "must be non-negative"))
	}
	return v.Err()
}

// LawTable tabulates qx from startAge to omega. The table stops at the first
// age whose rate reaches 1.
func LawTable(law Law, startAge, omega int) (*domain.MortalityTable, error) {
	var v domain.Violations
	v.Add(law.Validate())
	if startAge < 0 {
		v.Add(domain.NewParameterError("start_age", startAge, "must be non-negative"))
	}
	if omega <= startAge {
		v.Add(domain.NewParameterError("omega", omega, "must exceed start_age %d", startAge))
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	rows := make([]domain.Row, 0, omega-startAge+1)
	for age := startAge; age <= omega; age++ {
		q := math.Min(1, law.Qx(age))
		rows = append(rows, domain.Row{Age: age, Qx: q})
		if q == 1 {
			break
		}
	}
	return domain.NewMortalityTable([]domain.Column{domain.ColumnAge, domain.ColumnQx}, rows)
}

// LawFromSpec builds the law a basis names.
func LawFromSpec(s domain.LawSpec) (Law, error) {
	switch s.Kind {
	case "makeham":
		return MakehamLaw{A: s.A, B: s.B, C: s.C}, nil
	case "gompertz":
		return GompertzLaw{B: s.B, C: s.C}, nil
	case "constant_force":
		return ConstantForceLaw{Lambda: s.Lambda}, nil
	case "de_moivre":
		return DeMoivreLaw{Omega: s.Omega}, nil
	case "weibull":
		return WeibullLaw{K: s.K, N: s.N}, nil
	}
	return nil, domain.NewParameterError("law", s.Kind, "unknown mortality law")
}
