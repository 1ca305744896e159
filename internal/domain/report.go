package domain

// Report is what the output formatters render: a basis summary plus any of
// a mortality table, a commutation table and computed values.
type Report struct {
	Title        string           `json:"title"`
	Basis        BasisSummary     `json:"basis"`
	Table        []Row            `json:"table,omitempty"`
	Select       bool             `json:"select,omitempty"`
	Commutations []CommutationRow `json:"commutations,omitempty"`
	Survival     []SurvivalResult `json:"survival,omitempty"`
	Values       []ValueResult    `json:"values,omitempty"`
}

// BasisSummary is the header information shown with every report.
type BasisSummary struct {
	Table      string  `json:"table"`
	Interest   string  `json:"interest,omitempty"`
	Assumption string  `json:"assumption"`
	Radix      int     `json:"radix"`
	Pct        float64 `json:"pct"`
	MinAge     int     `json:"min_age"`
	MaxAge     int     `json:"max_age"`
	EntryAge   *int    `json:"entry_age,omitempty"`
}

// CommutationRow holds the commutation columns at one age.
type CommutationRow struct {
	Age int     `json:"age"`
	Dx  float64 `json:"Dx"`
	Cx  float64 `json:"Cx"`
	Nx  float64 `json:"Nx"`
	Mx  float64 `json:"Mx"`
	Sx  float64 `json:"Sx"`
	Rx  float64 `json:"Rx"`
}

// SurvivalResult is one tpx / tqx evaluation.
type SurvivalResult struct {
	X   float64 `json:"x"`
	T   float64 `json:"t"`
	K   float64 `json:"k"`
	Tpx float64 `json:"tpx"`
	Tqx float64 `json:"tqx"`
}

// ValueResult is one computed actuarial function.
type ValueResult struct {
	Function    string  `json:"function"`
	Description string  `json:"description"`
	X           int     `json:"x"`
	N           int     `json:"n,omitempty"`
	T           int     `json:"t,omitempty"`
	M           int     `json:"m"`
	Moment      int     `json:"moment"`
	EntryAge    *int    `json:"entry_age,omitempty"`
	Value       float64 `json:"value"`
	Amount      string  `json:"amount,omitempty"`
}
