package domain

import (
	"bytes"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rpgo/lifetable/pkg/dateutil"
	"github.com/rpgo/lifetable/pkg/decimal"
	"gopkg.in/yaml.v3"
)

// Basis is a valuation basis: which table to use, how to canonicalise it,
// the interest rate, and the values to compute.
type Basis struct {
	Name       string         `yaml:"name" toml:"name" json:"name"`
	Table      TableSource    `yaml:"table" toml:"table" json:"table"`
	Radix      int            `yaml:"radix" toml:"radix" json:"radix" validate:"gte=0"`
	Pct        float64        `yaml:"pct" toml:"pct" json:"pct" validate:"gte=0"`
	Assumption Assumption     `yaml:"assumption" toml:"assumption" json:"assumption"`
	Interest   decimal.Rate   `yaml:"interest" toml:"interest" json:"interest"`
	SumAssured *decimal.Money `yaml:"sum_assured,omitempty" toml:"sum_assured" json:"sum_assured,omitempty"`
	Life       *Life          `yaml:"life,omitempty" toml:"life" json:"life,omitempty"`
	Values     []ValueRequest `yaml:"values" toml:"values" json:"values" validate:"dive"`
}

// TableSource names where the mortality rates come from: a CSV file or a parametric law.
type TableSource struct {
	File string   `yaml:"file,omitempty" toml:"file" json:"file,omitempty" validate:"required_without=Law"`
	Law  *LawSpec `yaml:"law,omitempty" toml:"law" json:"law,omitempty"`
}

// UnmarshalYAML accepts either a mapping or a bare file path.
func (ts *TableSource) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		ts.File = value.Value
		ts.Law = nil
		return nil
	}

	type alias TableSource
	var aux alias
	if err := value.Decode(&aux); err != nil {
		return fmt.Errorf("invalid table source: %w", err)
	}
	*ts = TableSource(aux)
	return nil
}

// UnmarshalTOML accepts either a table or a bare file path.
func (ts *TableSource) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		*ts = TableSource{File: v}
		return nil
	case map[string]any:
		// round-trip through the encoder so the struct tags do the mapping
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(v); err != nil {
			return fmt.Errorf("invalid table source: %w", err)
		}
		type alias TableSource
		var aux alias
		if _, err := toml.Decode(buf.String(), &aux); err != nil {
			return fmt.Errorf("invalid table source: %w", err)
		}
		*ts = TableSource(aux)
		return nil
	}
	return fmt.Errorf("invalid table source: unexpected %T", data)
}

// String describes the source for report headers.
func (ts TableSource) String() string {
	if ts.Law != nil {
		return ts.Law.Kind + " law"
	}
	return ts.File
}

// LawSpec parameterises an analytic mortality law. Which coefficients are
// read depends on Kind:
//
//	makeham        mu = A + B*C^x
//	gompertz       mu = B*C^x
//	constant_force mu = Lambda
//	de_moivre      uniform deaths to Omega
//	weibull        mu = K*x^N
type LawSpec struct {
	Kind     string  `yaml:"kind" toml:"kind" json:"kind" validate:"required,oneof=makeham gompertz constant_force de_moivre weibull"`
	A        float64 `yaml:"a,omitempty" toml:"a" json:"a,omitempty"`
	B        float64 `yaml:"b,omitempty" toml:"b" json:"b,omitempty" validate:"gte=0"`
	C        float64 `yaml:"c,omitempty" toml:"c" json:"c,omitempty" validate:"gte=0"`
	Lambda   float64 `yaml:"lambda,omitempty" toml:"lambda" json:"lambda,omitempty" validate:"gte=0"`
	K        float64 `yaml:"k,omitempty" toml:"k" json:"k,omitempty" validate:"gte=0"`
	N        float64 `yaml:"n,omitempty" toml:"n" json:"n,omitempty" validate:"gte=0"`
	StartAge int     `yaml:"start_age" toml:"start_age" json:"start_age" validate:"gte=0"`
	Omega    int     `yaml:"omega" toml:"omega" json:"omega" validate:"gtfield=StartAge"`
}

// Life identifies the insured life; its age is derived from the dates.
type Life struct {
	BirthDate     time.Time `yaml:"birth_date" toml:"birth_date" json:"birth_date" validate:"required"`
	ValuationDate time.Time `yaml:"valuation_date" toml:"valuation_date" json:"valuation_date" validate:"required,gtfield=BirthDate"`
	AgeBasis      string    `yaml:"age_basis,omitempty" toml:"age_basis" json:"age_basis,omitempty" validate:"omitempty,oneof=last nearest"`
	EntryAge      *int      `yaml:"entry_age,omitempty" toml:"entry_age" json:"entry_age,omitempty" validate:"omitempty,gte=0"`
}

// Age returns the age at the valuation date on the life's age basis.
func (l Life) Age() (int, error) {
	return dateutil.AgeOnBasis(l.AgeBasis, l.BirthDate, l.ValuationDate)
}

// ValueRequest asks for one actuarial function by its notation, e.g. "aax" or "Axn".
// Zero M and Moment mean 1. A nil X takes the age of the basis life.
type ValueRequest struct {
	Function string       `yaml:"function" toml:"function" json:"function" validate:"required"`
	X        *int         `yaml:"x,omitempty" toml:"x" json:"x,omitempty" validate:"omitempty,gte=0"`
	N        int          `yaml:"n,omitempty" toml:"n" json:"n,omitempty" validate:"gte=0"`
	T        int          `yaml:"t,omitempty" toml:"t" json:"t,omitempty" validate:"gte=0"`
	M        int          `yaml:"m,omitempty" toml:"m" json:"m,omitempty" validate:"gte=0"`
	Moment   int          `yaml:"moment,omitempty" toml:"moment" json:"moment,omitempty" validate:"gte=0"`
	EntryAge *int         `yaml:"entry_age,omitempty" toml:"entry_age" json:"entry_age,omitempty" validate:"omitempty,gte=0"`
	Growth   decimal.Rate `yaml:"growth,omitempty" toml:"growth" json:"growth"`
}
