package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/rpgo/lifetable/internal/calculation"
	"github.com/rpgo/lifetable/internal/domain"
	"github.com/rpgo/lifetable/pkg/decimal"
	"gopkg.in/yaml.v3"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// InputParser handles parsing of basis and table files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a valuation basis from a YAML or TOML file. A relative
// table path is resolved against the directory of the basis file.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Basis, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var basis domain.Basis
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		if err := toml.Unmarshal(data, &basis); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &basis); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := ip.ValidateBasis(&basis); err != nil {
		return nil, fmt.Errorf("basis validation failed: %w", err)
	}

	if f := basis.Table.File; f != "" && !filepath.IsAbs(f) {
		basis.Table.File = filepath.Join(filepath.Dir(filename), f)
	}
	return &basis, nil
}

// ValidateBasis checks the loaded basis and reports every problem at once.
func (ip *InputParser) ValidateBasis(basis *domain.Basis) error {
	var v domain.Violations

	if err := validate.Struct(basis); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			field := strings.TrimPrefix(fe.Namespace(), "Basis.")
			v.Add(domain.NewParameterError(field, fe.Value(), "failed %q check", fe.Tag()))
		}
	}

	if !basis.Assumption.Valid() {
		v.Add(domain.NewParameterError("assumption", int(basis.Assumption), "expected one of UDD, CFM, HPB"))
	}
	if !basis.Interest.AboveMinusOne() {
		v.Add(domain.NewParameterError("interest", basis.Interest, "must be greater than -1"))
	}
	if basis.SumAssured != nil && !basis.SumAssured.IsPositive() {
		v.Add(domain.NewParameterError("sum_assured", basis.SumAssured, "must be positive"))
	}
	if basis.Table.File != "" && basis.Table.Law != nil {
		v.Add(domain.NewParameterError("table", basis.Table, "give either a file or a law, not both"))
	}
	for i, req := range basis.Values {
		if !req.Growth.AboveMinusOne() {
			v.Add(domain.NewParameterError(fmt.Sprintf("values[%d].growth", i), req.Growth, "must be greater than -1"))
		}
		if _, ok := calculation.LookupValueFunction(req.Function); req.Function != "" && !ok {
			v.Add(domain.NewParameterError(fmt.Sprintf("values[%d].function", i), req.Function, "unknown actuarial function"))
		}
	}

	return v.Err()
}

// LoadTable reads the mortality table a basis names: a CSV file or a
// tabulated parametric law.
func (ip *InputParser) LoadTable(basis *domain.Basis) (*domain.MortalityTable, error) {
	if spec := basis.Table.Law; spec != nil {
		law, err := calculation.LawFromSpec(*spec)
		if err != nil {
			return nil, err
		}
		tbl, err := calculation.LawTable(law, spec.StartAge, spec.Omega)
		if err != nil {
			return nil, fmt.Errorf("failed to tabulate %s law: %w", spec.Kind, err)
		}
		return tbl, nil
	}
	return ip.LoadTableCSV(basis.Table.File)
}

// LoadTableCSV loads a mortality table from a CSV file whose header names
// its columns (age, qx, lx, duration in any order).
func (ip *InputParser) LoadTableCSV(filename string) (*domain.MortalityTable, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %w", filename, err)
	}
	defer f.Close()

	tbl, err := ReadTableCSV(f)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", filename, err)
	}
	return tbl, nil
}

// ReadTableCSV parses a header-led CSV mortality table.
func ReadTableCSV(r io.Reader) (*domain.MortalityTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if err == io.EOF {
		return nil, domain.NewFormatError("empty table file")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	columns := make([]domain.Column, len(header))
	for i, h := range header {
		columns[i] = domain.Column(strings.ToLower(strings.TrimSpace(h)))
	}

	var rows []domain.Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		row, err := parseRow(columns, rec, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return domain.NewMortalityTable(columns, rows)
}

func parseRow(columns []domain.Column, rec []string, line int) (domain.Row, error) {
	var row domain.Row
	for i, col := range columns {
		cell := strings.TrimSpace(rec[i])
		var err error
		switch col {
		case domain.ColumnAge:
			row.Age, err = strconv.Atoi(cell)
		case domain.ColumnDuration:
			row.Duration, err = strconv.Atoi(cell)
		case domain.ColumnQx:
			row.Qx, err = strconv.ParseFloat(cell, 64)
		case domain.ColumnLx:
			row.Lx, err = strconv.ParseFloat(cell, 64)
		default:
			// unknown columns are reported by the table schema check
			continue
		}
		if err != nil {
			return domain.Row{}, domain.NewFormatError("line %d: %s value %q is not a number", line, col, cell)
		}
	}
	return row, nil
}

// CreateExampleBasis returns a basis on the Standard Ultimate Life Table
// with a few common values, suitable for writing out as a starting point.
func (ip *InputParser) CreateExampleBasis() *domain.Basis {
	birth, _ := time.Parse("2006-01-02", "1975-03-14")
	valuation, _ := time.Parse("2006-01-02", "2025-06-30")
	sum := decimal.NewMoney(100000)
	sixtyFive := 65

	return &domain.Basis{
		Name: "SULT at 5%",
		Table: domain.TableSource{Law: &domain.LawSpec{
			Kind:     "makeham",
			A:        0.00022,
			B:        2.7e-6,
			C:        1.124,
			StartAge: 20,
			Omega:    150,
		}},
		Radix:      calculation.DefaultRadix,
		Pct:        1,
		Assumption: domain.UDD,
		Interest:   decimal.NewRate(0.05),
		SumAssured: &sum,
		Life: &domain.Life{
			BirthDate:     birth,
			ValuationDate: valuation,
			AgeBasis:      "last",
		},
		Values: []domain.ValueRequest{
			{Function: "Ax"},
			{Function: "Ax", Moment: 2},
			{Function: "Axn", N: 10},
			{Function: "Axn", N: 20},
			{Function: "aax", X: &sixtyFive},
			{Function: "aax", M: 12},
		},
	}
}
