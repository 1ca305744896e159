package calculation

import (
	"fmt"

	"github.com/rpgo/lifetable/internal/domain"
)

// DefaultRadix is the starting cohort used when lx has to be built from qx.
const DefaultRadix = 100000

// Settings controls how a raw table is canonicalised and interpolated.
// Radix seeds lx at the youngest age when only qx is given; Pct scales every
// given qx (capped at 1) before lx is derived.
type Settings struct {
	Radix      int               `json:"radix" validate:"min=1"`
	Pct        float64           `json:"pct" validate:"gt=0"`
	Assumption domain.Assumption `json:"assumption" validate:"assumption"`
	Logger     Logger            `json:"-" validate:"-"`
}

// DefaultSettings returns radix 100000, pct 1 and UDD.
func DefaultSettings() Settings {
	return Settings{Radix: DefaultRadix, Pct: 1, Assumption: domain.UDD}
}

// MortTableConfig is a canonical mortality table (qx and lx in every cell)
// together with the settings it was built with. Its logger comes from
// Settings.Logger; nothing is modified after construction, so concurrent
// readers are safe.
type MortTableConfig struct {
	table    *domain.MortalityTable
	settings Settings
	logger   Logger
}

// NewMortTableConfig validates the settings and derives whichever of qx or
// lx the table lacks, for ultimate-only and select tables alike.
func NewMortTableConfig(table *domain.MortalityTable, s Settings) (*MortTableConfig, error) {
	if table == nil {
		return nil, domain.NewFormatError("no table supplied")
	}
	if err := structViolations(s).Err(); err != nil {
		return nil, fmt.Errorf("invalid mortality settings: %w", err)
	}
	logger := orNop(s.Logger)

	canonical, err := canonicalize(table, s, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalise table: %w", err)
	}
	logger.Debugf("canonical table: ages %d-%d, %d cells, select=%t",
		canonical.MinAge(), canonical.MaxAge(), canonical.Len(), canonical.IsSelect())

	s.Logger = nil
	return &MortTableConfig{table: canonical, settings: s, logger: logger}, nil
}

// Table returns the canonical table.
func (mt *MortTableConfig) Table() *domain.MortalityTable { return mt.table }

func (mt *MortTableConfig) Radix() int                    { return mt.settings.Radix }
func (mt *MortTableConfig) Pct() float64                  { return mt.settings.Pct }
func (mt *MortTableConfig) Assumption() domain.Assumption { return mt.settings.Assumption }
func (mt *MortTableConfig) MinAge() int                   { return mt.table.MinAge() }
func (mt *MortTableConfig) MaxAge() int                   { return mt.table.MaxAge() }
func (mt *MortTableConfig) IsSelect() bool                { return mt.table.IsSelect() }

// MinDuration and MaxDuration fail for ultimate-only tables.
func (mt *MortTableConfig) MinDuration() (int, error) { return mt.table.MinDuration() }
func (mt *MortTableConfig) MaxDuration() (int, error) { return mt.table.MaxDuration() }

func (mt *MortTableConfig) bounds() ageBounds {
	return ageBounds{min: mt.table.MinAge(), max: mt.table.MaxAge()}
}

// lookupAt validates x against the table and projects it for entryAge.
func (mt *MortTableConfig) lookupAt(x int, entryAge *int) (*lifeColumn, error) {
	if err := checkAges(mt.bounds(), float64(x), 0, 0, entryAge).Err(); err != nil {
		return nil, err
	}
	return mt.project(entryAge)
}

// Survivors returns lx at age x, along the select path for entryAge if given.
func (mt *MortTableConfig) Survivors(x int, entryAge *int) (float64, error) {
	col, err := mt.lookupAt(x, entryAge)
	if err != nil {
		return 0, err
	}
	return col.lxAt(x), nil
}

// MortalityRate returns qx at age x.
func (mt *MortTableConfig) MortalityRate(x int, entryAge *int) (float64, error) {
	col, err := mt.lookupAt(x, entryAge)
	if err != nil {
		return 0, err
	}
	return col.qxAt(x), nil
}

// SurvivalRate returns px = 1 - qx at age x.
func (mt *MortTableConfig) SurvivalRate(x int, entryAge *int) (float64, error) {
	q, err := mt.MortalityRate(x, entryAge)
	if err != nil {
		return 0, err
	}
	return 1 - q, nil
}

// Deaths returns dx = lx - lx+1, or lx itself at the table ceiling.
func (mt *MortTableConfig) Deaths(x int, entryAge *int) (float64, error) {
	col, err := mt.lookupAt(x, entryAge)
	if err != nil {
		return 0, err
	}
	return col.dxAt(x), nil
}
