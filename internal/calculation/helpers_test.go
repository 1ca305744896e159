package calculation

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"testing"

	"github.com/rpgo/lifetable/internal/domain"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

// sultConfig is the Standard Ultimate Life Table: Makeham A=0.00022,
// B=2.7e-6, c=1.124 from age 20, radix 100000.
func sultConfig(t *testing.T, a domain.Assumption) *MortTableConfig {
	t.Helper()
	tbl, err := LawTable(MakehamLaw{A: 0.00022, B: 2.7e-6, C: 1.124}, 20, 150)
	require.NoError(t, err)
	s := DefaultSettings()
	s.Assumption = a
	mt, err := NewMortTableConfig(tbl, s)
	require.NoError(t, err)
	return mt
}

// am92Config loads the AM92 ultimate rates shipped with the integration data.
func am92Config(t *testing.T) *MortTableConfig {
	t.Helper()
	tbl, err := domain.NewMortalityTable([]domain.Column{domain.ColumnAge, domain.ColumnQx}, am92Rows(t))
	require.NoError(t, err)
	mt, err := NewMortTableConfig(tbl, Settings{Radix: 10000, Pct: 1, Assumption: domain.UDD})
	require.NoError(t, err)
	return mt
}

// am92SelectQ50 is a one-year select rate at age 50 fitted so that, over the
// AM92 ultimate rates, aa[50] = 17.454 at 4%.
const am92SelectQ50 = 0.001893

// am92SelectConfig puts the AM92 ultimate rates at duration 1 and adds a
// single select cell q[50].
func am92SelectConfig(t *testing.T) *MortTableConfig {
	t.Helper()
	rows := []domain.Row{{Age: 50, Duration: 0, Qx: am92SelectQ50}}
	for _, r := range am92Rows(t) {
		r.Duration = 1
		rows = append(rows, r)
	}
	tbl, err := domain.NewMortalityTable(
		[]domain.Column{domain.ColumnAge, domain.ColumnDuration, domain.ColumnQx}, rows)
	require.NoError(t, err)
	mt, err := NewMortTableConfig(tbl, Settings{Radix: 10000, Pct: 1, Assumption: domain.UDD})
	require.NoError(t, err)
	return mt
}

func am92Rows(t *testing.T) []domain.Row {
	t.Helper()
	f, err := os.Open("../../test/testdata/am92_ultimate.csv")
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	var rows []domain.Row
	for _, rec := range records[1:] {
		age, err := strconv.Atoi(rec[0])
		require.NoError(t, err)
		q, err := strconv.ParseFloat(rec[1], 64)
		require.NoError(t, err)
		rows = append(rows, domain.Row{Age: age, Qx: q})
	}
	return rows
}

// flatTable has qx = q at ages 0..3, closed at age 3.
func flatTable(t *testing.T, q float64, a domain.Assumption) *MortTableConfig {
	t.Helper()
	rows := []domain.Row{{Age: 0, Qx: q}, {Age: 1, Qx: q}, {Age: 2, Qx: q}, {Age: 3, Qx: q}}
	tbl, err := domain.NewMortalityTable([]domain.Column{domain.ColumnAge, domain.ColumnQx}, rows)
	require.NoError(t, err)
	mt, err := NewMortTableConfig(tbl, Settings{Radix: 1000, Pct: 1, Assumption: a})
	require.NoError(t, err)
	return mt
}

// selectRows is a two-duration select table for ages 30-33; duration 1 is ultimate.
func selectRows() []domain.Row {
	return []domain.Row{
		{Age: 30, Duration: 0, Qx: 0.001}, {Age: 30, Duration: 1, Qx: 0.002},
		{Age: 31, Duration: 0, Qx: 0.0015}, {Age: 31, Duration: 1, Qx: 0.003},
		{Age: 32, Duration: 0, Qx: 0.002}, {Age: 32, Duration: 1, Qx: 0.004},
		{Age: 33, Duration: 0, Qx: 0.003}, {Age: 33, Duration: 1, Qx: 0.5},
	}
}

func selectConfig(t *testing.T) *MortTableConfig {
	t.Helper()
	tbl, err := domain.NewMortalityTable(
		[]domain.Column{domain.ColumnAge, domain.ColumnDuration, domain.ColumnQx}, selectRows())
	require.NoError(t, err)
	mt, err := NewMortTableConfig(tbl, Settings{Radix: 1000, Pct: 1})
	require.NoError(t, err)
	return mt
}

// recordingLogger keeps every formatted message by level.
type recordingLogger struct {
	debug, info, warn, errs []string
}

func (r *recordingLogger) Debugf(format string, args ...any) {
	r.debug = append(r.debug, fmt.Sprintf(format, args...))
}
func (r *recordingLogger) Infof(format string, args ...any) {
	r.info = append(r.info, fmt.Sprintf(format, args...))
}
func (r *recordingLogger) Warnf(format string, args ...any) {
	r.warn = append(r.warn, fmt.Sprintf(format, args...))
}
func (r *recordingLogger) Errorf(format string, args ...any) {
	r.errs = append(r.errs, fmt.Sprintf(format, args...))
}
