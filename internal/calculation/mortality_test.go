package calculation

import (
	"testing"

	"github.com/rpgo/lifetable/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMortTableConfig_SettingsViolationsAggregated(t *testing.T) {
	tbl, err := domain.NewMortalityTable([]domain.Column{domain.ColumnAge, domain.ColumnQx},
		[]domain.Row{{Age: 0, Qx: 0.1}, {Age: 1, Qx: 1}})
	require.NoError(t, err)

	_, err = NewMortTableConfig(tbl, Settings{Radix: 0, Pct: -1, Assumption: domain.Assumption(9)})
	require.Error(t, err)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Violations, 3)

	var pe *domain.ParameterError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, err.Error(), "radix")
	assert.Contains(t, err.Error(), "pct")
	assert.Contains(t, err.Error(), "assumption")
}

func TestNewMortTableConfig_NilTable(t *testing.T) {
	_, err := NewMortTableConfig(nil, DefaultSettings())
	var fe *domain.FormatError
	assert.ErrorAs(t, err, &fe)
}

func TestCanonicalize_OneDimensional(t *testing.T) {
	tests := []struct {
		name    string
		columns []domain.Column
		rows    []domain.Row
		pct     float64
		wantQx  []float64
		wantLx  []float64
	}{
		{
			name:    "qx only compounds lx from the radix and closes the table",
			columns: []domain.Column{domain.ColumnAge, domain.ColumnQx},
			rows:    []domain.Row{{Age: 60, Qx: 0.1}, {Age: 61, Qx: 0.2}, {Age: 62, Qx: 0.3}},
			pct:     1,
			wantQx:  []float64{0.1, 0.2, 1},
			wantLx:  []float64{1000, 900, 720},
		},
		{
			name:    "pct scales qx and caps at one",
			columns: []domain.Column{domain.ColumnAge, domain.ColumnQx},
			rows:    []domain.Row{{Age: 60, Qx: 0.1}, {Age: 61, Qx: 0.6}, {Age: 62, Qx: 0.3}},
			pct:     2,
			wantQx:  []float64{0.2, 1, 1},
			wantLx:  []float64{1000, 800, 0},
		},
		{
			name:    "lx only derives qx",
			columns: []domain.Column{domain.ColumnAge, domain.ColumnLx},
			rows:    []domain.Row{{Age: 0, Lx: 1000}, {Age: 1, Lx: 900}, {Age: 2, Lx: 810}},
			pct:     1,
			wantQx:  []float64{0.1, 0.1, 1},
			wantLx:  []float64{1000, 900, 810},
		},
		{
			name:    "both columns pass through",
			columns: []domain.Column{domain.ColumnAge, domain.ColumnQx, domain.ColumnLx},
			rows:    []domain.Row{{Age: 0, Qx: 0.5, Lx: 10}, {Age: 1, Qx: 0.25, Lx: 7}},
			pct:     1,
			wantQx:  []float64{0.5, 0.25},
			wantLx:  []float64{10, 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := domain.NewMortalityTable(tt.columns, tt.rows)
			require.NoError(t, err)
			mt, err := NewMortTableConfig(tbl, Settings{Radix: 1000, Pct: tt.pct})
			require.NoError(t, err)

			rows := mt.Table().Rows()
			require.Len(t, rows, len(tt.wantQx))
			assert.True(t, mt.Table().Has(domain.ColumnQx))
			assert.True(t, mt.Table().Has(domain.ColumnLx))
			for i, r := range rows {
				assert.InDelta(t, tt.wantQx[i], r.Qx, 1e-12, "qx at age %d", r.Age)
				assert.InDelta(t, tt.wantLx[i], r.Lx, 1e-9, "lx at age %d", r.Age)
			}
		})
	}
}

func TestCanonicalize_PctIgnoredForLxTablesIsLogged(t *testing.T) {
	tbl, err := domain.NewMortalityTable([]domain.Column{domain.ColumnAge, domain.ColumnLx},
		[]domain.Row{{Age: 0, Lx: 100}, {Age: 1, Lx: 50}})
	require.NoError(t, err)

	log := &recordingLogger{}
	_, err = NewMortTableConfig(tbl, Settings{Radix: 1000, Pct: 1.5, Logger: log})
	require.NoError(t, err)
	require.Len(t, log.warn, 1)
	assert.Contains(t, log.warn[0], "pct=1.5 ignored")
}

func TestCanonicalize_SelectFromQx(t *testing.T) {
	mt := selectConfig(t)
	tbl := mt.Table()

	assert.True(t, mt.IsSelect())
	minDur, err := mt.MinDuration()
	require.NoError(t, err)
	maxDur, err := mt.MaxDuration()
	require.NoError(t, err)
	assert.Equal(t, 0, minDur)
	assert.Equal(t, 1, maxDur)

	ultimate := map[int]float64{30: 1000, 31: 998, 32: 995.006, 33: 991.025976}
	for age, want := range ultimate {
		r, ok := tbl.Cell(age, 1)
		require.True(t, ok, "ultimate cell at %d", age)
		assert.InDelta(t, want, r.Lx, 1e-9, "ultimate lx at %d", age)
	}
	r, _ := tbl.Cell(33, 1)
	assert.Equal(t, 1.0, r.Qx)

	selectLx := map[int]float64{30: 998.998998998999, 31: 996.5007511266899, 32: 993.012}
	for age, want := range selectLx {
		r, ok := tbl.Cell(age, 0)
		require.True(t, ok, "select cell at %d", age)
		assert.InDelta(t, want, r.Lx, 1e-9, "select lx at %d", age)
	}

	// the select cell at the ceiling is closed like the ultimate one
	r, ok := tbl.Cell(33, 0)
	require.True(t, ok)
	assert.Equal(t, 1.0, r.Qx)
	assert.InDelta(t, 991.025976, r.Lx, 1e-9)
	assert.Equal(t, 8, tbl.Len())
}

func TestSelectedTable_CeilingEntryAge(t *testing.T) {
	mt := selectConfig(t)

	sel, err := mt.SelectedTable(intp(33))
	require.NoError(t, err)
	assert.Equal(t, 33, sel.MaxAge())
	r, ok := sel.Lookup(33)
	require.True(t, ok)
	assert.Equal(t, 1.0, r.Qx)
	assert.InDelta(t, 991.025976, r.Lx, 1e-9)

	q, err := mt.MortalityRate(33, intp(33))
	require.NoError(t, err)
	assert.Equal(t, 1.0, q)
	lx, err := mt.Survivors(33, intp(33))
	require.NoError(t, err)
	assert.InDelta(t, 991.025976, lx, 1e-9)

	p, err := mt.Tpx(SurvivalQuery{X: 33, EntryAge: intp(33)})
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)
}

func TestCanonicalize_SelectRoundTrip(t *testing.T) {
	// lx -> qx must recover the rates the lx were compounded from
	base := selectConfig(t)
	var lxRows []domain.Row
	for _, r := range base.Table().Rows() {
		lxRows = append(lxRows, domain.Row{Age: r.Age, Duration: r.Duration, Lx: r.Lx})
	}
	tbl, err := domain.NewMortalityTable(
		[]domain.Column{domain.ColumnAge, domain.ColumnDuration, domain.ColumnLx}, lxRows)
	require.NoError(t, err)
	mt, err := NewMortTableConfig(tbl, DefaultSettings())
	require.NoError(t, err)

	for _, want := range base.Table().Rows() {
		got, ok := mt.Table().Cell(want.Age, want.Duration)
		require.True(t, ok)
		assert.InDelta(t, want.Qx, got.Qx, 1e-12, "qx at (%d, %d)", want.Age, want.Duration)
	}
}

func TestCanonicalize_OneDimensionalRoundTrip(t *testing.T) {
	base := sultConfig(t, domain.UDD)
	var lxRows []domain.Row
	for _, r := range base.Table().Rows() {
		lxRows = append(lxRows, domain.Row{Age: r.Age, Lx: r.Lx})
	}
	tbl, err := domain.NewMortalityTable([]domain.Column{domain.ColumnAge, domain.ColumnLx}, lxRows)
	require.NoError(t, err)
	mt, err := NewMortTableConfig(tbl, DefaultSettings())
	require.NoError(t, err)

	for _, age := range []int{20, 49, 80, 100, 120} {
		want, _ := base.MortalityRate(age, nil)
		got, err := mt.MortalityRate(age, nil)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-12, "qx at %d", age)
	}
}

func TestLookups(t *testing.T) {
	mt := sultConfig(t, domain.UDD)

	assert.Equal(t, 20, mt.MinAge())
	assert.Equal(t, 141, mt.MaxAge())
	assert.Equal(t, DefaultRadix, mt.Radix())
	assert.Equal(t, 1.0, mt.Pct())
	assert.Equal(t, domain.UDD, mt.Assumption())

	l49, err := mt.Survivors(49, nil)
	require.NoError(t, err)
	assert.InDelta(t, 98684.875, l49, 1e-3)

	q100, err := mt.MortalityRate(100, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.289584, q100, 1e-6)

	p100, err := mt.SurvivalRate(100, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1-q100, p100, 1e-15)

	d49, err := mt.Deaths(49, nil)
	require.NoError(t, err)
	l50, _ := mt.Survivors(50, nil)
	assert.InDelta(t, l49-l50, d49, 1e-9)

	top, err := mt.Deaths(141, nil)
	require.NoError(t, err)
	l141, _ := mt.Survivors(141, nil)
	assert.Equal(t, l141, top)

	_, err = mt.Survivors(19, nil)
	var re *domain.RangeError
	assert.ErrorAs(t, err, &re)
	_, err = mt.Survivors(142, nil)
	assert.ErrorAs(t, err, &re)
}

func TestSelectedTable(t *testing.T) {
	mt := selectConfig(t)

	sel, err := mt.SelectedTable(intp(31))
	require.NoError(t, err)
	assert.False(t, sel.IsSelect())
	assert.Equal(t, 30, sel.MinAge())
	assert.Equal(t, 33, sel.MaxAge())

	want := []domain.Row{
		{Age: 30, Qx: 0, Lx: 0},
		{Age: 31, Qx: 0.0015, Lx: 996.5007511266899},
		{Age: 32, Qx: 0.004, Lx: 995.006},
		{Age: 33, Qx: 1, Lx: 991.025976},
	}
	require.Equal(t, len(want), sel.Len())
	for i, r := range sel.Rows() {
		assert.Equal(t, want[i].Age, r.Age)
		assert.InDelta(t, want[i].Qx, r.Qx, 1e-12)
		assert.InDelta(t, want[i].Lx, r.Lx, 1e-9)
	}

	ult, err := mt.SelectedTable(nil)
	require.NoError(t, err)
	assert.Equal(t, 30, ult.MinAge())
	r, _ := ult.Lookup(31)
	assert.InDelta(t, 0.003, r.Qx, 1e-12)

	_, err = mt.SelectedTable(intp(40))
	var re *domain.RangeError
	assert.ErrorAs(t, err, &re)

	// ultimate-only tables come back unchanged
	flat := flatTable(t, 0.1, domain.UDD)
	same, err := flat.SelectedTable(intp(1))
	require.NoError(t, err)
	assert.Same(t, flat.Table(), same)
}

func TestSelectLookupsFollowEntryAge(t *testing.T) {
	mt := selectConfig(t)

	q, err := mt.MortalityRate(31, intp(31))
	require.NoError(t, err)
	assert.InDelta(t, 0.0015, q, 1e-12)

	q, err = mt.MortalityRate(31, intp(30))
	require.NoError(t, err)
	assert.InDelta(t, 0.003, q, 1e-12)

	_, err = mt.MortalityRate(31, intp(32))
	var re *domain.RangeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "entry_age", re.Field)
}

func TestMortTableConfig_ConcurrentReads(t *testing.T) {
	mt := sultConfig(t, domain.CFM)
	done := make(chan error, 8)
	for g := 0; g < 8; g++ {
		go func(x int) {
			_, err := mt.WholeLifeInsurance(Query{I: 0.05, X: x})
			done <- err
		}(20 + g*10)
	}
	for g := 0; g < 8; g++ {
		assert.NoError(t, <-done)
	}
}
