package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qxRows(ages ...int) []Row {
	rows := make([]Row, len(ages))
	for i, a := range ages {
		rows[i] = Row{Age: a, Qx: 0.01 * float64(i+1)}
	}
	return rows
}

func TestNewMortalityTable_OneDimensional(t *testing.T) {
	// unsorted input is accepted and sorted
	tbl, err := NewMortalityTable([]Column{ColumnQx, ColumnAge}, qxRows(62, 60, 61))
	require.NoError(t, err)

	assert.Equal(t, []Column{ColumnAge, ColumnQx}, tbl.Columns())
	assert.False(t, tbl.IsSelect())
	assert.False(t, tbl.Has(ColumnLx))
	assert.Equal(t, 60, tbl.MinAge())
	assert.Equal(t, 62, tbl.MaxAge())
	assert.Equal(t, 3, tbl.Len())

	r, ok := tbl.Lookup(60)
	require.True(t, ok)
	assert.InDelta(t, 0.02, r.Qx, 1e-12)

	_, ok = tbl.Cell(63, 0)
	assert.False(t, ok)

	_, err = tbl.MaxDuration()
	var fe *FormatError
	assert.ErrorAs(t, err, &fe)
}

func TestNewMortalityTable_RowsAreCopied(t *testing.T) {
	rows := qxRows(0, 1)
	tbl, err := NewMortalityTable([]Column{ColumnAge, ColumnQx}, rows)
	require.NoError(t, err)

	rows[0].Qx = 0.9
	out := tbl.Rows()
	out[1].Qx = 0.9

	r, _ := tbl.Lookup(0)
	assert.InDelta(t, 0.01, r.Qx, 1e-12)
	r, _ = tbl.Lookup(1)
	assert.InDelta(t, 0.02, r.Qx, 1e-12)
}

func TestNewMortalityTable_Select(t *testing.T) {
	rows := []Row{
		{Age: 30, Duration: 0, Qx: 0.001}, {Age: 30, Duration: 1, Qx: 0.002}, {Age: 30, Duration: 2, Qx: 0.003},
		{Age: 31, Duration: 1, Qx: 0.002}, {Age: 31, Duration: 2, Qx: 0.004},
		{Age: 32, Duration: 2, Qx: 1},
	}
	tbl, err := NewMortalityTable([]Column{ColumnAge, ColumnQx, ColumnDuration}, rows)
	require.NoError(t, err)
	assert.True(t, tbl.IsSelect())

	minD, err := tbl.MinDuration()
	require.NoError(t, err)
	maxD, err := tbl.MaxDuration()
	require.NoError(t, err)
	assert.Equal(t, 0, minD)
	assert.Equal(t, 2, maxD)

	ult, ok := tbl.Lookup(31)
	require.True(t, ok)
	assert.InDelta(t, 0.004, ult.Qx, 1e-12)
	_, ok = tbl.Cell(31, 0)
	assert.False(t, ok)
}

func TestNewMortalityTable_FormatErrors(t *testing.T) {
	tests := []struct {
		name    string
		columns []Column
		rows    []Row
	}{
		{"no rate column", []Column{ColumnAge, ColumnDuration}, qxRows(0, 1)},
		{"unknown column", []Column{ColumnAge, "mx"}, qxRows(0, 1)},
		{"duplicate column", []Column{ColumnAge, ColumnQx, ColumnQx}, qxRows(0, 1)},
		{"no age column", []Column{ColumnQx}, qxRows(0, 1)},
		{"no rows", []Column{ColumnAge, ColumnQx}, nil},
		{"qx above one", []Column{ColumnAge, ColumnQx}, []Row{{Age: 0, Qx: 1.2}}},
		{"negative lx", []Column{ColumnAge, ColumnLx}, []Row{{Age: 0, Lx: -1}}},
		{"negative age", []Column{ColumnAge, ColumnQx}, []Row{{Age: -1, Qx: 0.1}}},
		{"age gap", []Column{ColumnAge, ColumnQx}, qxRows(0, 1, 3)},
		{"duplicate age", []Column{ColumnAge, ColumnQx}, qxRows(0, 1, 1)},
		{"select gap", []Column{ColumnAge, ColumnQx, ColumnDuration}, []Row{
			{Age: 40, Duration: 0, Qx: 0.1}, {Age: 40, Duration: 2, Qx: 0.2},
			{Age: 41, Duration: 2, Qx: 1},
		}},
		{"ultimate missing", []Column{ColumnAge, ColumnQx, ColumnDuration}, []Row{
			{Age: 40, Duration: 0, Qx: 0.1}, {Age: 40, Duration: 1, Qx: 0.2},
			{Age: 41, Duration: 0, Qx: 0.3},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMortalityTable(tt.columns, tt.rows)
			var fe *FormatError
			require.Error(t, err)
			assert.True(t, errors.As(err, &fe), "want *FormatError, got %T", err)
		})
	}
}

func TestValidationError_Aggregates(t *testing.T) {
	var v Violations
	v.Add(nil)
	assert.NoError(t, v.Err())

	v.Add(NewRangeError("x", 200, "above max age %d", 120))
	v.Add(NewParameterError("m", 0, "must be at least 1"))
	err := v.Err()
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Violations, 2)

	var re *RangeError
	assert.ErrorAs(t, err, &re)
	assert.Equal(t, "x", re.Field)
	var pe *ParameterError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, "m", pe.Field)

	assert.Contains(t, err.Error(), "2 validation error(s)")
	assert.Contains(t, err.Error(), "x=200 out of range: above max age 120")
}
