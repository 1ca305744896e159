package calculation

import (
	"math"
	"testing"

	"github.com/rpgo/lifetable/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaws_Qx(t *testing.T) {
	tests := []struct {
		name string
		law  Law
		age  int
		want float64
	}{
		{"makeham", MakehamLaw{A: 0.00022, B: 2.7e-6, C: 1.124}, 100, 0.289584},
		{"gompertz is makeham without A", GompertzLaw{B: 2.7e-6, C: 1.124}, 60,
			MakehamLaw{B: 2.7e-6, C: 1.124}.Qx(60)},
		{"constant force", ConstantForceLaw{Lambda: 0.02}, 37, 1 - math.Exp(-0.02)},
		{"de moivre", DeMoivreLaw{Omega: 100}, 40, 1.0 / 60},
		{"de moivre at the limit", DeMoivreLaw{Omega: 100}, 99, 1},
		{"weibull", WeibullLaw{K: 0.00001, N: 2}, 50, 1 - math.Exp(-0.00001/3*(math.Pow(51, 3)-math.Pow(50, 3)))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.law.Validate())
			assert.InDelta(t, tt.want, tt.law.Qx(tt.age), 1e-6)
		})
	}
}

func TestLaws_Validate(t *testing.T) {
	tests := []struct {
		law        Law
		violations int
	}{
		{MakehamLaw{A: 0, B: -1, C: 1}, 2},
		{GompertzLaw{B: 1e-5, C: 0.9}, 1},
		{ConstantForceLaw{}, 1},
		{DeMoivreLaw{}, 1},
		{WeibullLaw{K: 0, N: -1}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.law.Name(), func(t *testing.T) {
			err := tt.law.Validate()
			require.Error(t, err)
			var ve *domain.ValidationError
			if tt.violations > 1 {
				require.ErrorAs(t, err, &ve)
				assert.Len(t, ve.Violations, tt.violations)
			}
			var pe *domain.ParameterError
			assert.ErrorAs(t, err, &pe)
		})
	}
}

func TestLawTable(t *testing.T) {
	tbl, err := LawTable(DeMoivreLaw{Omega: 100}, 0, 150)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.MinAge())
	assert.Equal(t, 99, tbl.MaxAge())

	// de Moivre survivors fall linearly
	mt, err := NewMortTableConfig(tbl, DefaultSettings())
	require.NoError(t, err)
	for _, x := range []int{0, 25, 60, 99} {
		l, err := mt.Survivors(x, nil)
		require.NoError(t, err)
		assert.InDelta(t, float64(DefaultRadix)*float64(100-x)/100, l, 1e-6, "lx at %d", x)
	}

	// a law that never reaches qx = 1 runs to omega
	flat, err := LawTable(ConstantForceLaw{Lambda: 0.05}, 30, 60)
	require.NoError(t, err)
	assert.Equal(t, 60, flat.MaxAge())

	_, err = LawTable(MakehamLaw{B: -1, C: 1.1}, 50, 40)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Violations, 2)
}

func TestLawFromSpec(t *testing.T) {
	law, err := LawFromSpec(domain.LawSpec{Kind: "makeham", A: 0.00022, B: 2.7e-6, C: 1.124})
	require.NoError(t, err)
	assert.Equal(t, MakehamLaw{A: 0.00022, B: 2.7e-6, C: 1.124}, law)

	law, err = LawFromSpec(domain.LawSpec{Kind: "de_moivre", Omega: 110})
	require.NoError(t, err)
	assert.Equal(t, "de_moivre", law.Name())

	_, err = LawFromSpec(domain.LawSpec{Kind: "perks"})
	var pe *domain.ParameterError
	assert.ErrorAs(t, err, &pe)
}
