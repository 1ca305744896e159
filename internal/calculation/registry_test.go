package calculation

import (
	"testing"

	"github.com/rpgo/lifetable/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueFunctions_Registry(t *testing.T) {
	fns := ValueFunctions()
	require.Len(t, fns, 26)

	seen := make(map[string]bool)
	for _, f := range fns {
		assert.False(t, seen[f.Notation], "duplicate notation %s", f.Notation)
		seen[f.Notation] = true
		assert.NotNil(t, f.Eval, f.Notation)
		assert.NotEmpty(t, f.Description, f.Notation)
	}

	// callers get a copy
	fns[0].Notation = "changed"
	assert.Equal(t, "Exn", ValueFunctions()[0].Notation)
}

func TestLookupValueFunction(t *testing.T) {
	tests := []struct {
		notation string
		want     string
		found    bool
	}{
		{"Ax", "Ax", true},
		{"ax", "ax", true},
		{"Axn1", "Exn", true},
		{"nEx", "Exn", true},
		{"A1xn", "Ax1n", true},
		{"AX", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.notation, func(t *testing.T) {
			f, ok := LookupValueFunction(tt.notation)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, f.Notation)
		})
	}
}

func TestValueFunctions_EvaluateOnSULT(t *testing.T) {
	mt := sultConfig(t, domain.UDD)

	for _, f := range ValueFunctions() {
		t.Run(f.Notation, func(t *testing.T) {
			got, err := f.Eval(mt, Query{I: 0.05, X: 50, N: 15, G: 0.01})
			require.NoError(t, err)
			assert.Greater(t, got, 0.0)

			direct, ok := LookupValueFunction(f.Notation)
			require.True(t, ok)
			again, err := direct.Eval(mt, Query{I: 0.05, X: 50, N: 15, G: 0.01})
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}
