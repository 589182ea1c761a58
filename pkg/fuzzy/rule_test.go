package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvalAntecedent(t *testing.T) {
	degrees := map[string]map[string]float64{
		"x": {"low": 0.3, "high": 0.7},
		"y": {"low": 0.6, "high": 0.2},
	}

	tests := []struct {
		name string
		ant  Antecedent
		want float64
	}{
		{name: "leaf", ant: Is("x", "low"), want: 0.3},
		{name: "and is min", ant: And(Is("x", "low"), Is("y", "low")), want: 0.3},
		{name: "or is max", ant: Or(Is("x", "low"), Is("y", "low")), want: 0.6},
		{
			name: "nested",
			ant:  Or(And(Is("x", "low"), Is("y", "high")), Is("x", "high")),
			want: 0.7,
		},
		{
			name: "deep min through or",
			ant:  And(Or(Is("x", "low"), Is("y", "low")), Is("y", "high")),
			want: 0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, evalAntecedent(tt.ant, degrees), 1e-9)
		})
	}
}

func TestNewRule(t *testing.T) {
	r := NewRule("r", Is("x", "low"), "normal")
	assert.Equal(t, 1.0, r.Weight)
	assert.Equal(t, "normal", r.Consequent)

	half := r.Weighted(0.5)
	assert.Equal(t, 0.5, half.Weight)
	assert.Equal(t, 1.0, r.Weight, "Weighted returns a copy")
}
