package fuzzy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriangular(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		wantErr bool
	}{
		{name: "valid", a: 0, b: 0.5, c: 1},
		{name: "zero-width rising edge", a: 0, b: 0, c: 0.4},
		{name: "zero-width falling edge", a: 0.6, b: 1, c: 1},
		{name: "degenerate spike", a: 0.5, b: 0.5, c: 0.5},
		{name: "non-monotonic", a: 0.5, b: 0.2, c: 0.8, wantErr: true},
		{name: "peak after end", a: 0, b: 0.9, c: 0.8, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Triangular("s", tt.a, tt.b, tt.c)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidShape)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTrapezoidal(t *testing.T) {
	_, err := Trapezoidal("s", 0, 1, 2, 3)
	assert.NoError(t, err)

	_, err = Trapezoidal("s", 0, 2, 1, 3)
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = Triangular("", 0, 1, 2)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestDegree(t *testing.T) {
	tests := []struct {
		name string
		set  Set
		x    float64
		want float64
	}{
		{name: "triangle below support", set: MustTriangular("s", 0, 0.5, 1), x: -0.1, want: 0},
		{name: "triangle rising", set: MustTriangular("s", 0, 0.5, 1), x: 0.25, want: 0.5},
		{name: "triangle peak", set: MustTriangular("s", 0, 0.5, 1), x: 0.5, want: 1},
		{name: "triangle falling", set: MustTriangular("s", 0, 0.5, 1), x: 0.75, want: 0.5},
		{name: "triangle above support", set: MustTriangular("s", 0, 0.5, 1), x: 1.1, want: 0},
		{name: "step at left edge", set: MustTriangular("s", 0, 0, 0.4), x: 0, want: 1},
		{name: "step edge falling", set: MustTriangular("s", 0, 0, 0.4), x: 0.2, want: 0.5},
		{name: "step at right edge", set: MustTriangular("s", 0.6, 1, 1), x: 1, want: 1},
		{name: "step edge rising", set: MustTriangular("s", 0.6, 1, 1), x: 0.8, want: 0.5},
		{name: "spike at point", set: MustTriangular("s", 0.5, 0.5, 0.5), x: 0.5, want: 1},
		{name: "spike off point", set: MustTriangular("s", 0.5, 0.5, 0.5), x: 0.500001, want: 0},
		{name: "trapezoid rising", set: MustTrapezoidal("s", 0, 1, 2, 3), x: 0.5, want: 0.5},
		{name: "trapezoid plateau", set: MustTrapezoidal("s", 0, 1, 2, 3), x: 1.5, want: 1},
		{name: "trapezoid falling", set: MustTrapezoidal("s", 0, 1, 2, 3), x: 2.5, want: 0.5},
		{name: "box plateau", set: MustTrapezoidal("s", 0, 0, 1, 1), x: 0.5, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.set.Degree(tt.x), 1e-9)
		})
	}
}

func TestDegreeProperties(t *testing.T) {
	sets := []struct {
		set        Set
		continuous bool
	}{
		{set: MustTriangular("tri", 0, 0.5, 1), continuous: true},
		{set: MustTrapezoidal("trap", 0.1, 0.3, 0.7, 0.9), continuous: true},
		// zero-width edges are steps, so only the range properties hold
		{set: MustTriangular("left-step", 0, 0, 0.4)},
		{set: MustTriangular("right-step", 0.6, 1, 1)},
	}

	const step = 1e-3
	for _, tt := range sets {
		t.Run(tt.set.Name(), func(t *testing.T) {
			prev := math.NaN()
			for x := -0.5; x <= 1.5; x += step {
				d := tt.set.Degree(x)
				require.GreaterOrEqual(t, d, 0.0)
				require.LessOrEqual(t, d, 1.0)
				// Continuity: the steepest edge here has width 0.2, so
				// adjacent samples differ by at most step/0.2.
				if tt.continuous && !math.IsNaN(prev) {
					require.LessOrEqual(t, math.Abs(d-prev), step/0.2+1e-9,
						"jump at x=%g", x)
				}
				prev = d
			}
		})
	}
}
