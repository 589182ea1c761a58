package fis

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hed1ad/gofuzzydetect/pkg/detectors"
	"github.com/hed1ad/gofuzzydetect/pkg/fuzzy"
)

func newDetector(t *testing.T, opts ...Option) *Detector {
	t.Helper()
	d, err := New(opts...)
	require.NoError(t, err)
	return d
}

func TestEvaluateBoundaries(t *testing.T) {
	d := newDetector(t)

	t.Run("all quiet", func(t *testing.T) {
		res, err := d.Evaluate(0, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, LabelNormal, res.Label)
		assert.Less(t, res.Score, 2.0)
		assert.GreaterOrEqual(t, res.Score, 0.0)
	})

	t.Run("everything broken", func(t *testing.T) {
		res, err := d.Evaluate(1, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, LabelStrongly, res.Label)
		assert.Greater(t, res.Score, 8.0)
		assert.LessOrEqual(t, res.Score, 10.0)
	})
}

func TestEvaluateRuleTable(t *testing.T) {
	d := newDetector(t)

	tests := []struct {
		name       string
		ep, mv, mc float64
		wantLabel  string
	}{
		{name: "high forecast error alone", ep: 1, mv: 0, mc: 0, wantLabel: LabelModerately},
		{name: "variance and correlation break", ep: 0, mv: 1, mc: 1, wantLabel: LabelModerately},
		{name: "everything medium", ep: 0.5, mv: 0.5, mc: 0.5, wantLabel: LabelModerately},
		{name: "error and variance high", ep: 1, mv: 1, mc: 0, wantLabel: LabelStrongly},
		{name: "medium forecast error", ep: 0.5, mv: 0, mc: 0, wantLabel: LabelSlightly},
		{name: "medium variance change", ep: 0, mv: 0.5, mc: 0, wantLabel: LabelSlightly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := d.Evaluate(tt.ep, tt.mv, tt.mc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, res.Label)
			assert.GreaterOrEqual(t, res.Score, 0.0)
			assert.LessOrEqual(t, res.Score, 10.0)
		})
	}
}

func TestEvaluateMonotonicSpotCheck(t *testing.T) {
	d := newDetector(t)

	// raising only the forecast error must not lower the score
	grid := []float64{0, 0.2, 0.4, 0.5, 0.65, 0.8, 1.0}
	prev := -1.0
	for _, ep := range grid {
		res, err := d.Evaluate(ep, 0, 0)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Score, prev-1e-9, "ep=%g", ep)
		prev = res.Score
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	d := newDetector(t)

	a, err := d.Evaluate(0.31, 0.62, 0.14)
	require.NoError(t, err)
	b, err := d.Evaluate(0.31, 0.62, 0.14)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEvaluateOutOfRange(t *testing.T) {
	d := newDetector(t)

	_, err := d.Evaluate(1.5, 0, 0)
	assert.ErrorIs(t, err, fuzzy.ErrInputOutOfRange)

	_, err = d.Evaluate(0, -0.2, 0)
	assert.ErrorIs(t, err, fuzzy.ErrInputOutOfRange)

	// a rejected call leaves the detector usable
	res, err := d.Evaluate(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, LabelNormal, res.Label)
}

func TestEvaluateFallback(t *testing.T) {
	// a degenerate rule base that cannot match a quiet input
	d := newDetector(t, WithRules([]fuzzy.Rule{
		fuzzy.NewRule("only_rule", fuzzy.And(
			fuzzy.Is(VarForecastError, "high"),
			fuzzy.Is(VarVarianceChange, "high"),
			fuzzy.Is(VarCorrelationChange, "high"),
		), LabelStrongly),
	}))

	res, err := d.Evaluate(0, 0, 0)
	require.NoError(t, err)
	assert.True(t, res.Undetermined)
	assert.Equal(t, 5.0, res.Score, "fallback is the output-domain midpoint")
	assert.Equal(t, fuzzy.FallbackLabel, res.Label)
}

func TestEvaluateConcurrent(t *testing.T) {
	d := newDetector(t)

	want, err := d.Evaluate(0.4, 0.3, 0.2)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				got, err := d.Evaluate(0.4, 0.3, 0.2)
				assert.NoError(t, err)
				assert.Equal(t, want, got)
			}
		}()
	}
	wg.Wait()
}

func TestNewOptions(t *testing.T) {
	t.Run("invalid window size", func(t *testing.T) {
		_, err := New(WithWindowSize(1))
		assert.Error(t, err)
	})

	t.Run("invalid resolution", func(t *testing.T) {
		_, err := New(WithResolution(-1))
		assert.ErrorIs(t, err, fuzzy.ErrInvalidShape)
	})

	t.Run("invalid custom rule", func(t *testing.T) {
		_, err := New(WithRules([]fuzzy.Rule{
			fuzzy.NewRule("bad", fuzzy.Is("no_such_variable", "low"), LabelNormal),
		}))
		assert.ErrorIs(t, err, fuzzy.ErrUnknownTerm)
	})

	t.Run("defaults", func(t *testing.T) {
		d := newDetector(t)
		cfg := detectors.DefaultConfig()
		assert.Equal(t, cfg.Threshold, d.Threshold())
		assert.Equal(t, cfg.WindowSize, d.WindowSize())
	})
}

func TestEvaluateWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	gen := func(n int, mean, std float64) [][]float64 {
		data := make([][]float64, n)
		for i := range data {
			data[i] = []float64{
				mean + std*rng.NormFloat64(),
				mean + std*rng.NormFloat64(),
				mean + std*rng.NormFloat64(),
			}
		}
		return data
	}

	d := newDetector(t)

	t.Run("no baseline", func(t *testing.T) {
		_, err := d.EvaluateWindow(gen(100, 0, 1))
		assert.Error(t, err)
	})

	baseline := gen(500, 0, 1)
	require.NoError(t, d.SetBaseline(baseline))

	normal, err := d.EvaluateWindow(gen(100, 0, 1))
	require.NoError(t, err)
	assert.False(t, normal.IsAnomaly)
	assert.Less(t, normal.Score, 3.0)

	anomalous, err := d.EvaluateWindow(gen(100, 5, 3))
	require.NoError(t, err)
	assert.True(t, anomalous.IsAnomaly)
	assert.Greater(t, anomalous.Score, normal.Score)
	assert.Equal(t, 1.0, anomalous.Indicators.VarianceChange,
		"ninefold variance inflation saturates the indicator")

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := d.EvaluateWindow([][]float64{{1, 2}, {3, 4}})
		assert.Error(t, err)
	})

	t.Run("short baseline rejected", func(t *testing.T) {
		assert.Error(t, d.SetBaseline([][]float64{{1, 2, 3}}))
	})
}

func TestDefaultRulesValid(t *testing.T) {
	rules := DefaultRules()
	assert.NotEmpty(t, rules)
	for _, r := range rules {
		assert.Equal(t, 1.0, r.Weight, "rule %q", r.Label)
	}
}

func BenchmarkEvaluate(b *testing.B) {
	d, err := New()
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Evaluate(0.4, 0.3, 0.2)
	}
}
