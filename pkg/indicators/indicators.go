// Package indicators computes the three normalized anomaly indicators of a
// multivariate time-series window against a baseline: forecast error,
// variance change and correlation change, each in [0, 1]. All functions are
// pure; a window is a [][]float64 where each row is one time step.
package indicators

import (
	"errors"
	"fmt"
	"math"
)

const eps = 1e-6

// Indicators holds the three normalized inputs consumed by the fuzzy
// detector.
type Indicators struct {
	ForecastError     float64
	VarianceChange    float64
	CorrelationChange float64
}

// ForecastError returns the mean absolute error between observed and
// predicted values, normalized by the observed value range and clamped to
// [0, 1].
func ForecastError(yTrue, yPred []float64) (float64, error) {
	if len(yTrue) == 0 {
		return 0, errors.New("empty series")
	}
	if len(yTrue) != len(yPred) {
		return 0, fmt.Errorf("series length mismatch: %d vs %d", len(yTrue), len(yPred))
	}

	var mae float64
	lo, hi := yTrue[0], yTrue[0]
	for i, t := range yTrue {
		mae += math.Abs(t - yPred[i])
		if t < lo {
			lo = t
		}
		if t > hi {
			hi = t
		}
	}
	mae /= float64(len(yTrue))
	valueRange := hi - lo + eps

	return clamp01(mae / (valueRange + eps)), nil
}

// VarianceChange scores the increase in per-column variance of the window
// relative to the baseline. Each column's variance ratio is clipped to
// [0, 5]; the mean excess ratio is scaled into [0, 1].
func VarianceChange(window, baseline [][]float64) (float64, error) {
	cols, err := matchingColumns(window, baseline)
	if err != nil {
		return 0, err
	}

	var score float64
	for c := 0; c < cols; c++ {
		ratio := columnVariance(window, c) / (columnVariance(baseline, c) + eps)
		if ratio < 0 {
			ratio = 0
		}
		if ratio > 5 {
			ratio = 5
		}
		score += ratio - 1
	}
	score /= float64(cols)

	return clamp01(score / 4), nil
}

// CorrelationChange scores the change in cross-correlation structure: the
// Frobenius norm of the difference between the window's and the baseline's
// correlation matrices, normalized by the largest possible norm 2d.
func CorrelationChange(window, baseline [][]float64) (float64, error) {
	cols, err := matchingColumns(window, baseline)
	if err != nil {
		return 0, err
	}
	if len(window) < 2 || len(baseline) < 2 {
		return 0, errors.New("correlation needs at least two rows")
	}

	corrW := correlationMatrix(window, cols)
	corrB := correlationMatrix(baseline, cols)

	var frob float64
	for i := 0; i < cols; i++ {
		for j := 0; j < cols; j++ {
			d := corrW[i][j] - corrB[i][j]
			frob += d * d
		}
	}
	frob = math.Sqrt(frob)

	maxPossible := 2 * float64(cols)
	return clamp01(frob / (maxPossible + eps)), nil
}

// FromWindow computes all three indicators for a window against a baseline.
// The forecast for the first column is the naive baseline mean, matching
// the upstream indicator contract: any real forecaster can be substituted
// by calling ForecastError directly.
func FromWindow(window, baseline [][]float64) (Indicators, error) {
	if _, err := matchingColumns(window, baseline); err != nil {
		return Indicators{}, err
	}

	yTrue := column(window, 0)
	mean := meanOf(column(baseline, 0))
	yPred := make([]float64, len(yTrue))
	for i := range yPred {
		yPred[i] = mean
	}

	ep, err := ForecastError(yTrue, yPred)
	if err != nil {
		return Indicators{}, err
	}
	mv, err := VarianceChange(window, baseline)
	if err != nil {
		return Indicators{}, err
	}
	mc, err := CorrelationChange(window, baseline)
	if err != nil {
		return Indicators{}, err
	}

	return Indicators{ForecastError: ep, VarianceChange: mv, CorrelationChange: mc}, nil
}

func matchingColumns(window, baseline [][]float64) (int, error) {
	if len(window) == 0 || len(baseline) == 0 {
		return 0, errors.New("empty window or baseline")
	}
	cols := len(window[0])
	if cols == 0 {
		return 0, errors.New("window has no columns")
	}
	for _, row := range window {
		if len(row) != cols {
			return 0, errors.New("ragged window")
		}
	}
	for _, row := range baseline {
		if len(row) != cols {
			return 0, fmt.Errorf("column count mismatch: window has %d, baseline row has %d", cols, len(row))
		}
	}
	return cols, nil
}

func column(data [][]float64, c int) []float64 {
	out := make([]float64, len(data))
	for i, row := range data {
		out[i] = row[c]
	}
	return out
}

func meanOf(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// columnVariance is the population variance of one column.
func columnVariance(data [][]float64, c int) float64 {
	mean := meanOf(column(data, c))
	var v float64
	for _, row := range data {
		d := row[c] - mean
		v += d * d
	}
	return v / float64(len(data))
}

// correlationMatrix returns the Pearson correlation matrix of the columns.
// A column with near-zero variance correlates 0 with everything and 1 with
// itself rather than producing NaNs.
func correlationMatrix(data [][]float64, cols int) [][]float64 {
	means := make([]float64, cols)
	stds := make([]float64, cols)
	for c := 0; c < cols; c++ {
		means[c] = meanOf(column(data, c))
		stds[c] = math.Sqrt(columnVariance(data, c))
	}

	corr := make([][]float64, cols)
	for i := range corr {
		corr[i] = make([]float64, cols)
		corr[i][i] = 1
	}
	n := float64(len(data))
	for i := 0; i < cols; i++ {
		for j := i + 1; j < cols; j++ {
			if stds[i] < eps || stds[j] < eps {
				continue
			}
			var cov float64
			for _, row := range data {
				cov += (row[i] - means[i]) * (row[j] - means[j])
			}
			cov /= n
			r := cov / (stds[i] * stds[j])
			corr[i][j] = r
			corr[j][i] = r
		}
	}
	return corr
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
