package main

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/hed1ad/gofuzzydetect/pkg/detectors/fis"
)

var demoSeed int64

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Evaluate synthetic normal and anomalous regimes side by side",
	RunE:  runDemo,
}

func init() {
	demoCmd.Flags().Int64Var(&demoSeed, "seed", 42, "random seed")
}

func runDemo(cmd *cobra.Command, args []string) error {
	rng := rand.New(rand.NewSource(demoSeed))

	baseline := generateNormalRegime(rng, 500, 3)
	windowNormal := generateNormalRegime(rng, 100, 3)

	// Anomalous regime: shifted means plus inflated, correlated covariance.
	meanShift := []float64{4.0, -4.0, 3.0}
	covAnom := [][]float64{
		{4.0, 3.0, 2.0},
		{3.0, 5.0, 2.5},
		{2.0, 2.5, 3.5},
	}
	windowAnom, err := generateShiftedRegime(rng, 100, meanShift, covAnom)
	if err != nil {
		return err
	}

	det, err := fis.New()
	if err != nil {
		return err
	}
	if err := det.SetBaseline(baseline); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, tc := range []struct {
		title  string
		window [][]float64
	}{
		{"Normal window", windowNormal},
		{"Anomalous window", windowAnom},
	} {
		a, err := det.EvaluateWindow(tc.window)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "=== %s ===\n", tc.title)
		fmt.Fprintf(out, "forecast error (EP):     %.3f\n", a.Indicators.ForecastError)
		fmt.Fprintf(out, "variance change (MV):    %.3f\n", a.Indicators.VarianceChange)
		fmt.Fprintf(out, "correlation change (MC): %.3f\n", a.Indicators.CorrelationChange)
		fmt.Fprintf(out, "anomaly level (crisp):   %.3f\n", a.Score)
		fmt.Fprintf(out, "linguistic label:        %s\n\n", a.Label)
	}
	return nil
}

// generateNormalRegime samples n rows of independent standard normals.
func generateNormalRegime(rng *rand.Rand, n, cols int) [][]float64 {
	data := make([][]float64, n)
	for i := range data {
		row := make([]float64, cols)
		for j := range row {
			row[j] = rng.NormFloat64()
		}
		data[i] = row
	}
	return data
}

// generateShiftedRegime samples n rows from a multivariate normal with the
// given mean and covariance via Cholesky factorization.
func generateShiftedRegime(rng *rand.Rand, n int, mean []float64, cov [][]float64) ([][]float64, error) {
	l, err := cholesky(cov)
	if err != nil {
		return nil, err
	}

	d := len(mean)
	data := make([][]float64, n)
	for i := range data {
		z := make([]float64, d)
		for j := range z {
			z[j] = rng.NormFloat64()
		}
		row := make([]float64, d)
		for j := 0; j < d; j++ {
			row[j] = mean[j]
			for k := 0; k <= j; k++ {
				row[j] += l[j][k] * z[k]
			}
		}
		data[i] = row
	}
	return data, nil
}

// cholesky returns the lower-triangular factor of a symmetric positive
// definite matrix.
func cholesky(m [][]float64) ([][]float64, error) {
	n := len(m)
	l := make([][]float64, n)
	for i := range l {
		l[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		if len(m[i]) != n {
			return nil, fmt.Errorf("covariance matrix is not square")
		}
		for j := 0; j <= i; j++ {
			sum := m[i][j]
			for k := 0; k < j; k++ {
				sum -= l[i][k] * l[j][k]
			}
			if i == j {
				if sum <= 0 {
					return nil, fmt.Errorf("covariance matrix is not positive definite")
				}
				l[i][j] = math.Sqrt(sum)
			} else {
				l[i][j] = sum / l[j][j]
			}
		}
	}
	return l, nil
}
