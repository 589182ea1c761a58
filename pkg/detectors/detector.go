// Package detectors defines the contract for anomaly detectors that score
// multivariate time-series windows against a baseline regime.
package detectors

import "github.com/hed1ad/gofuzzydetect/pkg/indicators"

// Detector is the common interface for window-based anomaly detectors.
type Detector interface {
	// SetBaseline stores the reference regime the indicators are computed
	// against. data is a 2D slice where each row is one time step and each
	// column is one series.
	SetBaseline(data [][]float64) error

	// EvaluateWindow scores a window against the stored baseline.
	EvaluateWindow(window [][]float64) (Assessment, error)
}

// Assessment is the result of scoring one window.
type Assessment struct {
	// Score is the anomaly level in the detector's output domain.
	Score float64
	// Label is the linguistic anomaly level.
	Label string
	// IsAnomaly indicates the score reached the detector's threshold.
	IsAnomaly bool
	// Undetermined indicates the detector could not discriminate the window
	// and reported its fallback score.
	Undetermined bool
	// Indicators are the normalized inputs the score was derived from.
	Indicators indicators.Indicators
}

// Config holds common configuration for detectors.
type Config struct {
	// WindowSize is the number of time steps scored at once.
	WindowSize int
	// Threshold is the score at or above which a window counts as anomalous.
	Threshold float64
}

// DefaultConfig returns sensible defaults for detector configuration.
func DefaultConfig() Config {
	return Config{
		WindowSize: 100,
		Threshold:  5.0,
	}
}
