// Package io provides sources for multivariate time series and sinks for
// detection results.
package io

// Reader is the interface for reading a multivariate time series.
type Reader interface {
	// Read returns the complete series; each row is one time step and each
	// column is one series.
	Read() ([][]float64, error)

	// Close releases resources.
	Close() error
}

// Writer is the interface for writing detection results.
type Writer interface {
	// Write outputs a single result.
	Write(result Result) error

	// Close releases resources.
	Close() error
}

// Result represents one scored window.
type Result struct {
	WindowStart  int                `json:"window_start"`
	WindowEnd    int                `json:"window_end"`
	Score        float64            `json:"score"`
	Label        string             `json:"label"`
	IsAnomaly    bool               `json:"is_anomaly"`
	Undetermined bool               `json:"undetermined,omitempty"`
	Indicators   map[string]float64 `json:"indicators,omitempty"`
}
