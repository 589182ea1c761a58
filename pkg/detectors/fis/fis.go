// Package fis implements a fuzzy-inference anomaly detector: a fixed
// Mamdani rule base over three normalized window indicators, producing an
// anomaly level in [0, 10] and a linguistic label.
package fis

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hed1ad/gofuzzydetect/pkg/detectors"
	"github.com/hed1ad/gofuzzydetect/pkg/fuzzy"
	"github.com/hed1ad/gofuzzydetect/pkg/indicators"
)

// Input variable names.
const (
	VarForecastError     = "forecast_error"
	VarVarianceChange    = "variance_change"
	VarCorrelationChange = "correlation_change"
	VarAnomalyLevel      = "anomaly_level"
)

// Output labels, from least to most anomalous.
const (
	LabelNormal     = "normal"
	LabelSlightly   = "slightly_anomalous"
	LabelModerately = "moderately_anomalous"
	LabelStrongly   = "strongly_anomalous"
)

// Detector maps the indicator triple (forecast error, variance change,
// correlation change) to an anomaly level via Mamdani inference. The
// linguistic variables and rule base are built once at construction and
// never mutated; Evaluate is safe for concurrent use. The baseline used by
// EvaluateWindow is guarded separately.
type Detector struct {
	engine     *fuzzy.Engine
	threshold  float64
	windowSize int

	// staged until New builds the engine
	resolution float64
	rules      []fuzzy.Rule

	mu       sync.RWMutex
	baseline [][]float64
}

// Option configures a Detector.
type Option func(*Detector) error

// WithResolution sets the centroid integration step.
func WithResolution(step float64) Option {
	return func(d *Detector) error {
		d.resolution = step
		return nil
	}
}

// WithRules replaces the default rule base.
func WithRules(rules []fuzzy.Rule) Option {
	return func(d *Detector) error {
		d.rules = rules
		return nil
	}
}

// WithThreshold sets the score at or above which a window counts as
// anomalous.
func WithThreshold(t float64) Option {
	return func(d *Detector) error {
		d.threshold = t
		return nil
	}
}

// WithWindowSize sets the expected number of rows per evaluated window.
func WithWindowSize(n int) Option {
	return func(d *Detector) error {
		if n < 2 {
			return fmt.Errorf("window size must be at least 2, got %d", n)
		}
		d.windowSize = n
		return nil
	}
}

// New creates a detector with the default linguistic variables and rule
// base. All configuration errors surface here.
func New(opts ...Option) (*Detector, error) {
	cfg := detectors.DefaultConfig()
	d := &Detector{
		threshold:  cfg.Threshold,
		windowSize: cfg.WindowSize,
		resolution: fuzzy.DefaultResolution,
		rules:      DefaultRules(),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	inputs, output := defaultVariables()
	engine, err := fuzzy.NewEngine(inputs, output, d.rules, fuzzy.WithResolution(d.resolution))
	if err != nil {
		return nil, err
	}
	d.engine = engine
	return d, nil
}

// Evaluate runs the inference engine on one indicator triple. Each input
// must lie in [0, 1]; violations return fuzzy.ErrInputOutOfRange and leave
// the detector untouched.
func (d *Detector) Evaluate(ep, mv, mc float64) (fuzzy.Result, error) {
	return d.engine.Evaluate(map[string]float64{
		VarForecastError:     ep,
		VarVarianceChange:    mv,
		VarCorrelationChange: mc,
	})
}

// SetBaseline stores a copy of the reference regime for EvaluateWindow.
func (d *Detector) SetBaseline(data [][]float64) error {
	if len(data) < 2 {
		return errors.New("baseline needs at least two rows")
	}
	cp := make([][]float64, len(data))
	for i, row := range data {
		cp[i] = append([]float64(nil), row...)
	}
	d.mu.Lock()
	d.baseline = cp
	d.mu.Unlock()
	return nil
}

// EvaluateWindow computes the indicator triple for a window against the
// stored baseline and scores it.
func (d *Detector) EvaluateWindow(window [][]float64) (detectors.Assessment, error) {
	d.mu.RLock()
	baseline := d.baseline
	d.mu.RUnlock()

	if baseline == nil {
		return detectors.Assessment{}, errors.New("no baseline set")
	}

	ind, err := indicators.FromWindow(window, baseline)
	if err != nil {
		return detectors.Assessment{}, err
	}

	res, err := d.Evaluate(ind.ForecastError, ind.VarianceChange, ind.CorrelationChange)
	if err != nil {
		return detectors.Assessment{}, err
	}

	return detectors.Assessment{
		Score:        res.Score,
		Label:        res.Label,
		IsAnomaly:    res.Score >= d.threshold,
		Undetermined: res.Undetermined,
		Indicators:   ind,
	}, nil
}

// Threshold returns the anomaly threshold.
func (d *Detector) Threshold() float64 { return d.threshold }

// WindowSize returns the expected window length.
func (d *Detector) WindowSize() int { return d.windowSize }

// defaultVariables builds the three input variables over [0, 1] with
// low/medium/high triangles and the output variable over [0, 10] with the
// four anomaly-level triangles.
func defaultVariables() ([]*fuzzy.Variable, *fuzzy.Variable) {
	inputSets := func() []fuzzy.Set {
		return []fuzzy.Set{
			fuzzy.MustTriangular("low", 0.0, 0.0, 0.4),
			fuzzy.MustTriangular("medium", 0.2, 0.5, 0.8),
			fuzzy.MustTriangular("high", 0.6, 1.0, 1.0),
		}
	}

	inputs := make([]*fuzzy.Variable, 0, 3)
	for _, name := range []string{VarForecastError, VarVarianceChange, VarCorrelationChange} {
		v, err := fuzzy.NewVariable(name, 0, 1, inputSets()...)
		if err != nil {
			panic(err)
		}
		inputs = append(inputs, v)
	}

	output, err := fuzzy.NewVariable(VarAnomalyLevel, 0, 10,
		fuzzy.MustTriangular(LabelNormal, 0, 0, 3),
		fuzzy.MustTriangular(LabelSlightly, 1, 3, 5),
		fuzzy.MustTriangular(LabelModerately, 3, 5, 7),
		fuzzy.MustTriangular(LabelStrongly, 6, 10, 10),
	)
	if err != nil {
		panic(err)
	}
	return inputs, output
}

// DefaultRules returns the detector's rule base. Single-indicator ramps map
// one elevated indicator to slight or moderate anomaly; pairwise medium
// rules cover mixed disturbances; high forecast error combined with any
// elevated second indicator is strongly anomalous. A jointly high variance
// and correlation change without forecast error stays moderate: the regime
// shifted shape without shifting level.
func DefaultRules() []fuzzy.Rule {
	fe := func(set string) fuzzy.Antecedent { return fuzzy.Is(VarForecastError, set) }
	vc := func(set string) fuzzy.Antecedent { return fuzzy.Is(VarVarianceChange, set) }
	cc := func(set string) fuzzy.Antecedent { return fuzzy.Is(VarCorrelationChange, set) }

	return []fuzzy.Rule{
		fuzzy.NewRule("normal_all_low",
			fuzzy.And(fe("low"), vc("low"), cc("low")), LabelNormal),

		fuzzy.NewRule("slight_medium_fe",
			fuzzy.And(fe("medium"), vc("low"), cc("low")), LabelSlightly),
		fuzzy.NewRule("slight_medium_vc",
			fuzzy.And(fe("low"), vc("medium"), cc("low")), LabelSlightly),
		fuzzy.NewRule("slight_medium_cc",
			fuzzy.And(fe("low"), vc("low"), cc("medium")), LabelSlightly),

		fuzzy.NewRule("moderate_fe_vc",
			fuzzy.And(fe("medium"), vc("medium")), LabelModerately),
		fuzzy.NewRule("moderate_fe_cc",
			fuzzy.And(fe("medium"), cc("medium")), LabelModerately),
		fuzzy.NewRule("moderate_vc_cc",
			fuzzy.And(vc("medium"), cc("medium")), LabelModerately),
		fuzzy.NewRule("moderate_high_fe",
			fuzzy.And(fe("high"), vc("low"), cc("low")), LabelModerately),
		fuzzy.NewRule("moderate_high_vc_cc",
			fuzzy.And(fe("low"), vc("high"), cc("high")), LabelModerately),

		fuzzy.NewRule("strong_fe_vc",
			fuzzy.And(fe("high"), vc("high")), LabelStrongly),
		fuzzy.NewRule("strong_fe_cc",
			fuzzy.And(fe("high"), cc("high")), LabelStrongly),
		fuzzy.NewRule("strong_high_fe_medium_vc",
			fuzzy.And(fe("high"), vc("medium")), LabelStrongly),
		fuzzy.NewRule("strong_medium_fe_high_vc",
			fuzzy.And(fe("medium"), vc("high")), LabelStrongly),
		fuzzy.NewRule("strong_high_fe_medium_cc",
			fuzzy.And(fe("high"), cc("medium")), LabelStrongly),
	}
}
