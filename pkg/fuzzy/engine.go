package fuzzy

import (
	"fmt"
	"math"
)

// DefaultResolution is the step used to discretize the output domain for
// centroid defuzzification. It trades integration accuracy for work per
// call; it does not change the semantics of the rule base.
const DefaultResolution = 0.01

// FallbackLabel is the label reported when no rule fires above zero
// strength, so callers can tell "computed normal" from "no rule fired".
const FallbackLabel = "undetermined"

// Result is the outcome of one evaluation: the defuzzified score, the
// output set with the highest membership at that score, and the per-set
// aggregated firing strengths for diagnostics. Undetermined is true when
// no rule fired and the fallback score was returned.
type Result struct {
	Score        float64
	Label        string
	Undetermined bool
	Activations  map[string]float64
}

// Engine is a Mamdani inference engine over a fixed set of input variables,
// one output variable, and a rule base. It is immutable after construction
// and safe for concurrent use without locking; each Evaluate call allocates
// only call-local state.
type Engine struct {
	inputs        map[string]*Variable
	output        *Variable
	rules         []Rule
	resolution    float64
	fallbackScore float64
	fallbackLabel string
}

// Option configures an Engine.
type Option func(*Engine)

// WithResolution sets the output-domain discretization step for centroid
// integration.
func WithResolution(step float64) Option {
	return func(e *Engine) {
		e.resolution = step
	}
}

// WithFallback sets the score and label returned when no rule fires.
// The default is the midpoint of the output domain with FallbackLabel.
func WithFallback(score float64, label string) Option {
	return func(e *Engine) {
		e.fallbackScore = score
		e.fallbackLabel = label
	}
}

// NewEngine builds an engine from input variables, an output variable and a
// rule base, validating every rule against the declared variables. All
// configuration errors surface here; a constructed engine cannot fail on
// well-formed inputs.
func NewEngine(inputs []*Variable, output *Variable, rules []Rule, opts ...Option) (*Engine, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: engine needs at least one input variable", ErrInvalidShape)
	}
	if output == nil {
		return nil, fmt.Errorf("%w: engine needs an output variable", ErrInvalidShape)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: engine needs at least one rule", ErrInvalidShape)
	}

	e := &Engine{
		inputs:        make(map[string]*Variable, len(inputs)),
		output:        output,
		rules:         make([]Rule, len(rules)),
		resolution:    DefaultResolution,
		fallbackScore: output.Midpoint(),
		fallbackLabel: FallbackLabel,
	}
	for _, v := range inputs {
		if _, dup := e.inputs[v.Name()]; dup {
			return nil, fmt.Errorf("%w: duplicate input variable %q", ErrInvalidShape, v.Name())
		}
		e.inputs[v.Name()] = v
	}

	copy(e.rules, rules)
	for i, r := range e.rules {
		if r.Antecedent == nil {
			return nil, fmt.Errorf("rule %q: nil antecedent", r.Label)
		}
		if err := e.validateAntecedent(r.Label, r.Antecedent); err != nil {
			return nil, err
		}
		if _, ok := output.Set(r.Consequent); !ok {
			return nil, fmt.Errorf("%w: rule %q concludes %s[%s]", ErrUnknownTerm, r.Label, output.Name(), r.Consequent)
		}
		if r.Weight < 0 {
			return nil, fmt.Errorf("rule %q: negative weight %g", r.Label, r.Weight)
		}
		if r.Weight == 0 {
			e.rules[i].Weight = 1.0
		}
	}

	for _, opt := range opts {
		opt(e)
	}
	if e.resolution <= 0 {
		return nil, fmt.Errorf("%w: resolution must be positive, got %g", ErrInvalidShape, e.resolution)
	}
	return e, nil
}

func (e *Engine) validateAntecedent(label string, a Antecedent) error {
	switch n := a.(type) {
	case term:
		v, ok := e.inputs[n.variable]
		if !ok {
			return fmt.Errorf("%w: rule %q references variable %q", ErrUnknownTerm, label, n.variable)
		}
		if _, ok := v.Set(n.set); !ok {
			return fmt.Errorf("%w: rule %q references %s[%s]", ErrUnknownTerm, label, n.variable, n.set)
		}
		return nil
	case andNode:
		if len(n.children) == 0 {
			return fmt.Errorf("rule %q: empty conjunction", label)
		}
		for _, c := range n.children {
			if err := e.validateAntecedent(label, c); err != nil {
				return err
			}
		}
		return nil
	case orNode:
		if len(n.children) == 0 {
			return fmt.Errorf("rule %q: empty disjunction", label)
		}
		for _, c := range n.children {
			if err := e.validateAntecedent(label, c); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("rule %q: unsupported antecedent node %T", label, a)
	}
}

// Rules returns the engine's rule base.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Output returns the engine's output variable.
func (e *Engine) Output() *Variable { return e.output }

// Evaluate maps one crisp value per input variable to a defuzzified score
// and label. Every declared input must be present and inside its variable's
// domain; out-of-domain values are rejected rather than clamped so upstream
// normalization bugs surface. When no rule fires above zero strength the
// configured fallback score and label are returned with Undetermined set.
func (e *Engine) Evaluate(in map[string]float64) (Result, error) {
	for name := range in {
		if _, ok := e.inputs[name]; !ok {
			return Result{}, fmt.Errorf("%w: input %q is not a declared variable", ErrUnknownTerm, name)
		}
	}

	degrees := make(map[string]map[string]float64, len(e.inputs))
	for name, v := range e.inputs {
		x, ok := in[name]
		if !ok {
			return Result{}, fmt.Errorf("%w: no value for input variable %q", ErrUnknownTerm, name)
		}
		lo, hi := v.Domain()
		if math.IsNaN(x) || x < lo || x > hi {
			return Result{}, fmt.Errorf("%w: %s=%v outside [%g, %g]", ErrInputOutOfRange, name, x, lo, hi)
		}
		degrees[name] = v.Fuzzify(x)
	}

	// OR-aggregation: per output set, the max firing strength across rules
	// concluding that set.
	activations := make(map[string]float64, len(e.output.order))
	for _, name := range e.output.order {
		activations[name] = 0
	}
	for _, r := range e.rules {
		s := r.Weight * evalAntecedent(r.Antecedent, degrees)
		if s > activations[r.Consequent] {
			activations[r.Consequent] = s
		}
	}

	score, fired := e.centroid(activations)
	if !fired {
		return Result{
			Score:        e.fallbackScore,
			Label:        e.fallbackLabel,
			Undetermined: true,
			Activations:  activations,
		}, nil
	}
	return Result{
		Score:       score,
		Label:       e.labelAt(score),
		Activations: activations,
	}, nil
}

// centroid integrates the aggregated output fuzzy set over the discretized
// output domain. The aggregated membership at a sample is the max over
// output sets of min(activation, membership): Mamdani min-implication with
// max-aggregation. Returns fired=false when the total mass is zero.
func (e *Engine) centroid(activations map[string]float64) (score float64, fired bool) {
	lo, hi := e.output.Domain()
	steps := int(math.Round((hi - lo) / e.resolution))
	var num, den float64
	for i := 0; i <= steps; i++ {
		x := lo + float64(i)*e.resolution
		var m float64
		for name, strength := range activations {
			if strength <= 0 {
				continue
			}
			d := e.output.sets[name].Degree(x)
			if d > strength {
				d = strength
			}
			if d > m {
				m = d
			}
		}
		num += x * m
		den += m
	}
	if den == 0 {
		return 0, false
	}
	return num / den, true
}

// labelAt returns the output set with the highest membership at x, ties
// broken by declaration order.
func (e *Engine) labelAt(x float64) string {
	best := e.output.order[0]
	bestDeg := e.output.sets[best].Degree(x)
	for _, name := range e.output.order[1:] {
		if d := e.output.sets[name].Degree(x); d > bestDeg {
			best, bestDeg = name, d
		}
	}
	return best
}
