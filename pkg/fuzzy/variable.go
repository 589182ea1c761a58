package fuzzy

import "fmt"

// Variable is a linguistic variable: a set of named fuzzy sets over a
// numeric domain. Set order is insertion order and is used for label
// tie-breaking. Variables are immutable after construction.
type Variable struct {
	name   string
	lo, hi float64
	order  []string
	sets   map[string]Set
}

// NewVariable creates a linguistic variable over the domain [lo, hi] with
// at least one fuzzy set. Duplicate set names are rejected.
func NewVariable(name string, lo, hi float64, sets ...Set) (*Variable, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty variable name", ErrInvalidShape)
	}
	if lo >= hi {
		return nil, fmt.Errorf("%w: variable %q: domain [%g, %g] is empty", ErrInvalidShape, name, lo, hi)
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("%w: variable %q has no sets", ErrInvalidShape, name)
	}
	v := &Variable{
		name:  name,
		lo:    lo,
		hi:    hi,
		order: make([]string, 0, len(sets)),
		sets:  make(map[string]Set, len(sets)),
	}
	for _, s := range sets {
		if _, dup := v.sets[s.name]; dup {
			return nil, fmt.Errorf("%w: variable %q: duplicate set %q", ErrInvalidShape, name, s.name)
		}
		v.order = append(v.order, s.name)
		v.sets[s.name] = s
	}
	return v, nil
}

// Name returns the variable's name.
func (v *Variable) Name() string { return v.name }

// Domain returns the variable's numeric range.
func (v *Variable) Domain() (lo, hi float64) { return v.lo, v.hi }

// Midpoint returns the middle of the variable's domain.
func (v *Variable) Midpoint() float64 { return (v.lo + v.hi) / 2 }

// Sets returns the set names in declaration order.
func (v *Variable) Sets() []string {
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}

// Set returns the named fuzzy set.
func (v *Variable) Set(name string) (Set, bool) {
	s, ok := v.sets[name]
	return s, ok
}

// Fuzzify evaluates every set's membership function at x and returns all
// degrees, zeros included. Pure function of (variable, x).
func (v *Variable) Fuzzify(x float64) map[string]float64 {
	out := make(map[string]float64, len(v.order))
	for name, s := range v.sets {
		out[name] = s.Degree(x)
	}
	return out
}
