// Package fuzzy implements a Mamdani-type fuzzy inference system: named
// fuzzy sets grouped into linguistic variables, a rule base over them, and
// an engine that fuzzifies crisp inputs, fires the rules, and defuzzifies
// the aggregated output via centroid.
package fuzzy

import "fmt"

// Set is a named fuzzy set with a triangular or trapezoidal membership
// function. Sets are immutable values; a triangle is stored as a trapezoid
// with a zero-width plateau.
type Set struct {
	name       string
	a, b, c, d float64
}

// Triangular returns a set with a triangular membership function: zero
// outside [a, c], rising over [a, b], falling over [b, c], exactly 1 at b.
// A zero-width edge (a == b or b == c) is a step, not an error.
func Triangular(name string, a, b, c float64) (Set, error) {
	if name == "" {
		return Set{}, fmt.Errorf("%w: empty set name", ErrInvalidShape)
	}
	if a > b || b > c {
		return Set{}, fmt.Errorf("%w: triangular(%g, %g, %g) parameters must be non-decreasing", ErrInvalidShape, a, b, c)
	}
	return Set{name: name, a: a, b: b, c: b, d: c}, nil
}

// Trapezoidal returns a set with a trapezoidal membership function: zero
// outside [a, d], rising over [a, b], plateau 1 over [b, c], falling over
// [c, d].
func Trapezoidal(name string, a, b, c, d float64) (Set, error) {
	if name == "" {
		return Set{}, fmt.Errorf("%w: empty set name", ErrInvalidShape)
	}
	if a > b || b > c || c > d {
		return Set{}, fmt.Errorf("%w: trapezoidal(%g, %g, %g, %g) parameters must be non-decreasing", ErrInvalidShape, a, b, c, d)
	}
	return Set{name: name, a: a, b: b, c: c, d: d}, nil
}

// MustTriangular is like Triangular but panics on error. Intended for fixed
// package-level configuration.
func MustTriangular(name string, a, b, c float64) Set {
	s, err := Triangular(name, a, b, c)
	if err != nil {
		panic(err)
	}
	return s
}

// MustTrapezoidal is like Trapezoidal but panics on error.
func MustTrapezoidal(name string, a, b, c, d float64) Set {
	s, err := Trapezoidal(name, a, b, c, d)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the set's name.
func (s Set) Name() string { return s.name }

// Degree returns the membership degree of x in [0, 1].
func (s Set) Degree(x float64) float64 {
	if x < s.a || x > s.d {
		return 0
	}
	if x >= s.b && x <= s.c {
		return 1
	}
	// x in [a, b) implies b > a; x in (c, d] implies d > c, so the zero-width
	// edge cases never reach a division.
	if x < s.b {
		return (x - s.a) / (s.b - s.a)
	}
	return (s.d - x) / (s.d - s.c)
}
