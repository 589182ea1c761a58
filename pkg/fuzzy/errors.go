package fuzzy

import "errors"

// Errors reported by the fuzzy inference system. Configuration errors
// (ErrInvalidShape, ErrUnknownTerm) are detected once at construction time;
// ErrInputOutOfRange is a per-call error and leaves the engine untouched.
var (
	// ErrInvalidShape indicates membership function parameters that are not
	// monotone non-decreasing, or an otherwise malformed variable definition.
	ErrInvalidShape = errors.New("invalid shape")

	// ErrUnknownTerm indicates a (variable, set) pair that is not declared
	// on the engine's linguistic variables.
	ErrUnknownTerm = errors.New("unknown term")

	// ErrInputOutOfRange indicates a crisp input outside its variable's domain.
	ErrInputOutOfRange = errors.New("input out of range")
)
