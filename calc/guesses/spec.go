package guesses

import "slices"

// Spec is an initial guess that is either a fixed vector or computed from the data.
// The zero value means no guess was supplied.
type Spec struct {
	fixed []float64
	fn    Func
}

// Fixed returns a Spec that always resolves to a copy of guess.
func Fixed(guess []float64) Spec {
	return Spec{fixed: slices.Clone(guess)}
}

// Computed returns a Spec that calls fn with the fit data on every resolution.
func Computed(fn Func) Spec {
	return Spec{fn: fn}
}

// IsZero reports whether no guess was supplied.
func (s Spec) IsZero() bool {
	return s.fixed == nil && s.fn == nil
}

// IsFixed reports whether the guess is a fixed vector.
func (s Spec) IsFixed() bool {
	return s.fixed != nil
}

// IsComputed reports whether the guess is computed from the data.
func (s Spec) IsComputed() bool {
	return s.fn != nil
}

// Len returns the length of a fixed guess, or -1 when the length is only known
// after resolution.
func (s Spec) Len() int {
	if s.fixed != nil {
		return len(s.fixed)
	}

	return -1
}

// Resolve produces the guess for one fit. Computed guesses call their function
// exactly once. The boolean is false for the zero Spec.
func (s Spec) Resolve(x, y []float64) ([]float64, bool) {
	switch {
	case s.fn != nil:
		return s.fn(x, y), true
	case s.fixed != nil:
		return slices.Clone(s.fixed), true
	default:
		return nil, false
	}
}
