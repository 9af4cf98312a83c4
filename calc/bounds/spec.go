package bounds

// Spec is a bound specification that is either fixed or computed from X.
// The zero value means unbounded.
type Spec struct {
	fixed *Bounds
	fn    Func
}

// Fixed returns a Spec that always resolves to a copy of b.
func Fixed(b Bounds) Spec {
	c := b.Clone()
	return Spec{fixed: &c}
}

// Computed returns a Spec that calls fn with the sorted X on every resolution.
func Computed(fn Func) Spec {
	return Spec{fn: fn}
}

// IsZero reports whether the Spec is unbounded.
func (s Spec) IsZero() bool {
	return s.fixed == nil && s.fn == nil
}

// IsFixed reports whether the Spec holds fixed bounds.
func (s Spec) IsFixed() bool {
	return s.fixed != nil
}

// IsComputed reports whether the Spec computes its bounds from X.
func (s Spec) IsComputed() bool {
	return s.fn != nil
}

// Len returns the arity of fixed bounds, or -1 when it is known only after resolution.
func (s Spec) Len() int {
	if s.fixed != nil {
		return s.fixed.Len()
	}

	return -1
}

// Resolve produces the bounds for one fit of a model with nParams coefficients.
// Computed bounds call their function exactly once.
func (s Spec) Resolve(x []float64, nParams int) Bounds {
	switch {
	case s.fn != nil:
		return s.fn(x)
	case s.fixed != nil:
		return s.fixed.Clone()
	default:
		return Unbounded(nParams)
	}
}
