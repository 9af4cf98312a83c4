// Package bounds provides coefficient bound heuristics for the changepoint models.
//
// Changepoint coefficients are confined to a trimmed sub-range of the observed X
// domain, since a changepoint on the data boundary is not identifiable. Slopes are
// bounded by sign only and intercepts are non-negative for changepoint models.
//
// The trim is index based: with n sorted observations and a trim fraction f, the
// trim index is k = floor(n*f) and a single changepoint ranges over [X[k], X[n-1-k]].
package bounds

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/mandv/errs"
)

// Bounds holds per-coefficient lower and upper limits, aligned with the model's
// coefficient order.
type Bounds struct {
	Lower []float64
	Upper []float64
}

// Func computes bounds from the sorted independent variable.
type Func func(x []float64) Bounds

// Unbounded returns (-inf, +inf) limits for n coefficients.
func Unbounded(n int) Bounds {
	b := Bounds{Lower: make([]float64, n), Upper: make([]float64, n)}
	for i := range n {
		b.Lower[i] = math.Inf(-1)
		b.Upper[i] = math.Inf(1)
	}

	return b
}

// Len returns the number of coefficients covered by the bounds.
func (b Bounds) Len() int {
	return len(b.Lower)
}

// Clone returns a deep copy of b.
func (b Bounds) Clone() Bounds {
	return Bounds{Lower: slices.Clone(b.Lower), Upper: slices.Clone(b.Upper)}
}

// Validate checks that both sides have n entries, contain no NaN and that every
// lower limit is at most its upper limit. Pass n < 0 to skip the length check.
func (b Bounds) Validate(n int) error {
	if len(b.Lower) != len(b.Upper) {
		return fmt.Errorf("%w: %d lower and %d upper limits", errs.ErrInvalidBounds, len(b.Lower), len(b.Upper))
	}
	if n >= 0 && len(b.Lower) != n {
		return fmt.Errorf("%w: expected %d limits, got %d", errs.ErrInvalidBounds, n, len(b.Lower))
	}

	for i := range b.Lower {
		lo, hi := b.Lower[i], b.Upper[i]
		if math.IsNaN(lo) || math.IsNaN(hi) {
			return fmt.Errorf("%w: NaN limit for coefficient %d", errs.ErrInvalidBounds, i)
		}
		if lo > hi {
			return fmt.Errorf("%w: lower %v exceeds upper %v for coefficient %d", errs.ErrInvalidBounds, lo, hi, i)
		}
	}

	return nil
}

// Contains reports whether every coefficient of p lies within the bounds.
func (b Bounds) Contains(p []float64) bool {
	if len(p) != len(b.Lower) {
		return false
	}
	for i, v := range p {
		if v < b.Lower[i] || v > b.Upper[i] {
			return false
		}
	}

	return true
}

// Project clamps every coefficient of p into the bounds and returns a new slice.
func (b Bounds) Project(p []float64) []float64 {
	out := make([]float64, len(p))
	for i, v := range p {
		out[i] = min(max(v, b.Lower[i]), b.Upper[i])
	}

	return out
}
