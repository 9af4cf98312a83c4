// Package guesses provides initial-guess heuristics for the changepoint models.
//
// Each heuristic reads the visible geometry of the data (end points, extremes and
// the median of X) and returns a starting coefficient vector laid out like the
// corresponding model in calc/models. Inputs are expected sorted ascending by X.
//
// Degenerate inputs are not guarded: constant X yields infinite or NaN slopes,
// and empty inputs yield a vector of NaN. Such guesses surface as solver failures.
package guesses

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Func computes an initial guess from the data.
type Func func(x, y []float64) []float64

// TwoP guesses (yint, slope) from the end points of the X range.
//
// Example:
//
//	guesses.TwoP([]float64{1, 2, 3}, []float64{2, 4, 6}) // [2 2]
func TwoP(x, y []float64) []float64 {
	if len(x) == 0 || len(y) == 0 {
		return nanVector(2)
	}

	lo, hi := floats.MinIdx(x), floats.MaxIdx(x)
	slope := (y[hi] - y[lo]) / (x[hi] - x[lo])

	return []float64{y[lo], slope}
}

// ThreePC guesses (yint, slope, changepoint) for a cooling model, placing the
// changepoint at the median of X.
func ThreePC(x, y []float64) []float64 {
	if len(x) == 0 || len(y) == 0 {
		return nanVector(3)
	}

	lo, hi := floats.MinIdx(x), floats.MaxIdx(x)
	med := median(x)
	slope := (floats.Max(y) - floats.Min(y)) / (x[hi] - med)

	return []float64{y[lo], slope, med}
}

// ThreePH guesses (yint, slope, changepoint) for a heating model, placing the
// changepoint at the median of X.
func ThreePH(x, y []float64) []float64 {
	if len(x) == 0 || len(y) == 0 {
		return nanVector(3)
	}

	lo, hi := floats.MinIdx(x), floats.MaxIdx(x)
	med := median(x)
	slope := (floats.Min(y) - floats.Max(y)) / (med - x[lo])

	return []float64{y[hi], slope, med}
}

// FourP guesses (yint, left slope, right slope, changepoint) for a V-shaped model.
// The changepoint is the X value at the minimum of y.
func FourP(x, y []float64) []float64 {
	if len(x) == 0 || len(y) == 0 {
		return nanVector(4)
	}

	m := floats.MinIdx(y)
	last := len(y) - 1
	ls := (y[0] - y[m]) / (x[0] - x[m])
	rs := (y[last] - y[m]) / (x[last] - x[m])

	return []float64{y[m], ls, rs, x[m]}
}

// FiveP guesses (yint, left slope, right slope, cp1, cp2). The changepoints are
// placed a quarter of the X range on either side of the median.
func FiveP(x, y []float64) []float64 {
	if len(x) == 0 || len(y) == 0 {
		return nanVector(5)
	}

	last := len(x) - 1
	med := median(x)
	minY, maxY := floats.Min(y), floats.Max(y)
	ls := (minY - y[0]) / (med - x[0])
	rs := (maxY - minY) / (x[last] - med)
	quarter := 0.25 * (x[last] - x[0])

	return []float64{y[0], ls, rs, med - quarter, med + quarter}
}

// median returns the middle value of values, or the mean of the two middle values
// for an even count.
func median(values []float64) float64 {
	sorted := values
	if !slices.IsSorted(values) {
		sorted = slices.Clone(values)
		slices.Sort(sorted)
	}

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func nanVector(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = math.NaN()
	}

	return v
}
