package dataset

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/arloliu/mandv/errs"
	"github.com/arloliu/mandv/internal/hash"
	"github.com/arloliu/mandv/internal/options"
)

// Dataset is a measurement dataset sorted by its independent variable.
//
// A Dataset is immutable after construction. All accessors return copies, so a
// Dataset can be shared by estimators running in different goroutines.
type Dataset struct {
	x          []float64
	y          []float64
	timestamps []time.Time
	sigma      []float64
	order      []int
}

// Option configures optional Dataset columns.
type Option = options.Option[*Dataset]

// WithSigma attaches per-observation uncertainty weights.
// The slice is copied and must have one entry per observation.
func WithSigma(sigma []float64) Option {
	return options.NoError(func(d *Dataset) {
		d.sigma = slices.Clone(sigma)
	})
}

// WithOrder records an ordering permutation that was applied to the data upstream.
//
// The order is kept only if the input is already sorted by X; otherwise it is
// replaced by the permutation computed during construction.
func WithOrder(order []int) Option {
	return options.NoError(func(d *Dataset) {
		d.order = slices.Clone(order)
	})
}

// New creates a Dataset from raw observation arrays.
//
// The input slices are copied. If x is not sorted in non-decreasing order, a stable
// sorting permutation is computed and applied to x, y, timestamps and sigma, and the
// permutation is available through Order.
//
// Parameters:
//   - x: Independent variable observations (e.g. outdoor air temperature)
//   - y: Dependent observations (energy usage), one per x
//   - timestamps: Sensor reading timestamp of each observation
//   - opts: Optional columns (WithSigma, WithOrder)
//
// Returns:
//   - *Dataset: The sorted dataset
//   - error: errs.ErrEmptyDataset, errs.ErrLengthMismatch or errs.ErrInvalidOrder
//
// Example:
//
//	ds, err := dataset.New(
//	    []float64{3, 5, 1},
//	    []float64{1, 2, 3},
//	    []time.Time{t0, t1, t2},
//	)
//	// ds.X() == [1 3 5], ds.Y() == [3 1 2], ds.Order() == [2 0 1]
func New(x, y []float64, timestamps []time.Time, opts ...Option) (*Dataset, error) {
	d := &Dataset{
		x:          slices.Clone(x),
		y:          slices.Clone(y),
		timestamps: slices.Clone(timestamps),
	}

	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	if err := d.validate(); err != nil {
		return nil, err
	}

	if !slices.IsSorted(d.x) {
		d.sortByX()
	}

	return d, nil
}

func (d *Dataset) validate() error {
	n := len(d.x)
	if n == 0 {
		return errs.ErrEmptyDataset
	}

	if len(d.y) != n || len(d.timestamps) != n {
		return fmt.Errorf("%w: len(X)=%d, len(y)=%d, len(sensor_reading_timestamps)=%d",
			errs.ErrLengthMismatch, n, len(d.y), len(d.timestamps))
	}

	if d.sigma != nil && len(d.sigma) != n {
		return fmt.Errorf("%w: len(sigma)=%d must match len(X)=%d", errs.ErrLengthMismatch, len(d.sigma), n)
	}

	if d.order != nil {
		if len(d.order) != n {
			return fmt.Errorf("%w: len(order)=%d must match len(X)=%d", errs.ErrLengthMismatch, len(d.order), n)
		}

		seen := make([]bool, n)
		for _, idx := range d.order {
			if idx < 0 || idx >= n || seen[idx] {
				return fmt.Errorf("%w: index %d", errs.ErrInvalidOrder, idx)
			}
			seen[idx] = true
		}
	}

	return nil
}

// sortByX reorders every column by the stable argsort of x.
func (d *Dataset) sortByX() {
	order := make([]int, len(d.x))
	for i := range order {
		order[i] = i
	}

	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case d.x[a] < d.x[b]:
			return -1
		case d.x[a] > d.x[b]:
			return 1
		default:
			return 0
		}
	})

	d.x = permute(d.x, order)
	d.y = permute(d.y, order)
	d.timestamps = permute(d.timestamps, order)
	if d.sigma != nil {
		d.sigma = permute(d.sigma, order)
	}
	d.order = order
}

func permute[T any](values []T, order []int) []T {
	out := make([]T, len(order))
	for i, idx := range order {
		out[i] = values[idx]
	}

	return out
}

// Len returns the number of observations.
func (d *Dataset) Len() int {
	return len(d.x)
}

// X returns a copy of the sorted independent variable.
func (d *Dataset) X() []float64 {
	return slices.Clone(d.x)
}

// Y returns a copy of the dependent variable, aligned with X.
func (d *Dataset) Y() []float64 {
	return slices.Clone(d.y)
}

// Timestamps returns a copy of the sensor reading timestamps, aligned with X.
func (d *Dataset) Timestamps() []time.Time {
	return slices.Clone(d.timestamps)
}

// Sigma returns a copy of the uncertainty weights, or nil if none were given.
func (d *Dataset) Sigma() []float64 {
	return slices.Clone(d.sigma)
}

// HasSigma reports whether the dataset carries uncertainty weights.
func (d *Dataset) HasSigma() bool {
	return d.sigma != nil
}

// Order returns the permutation applied during construction: element i of the
// sorted data came from input row Order()[i]. It is nil if no reordering occurred
// and no order was supplied.
func (d *Dataset) Order() []int {
	return slices.Clone(d.order)
}

// Fingerprint returns an xxHash64 digest of X, y and the timestamps.
// Datasets with identical content have identical fingerprints.
func (d *Dataset) Fingerprint() uint64 {
	ts := make([]int64, len(d.timestamps))
	for i, t := range d.timestamps {
		ts[i] = t.UnixNano()
	}

	h := hash.New()
	h.Floats(d.x)
	h.Floats(d.y)
	h.Ints(ts)

	return h.Sum64()
}

// CheckFinite returns errs.ErrNonFiniteValue if X, y or sigma contain NaN or Inf.
func (d *Dataset) CheckFinite() error {
	for name, col := range map[string][]float64{"X": d.x, "y": d.y, "sigma": d.sigma} {
		for i, v := range col {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: %s[%d]=%v", errs.ErrNonFiniteValue, name, i, v)
			}
		}
	}

	return nil
}
