package bounds

import (
	"fmt"
	"math"

	"github.com/arloliu/mandv/errs"
)

// Policy controls the data-dependent parts of the bound heuristics.
type Policy struct {
	// EdgeTrim is the fraction of observations excluded from each end of X when
	// bounding a changepoint.
	EdgeTrim float64
	// InnerTrim is the fraction that keeps the two 5P changepoints apart: cp1 cannot
	// reach the last InnerTrim of X and cp2 cannot reach the first InnerTrim.
	InnerTrim float64
	// NonNegativeIntercept2P constrains the 2P intercept to be non-negative.
	NonNegativeIntercept2P bool
}

// DefaultPolicy trims 5% of the observations at each edge and 10% between the two
// 5P changepoints, and leaves the 2P model unconstrained.
var DefaultPolicy = Policy{EdgeTrim: 0.05, InnerTrim: 0.10}

// Validate checks that both trim fractions lie in [0, 0.5).
func (p Policy) Validate() error {
	for name, f := range map[string]float64{"edge trim": p.EdgeTrim, "inner trim": p.InnerTrim} {
		if math.IsNaN(f) || f < 0 || f >= 0.5 {
			return fmt.Errorf("%w: %s %v must be in [0, 0.5)", errs.ErrInvalidConfiguration, name, f)
		}
	}

	return nil
}

// trimIndex returns floor(n*frac) limited to the middle of the series.
func trimIndex(n int, frac float64) int {
	k := int(math.Floor(float64(n) * frac))

	return min(max(k, 0), (n-1)/2)
}

// changepointRange returns the lower and upper changepoint limits for sorted x.
// The lower limit skips lowFrac of the observations and the upper limit skips highFrac.
func changepointRange(x []float64, lowFrac, highFrac float64) (float64, float64) {
	n := len(x)
	if n == 0 {
		return math.Inf(-1), math.Inf(1)
	}

	return x[trimIndex(n, lowFrac)], x[n-1-trimIndex(n, highFrac)]
}

// TwoP returns the 2P bounds. The intercept is non-negative when the policy says so.
func (p Policy) TwoP(_ []float64) Bounds {
	b := Unbounded(2)
	if p.NonNegativeIntercept2P {
		b.Lower[0] = 0
	}

	return b
}

// ThreePC returns (0, 0, cpLo) to (inf, inf, cpHi): the cooling slope is non-negative.
func (p Policy) ThreePC(x []float64) Bounds {
	lo, hi := changepointRange(x, p.EdgeTrim, p.EdgeTrim)
	inf := math.Inf(1)

	return Bounds{
		Lower: []float64{0, 0, lo},
		Upper: []float64{inf, inf, hi},
	}
}

// ThreePH returns (0, -inf, cpLo) to (inf, 0, cpHi): the heating slope is non-positive.
func (p Policy) ThreePH(x []float64) Bounds {
	lo, hi := changepointRange(x, p.EdgeTrim, p.EdgeTrim)
	inf := math.Inf(1)

	return Bounds{
		Lower: []float64{0, -inf, lo},
		Upper: []float64{inf, 0, hi},
	}
}

// FourP returns (0, -inf, 0, cpLo) to (inf, 0, inf, cpHi).
func (p Policy) FourP(x []float64) Bounds {
	lo, hi := changepointRange(x, p.EdgeTrim, p.EdgeTrim)
	inf := math.Inf(1)

	return Bounds{
		Lower: []float64{0, -inf, 0, lo},
		Upper: []float64{inf, 0, inf, hi},
	}
}

// FiveP returns (0, -inf, 0, cp1Lo, cp2Lo) to (inf, 0, inf, cp1Hi, cp2Hi).
func (p Policy) FiveP(x []float64) Bounds {
	cp1Lo, cp1Hi := changepointRange(x, p.EdgeTrim, p.InnerTrim)
	cp2Lo, cp2Hi := changepointRange(x, p.InnerTrim, p.EdgeTrim)
	inf := math.Inf(1)

	return Bounds{
		Lower: []float64{0, -inf, 0, cp1Lo, cp2Lo},
		Upper: []float64{inf, 0, inf, cp1Hi, cp2Hi},
	}
}

// TwoP returns the 2P bounds under DefaultPolicy.
func TwoP(x []float64) Bounds { return DefaultPolicy.TwoP(x) }

// ThreePC returns the 3PC bounds under DefaultPolicy.
func ThreePC(x []float64) Bounds { return DefaultPolicy.ThreePC(x) }

// ThreePH returns the 3PH bounds under DefaultPolicy.
func ThreePH(x []float64) Bounds { return DefaultPolicy.ThreePH(x) }

// FourP returns the 4P bounds under DefaultPolicy.
func FourP(x []float64) Bounds { return DefaultPolicy.FourP(x) }

// FiveP returns the 5P bounds under DefaultPolicy.
func FiveP(x []float64) Bounds { return DefaultPolicy.FiveP(x) }
