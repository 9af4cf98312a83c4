package solver

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/arloliu/mandv/calc/bounds"
	"github.com/arloliu/mandv/errs"
	"github.com/arloliu/mandv/internal/options"
)

const (
	// DefaultMaxEvaluations is the cost evaluation budget of a single run.
	DefaultMaxEvaluations = 50000
	// DefaultTolerance is the cost improvement below which a run is converged.
	DefaultTolerance = 1e-12
	// DefaultRestarts is how many times the search restarts from its best point.
	DefaultRestarts = 3

	// convergeIterations is how many iterations without improvement end a run.
	convergeIterations = 200
)

// CurveFit is a bounded least-squares solver.
//
// The cost is minimised with Nelder-Mead over a scaled parameter space. Bounds are
// enforced by projecting every candidate into the box and penalising the distance
// to it, so the reported parameters always satisfy the bounds. The search restarts
// from the best point found until the cost stops improving or the restart budget is
// spent.
//
// A CurveFit is immutable and safe for concurrent use.
type CurveFit struct {
	maxEvaluations int
	tolerance      float64
	restarts       int
}

var _ Solver = (*CurveFit)(nil)

// Option configures a CurveFit.
type Option = options.Option[*CurveFit]

// WithMaxEvaluations limits the cost evaluations of a single run.
func WithMaxEvaluations(n int) Option {
	return options.New(func(c *CurveFit) error {
		if n <= 0 {
			return fmt.Errorf("%w: max evaluations %d must be positive", errs.ErrInvalidConfiguration, n)
		}
		c.maxEvaluations = n

		return nil
	})
}

// WithTolerance sets the absolute and relative cost improvement below which a run
// is considered converged.
func WithTolerance(tol float64) Option {
	return options.New(func(c *CurveFit) error {
		if !(tol > 0) || math.IsInf(tol, 0) {
			return fmt.Errorf("%w: tolerance %v must be positive", errs.ErrInvalidConfiguration, tol)
		}
		c.tolerance = tol

		return nil
	})
}

// WithRestarts sets how many times the search restarts from its best point.
func WithRestarts(n int) Option {
	return options.New(func(c *CurveFit) error {
		if n < 0 {
			return fmt.Errorf("%w: restarts %d must not be negative", errs.ErrInvalidConfiguration, n)
		}
		c.restarts = n

		return nil
	})
}

// NewCurveFit creates a CurveFit.
//
// Parameters:
//   - opts: Solver options (WithMaxEvaluations, WithTolerance, WithRestarts)
//
// Returns:
//   - *CurveFit: The solver
//   - error: errs.ErrInvalidConfiguration for invalid options
func NewCurveFit(opts ...Option) (*CurveFit, error) {
	c := &CurveFit{
		maxEvaluations: DefaultMaxEvaluations,
		tolerance:      DefaultTolerance,
		restarts:       DefaultRestarts,
	}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// Default returns a CurveFit with default settings.
func Default() *CurveFit {
	c, _ := NewCurveFit()
	return c
}

// Solve fits p and estimates the coefficient covariance.
func (c *CurveFit) Solve(p Problem) (Result, error) {
	p0, err := validate(p)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", errs.ErrSolverFailed, err)
	}

	obj := newObjective(p, p0)

	z := make([]float64, len(p0))
	best := obj.cost(z)
	if math.IsInf(best, 1) {
		return Result{}, fmt.Errorf("%w: cost is not finite at the initial guess", errs.ErrSolverFailed)
	}

	evaluations := 1
	converged := false
	for run := 0; run <= c.restarts; run++ {
		res, err := optimize.Minimize(
			optimize.Problem{Func: obj.cost},
			z,
			&optimize.Settings{
				FuncEvaluations: c.maxEvaluations,
				Converger: &optimize.FunctionConverge{
					Absolute:   c.tolerance,
					Relative:   c.tolerance,
					Iterations: convergeIterations,
				},
			},
			&optimize.NelderMead{},
		)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", errs.ErrSolverFailed, err)
		}

		evaluations += res.Stats.FuncEvaluations
		converged = res.Status != optimize.FunctionEvaluationLimit

		if math.IsNaN(res.F) || math.IsInf(res.F, 0) {
			return Result{}, fmt.Errorf("%w: non-finite cost %v", errs.ErrSolverFailed, res.F)
		}

		improved := best - res.F
		if res.F < best {
			best = res.F
			copy(z, res.X)
		}
		if improved <= c.tolerance*(1+math.Abs(best)) {
			break
		}
	}

	params := obj.params(z)
	cost := obj.ssr(params)

	return Result{
		Params:      params,
		Covariance:  obj.covariance(params, cost, p.AbsoluteSigma),
		Cost:        cost,
		Evaluations: evaluations,
		Converged:   converged,
	}, nil
}

// validate checks the problem and returns the starting point.
func validate(p Problem) ([]float64, error) {
	if p.Model == nil {
		return nil, errors.New("nil model function")
	}

	n := len(p.X)
	if n == 0 {
		return nil, errors.New("no observations")
	}
	if len(p.Y) != n {
		return nil, fmt.Errorf("len(X)=%d and len(Y)=%d differ", n, len(p.Y))
	}
	if p.Sigma != nil {
		if len(p.Sigma) != n {
			return nil, fmt.Errorf("len(Sigma)=%d does not match len(X)=%d", len(p.Sigma), n)
		}
		for i, s := range p.Sigma {
			if !(s > 0) || math.IsInf(s, 0) {
				return nil, fmt.Errorf("sigma[%d]=%v must be positive and finite", i, s)
			}
		}
	}

	if err := p.Bounds.Validate(-1); err != nil {
		return nil, err
	}
	if p.Bounds.Len() == 0 {
		return nil, fmt.Errorf("%w: no coefficients", errs.ErrInvalidBounds)
	}

	if p.P0 == nil {
		ones := make([]float64, p.Bounds.Len())
		for i := range ones {
			ones[i] = 1
		}

		return p.Bounds.Project(ones), nil
	}

	if len(p.P0) != p.Bounds.Len() {
		return nil, fmt.Errorf("%w: %d starting values for %d bounded coefficients",
			errs.ErrInvalidGuess, len(p.P0), p.Bounds.Len())
	}
	for i, v := range p.P0 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: p0[%d]=%v is not finite", errs.ErrInvalidGuess, i, v)
		}
	}
	if !p.Bounds.Contains(p.P0) {
		return nil, fmt.Errorf("%w: p0 %v is outside the bounds", errs.ErrInvalidGuess, p.P0)
	}

	return slices.Clone(p.P0), nil
}

// objective maps the scaled search space z to coefficients p = p0 + scale*z.
type objective struct {
	problem Problem
	bounds  bounds.Bounds
	p0      []float64
	scale   []float64
	buf     []float64
}

func newObjective(p Problem, p0 []float64) *objective {
	scale := make([]float64, len(p0))
	for i, v := range p0 {
		scale[i] = max(math.Abs(v), 1)
	}

	return &objective{
		problem: p,
		bounds:  p.Bounds,
		p0:      p0,
		scale:   scale,
		buf:     make([]float64, len(p0)),
	}
}

// params returns the coefficients of z projected into the bounds.
func (o *objective) params(z []float64) []float64 {
	raw := make([]float64, len(z))
	for i := range z {
		raw[i] = o.p0[i] + o.scale[i]*z[i]
	}

	return o.bounds.Project(raw)
}

// cost is the residual sum of squares at the projected point, inflated by the
// squared scaled distance between z and its projection.
func (o *objective) cost(z []float64) float64 {
	var penalty float64
	for i := range z {
		raw := o.p0[i] + o.scale[i]*z[i]
		o.buf[i] = min(max(raw, o.bounds.Lower[i]), o.bounds.Upper[i])
		d := (raw - o.buf[i]) / o.scale[i]
		penalty += d * d
	}

	ssr := o.ssr(o.buf)
	if math.IsNaN(ssr) || math.IsInf(ssr, 0) {
		return math.Inf(1)
	}

	return ssr + penalty*(1+ssr)
}

func (o *objective) ssr(params []float64) float64 {
	var sum float64
	for i, x := range o.problem.X {
		r := o.residual(i, x, params)
		sum += r * r
	}

	return sum
}

func (o *objective) residual(i int, x float64, params []float64) float64 {
	r := o.problem.Model(x, params) - o.problem.Y[i]
	if o.problem.Sigma != nil {
		r /= o.problem.Sigma[i]
	}

	return r
}

// covariance estimates (JᵀJ)⁻¹·s² from a central-difference Jacobian of the
// weighted residuals at params.
func (o *objective) covariance(params []float64, ssr float64, absoluteSigma bool) *mat.SymDense {
	n, k := len(o.problem.X), len(params)

	if !absoluteSigma && n <= k {
		return infCovariance(k)
	}

	jac := mat.NewDense(n, k, nil)
	fd.Jacobian(jac, func(dst, p []float64) {
		for i, x := range o.problem.X {
			dst[i] = o.residual(i, x, p)
		}
	}, params, &fd.JacobianSettings{Formula: fd.Central})

	jtj := mat.NewSymDense(k, nil)
	jtj.SymOuterK(1, jac.T())

	var chol mat.Cholesky
	if ok := chol.Factorize(jtj); !ok {
		return infCovariance(k)
	}

	var cov mat.SymDense
	if err := chol.InverseTo(&cov); err != nil {
		return infCovariance(k)
	}

	if !absoluteSigma {
		cov.ScaleSym(ssr/float64(n-k), &cov)
	}

	return &cov
}

func infCovariance(k int) *mat.SymDense {
	data := make([]float64, k*k)
	for i := range data {
		data[i] = math.Inf(1)
	}

	return mat.NewSymDense(k, data)
}
