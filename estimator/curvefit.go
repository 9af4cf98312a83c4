package estimator

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/mandv/calc/bounds"
	"github.com/arloliu/mandv/calc/guesses"
	"github.com/arloliu/mandv/calc/models"
	"github.com/arloliu/mandv/errs"
	"github.com/arloliu/mandv/internal/options"
	"github.com/arloliu/mandv/solver"
)

// CurvefitEstimator fits a model function to raw observation arrays.
//
// Bounds and initial guesses may be fixed or computed from the data; computed ones
// are resolved once per Fit with the X (and y) passed to Fit. A CurvefitEstimator
// is not safe for concurrent use; give each goroutine its own instance.
type CurvefitEstimator struct {
	model   models.Model
	bounds  bounds.Spec
	guesses guesses.Spec
	solver  solver.Solver

	state         State
	x             []float64
	y             []float64
	sigma         []float64
	absoluteSigma bool
	coeffs        []float64
	covariance    *mat.SymDense
	cost          float64
}

// CurvefitOption configures a CurvefitEstimator.
type CurvefitOption = options.Option[*CurvefitEstimator]

// WithBounds sets the coefficient bounds. The default is unbounded.
func WithBounds(b bounds.Spec) CurvefitOption {
	return options.NoError(func(e *CurvefitEstimator) {
		e.bounds = b
	})
}

// WithInitialGuesses sets the solver starting point. The default lets the solver choose.
func WithInitialGuesses(g guesses.Spec) CurvefitOption {
	return options.NoError(func(e *CurvefitEstimator) {
		e.guesses = g
	})
}

// WithSolver replaces the default solver.CurveFit.
func WithSolver(s solver.Solver) CurvefitOption {
	return options.New(func(e *CurvefitEstimator) error {
		if s == nil {
			return fmt.Errorf("%w: nil solver", errs.ErrInvalidConfiguration)
		}
		e.solver = s

		return nil
	})
}

// NewCurvefitEstimator creates an Unfitted estimator for model.
//
// Parameters:
//   - model: Model function with its coefficient count
//   - opts: Optional bounds, initial guesses and solver
//
// Returns:
//   - *CurvefitEstimator: The estimator
//   - error: errs.ErrInvalidModel for a nil function, or an option error
func NewCurvefitEstimator(model models.Model, opts ...CurvefitOption) (*CurvefitEstimator, error) {
	if model.F == nil || model.NParams <= 0 {
		return nil, fmt.Errorf("%w: %q has no function or coefficients", errs.ErrInvalidModel, model.Name)
	}

	e := &CurvefitEstimator{model: model}
	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}
	if e.solver == nil {
		e.solver = solver.Default()
	}

	return e, nil
}

// Fit fits the model to (x, y).
//
// The arrays must be non-empty, equally long and finite; sigma is optional and must
// match them in length. On failure the previous fit state is left untouched.
//
// Parameters:
//   - x: Independent variable
//   - y: Observations
//   - sigma: Optional per-observation uncertainties, nil for unweighted
//   - absoluteSigma: Whether sigma is in absolute units
//
// Returns:
//   - error: Validation errors, or the solver error wrapped with the model name and
//     observation count
func (e *CurvefitEstimator) Fit(x, y, sigma []float64, absoluteSigma bool) error {
	if err := checkArrays(x, y, sigma); err != nil {
		return fmt.Errorf("fit %s: %w", e.model.Name, err)
	}

	n := e.model.NParams
	b := e.bounds.Resolve(x, n)
	if err := b.Validate(n); err != nil {
		return fmt.Errorf("fit %s: %w", e.model.Name, err)
	}

	p0, ok := e.guesses.Resolve(x, y)
	if ok && len(p0) != n {
		return fmt.Errorf("fit %s: %w: expected %d values, got %d", e.model.Name, errs.ErrInvalidGuess, n, len(p0))
	}

	res, err := e.solver.Solve(solver.Problem{
		Model:         e.model.F,
		X:             x,
		Y:             y,
		P0:            p0,
		Sigma:         sigma,
		Bounds:        b,
		AbsoluteSigma: absoluteSigma,
	})
	if err != nil {
		return fmt.Errorf("fit %s on %d observations: %w", e.model.Name, len(x), err)
	}
	if len(res.Params) != n {
		return fmt.Errorf("fit %s on %d observations: %w: solver returned %d coefficients",
			e.model.Name, len(x), errs.ErrSolverFailed, len(res.Params))
	}

	e.x = slices.Clone(x)
	e.y = slices.Clone(y)
	e.sigma = slices.Clone(sigma)
	e.absoluteSigma = absoluteSigma
	e.coeffs = slices.Clone(res.Params)
	e.covariance = res.Covariance
	e.cost = res.Cost
	e.state = Fitted

	return nil
}

func checkArrays(x, y, sigma []float64) error {
	if len(x) == 0 {
		return errs.ErrEmptyDataset
	}
	if len(y) != len(x) {
		return fmt.Errorf("%w: len(X)=%d, len(y)=%d", errs.ErrLengthMismatch, len(x), len(y))
	}
	if sigma != nil && len(sigma) != len(x) {
		return fmt.Errorf("%w: len(sigma)=%d must match len(X)=%d", errs.ErrLengthMismatch, len(sigma), len(x))
	}

	for name, col := range map[string][]float64{"X": x, "y": y, "sigma": sigma} {
		for i, v := range col {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: %s[%d]=%v", errs.ErrNonFiniteValue, name, i, v)
			}
		}
	}

	return nil
}

// State returns the fit state.
func (e *CurvefitEstimator) State() State {
	return e.state
}

// Model returns the model being fitted.
func (e *CurvefitEstimator) Model() models.Model {
	return e.model
}

// Predict evaluates the fitted model at x.
func (e *CurvefitEstimator) Predict(x []float64) ([]float64, error) {
	if err := e.state.check(); err != nil {
		return nil, err
	}

	return e.model.Eval(x, e.coeffs)
}

// Name returns the name of the fitted model.
func (e *CurvefitEstimator) Name() (string, error) {
	if err := e.state.check(); err != nil {
		return "", err
	}

	return e.model.Name, nil
}

// X returns a copy of the fitted independent variable.
func (e *CurvefitEstimator) X() ([]float64, error) {
	if err := e.state.check(); err != nil {
		return nil, err
	}

	return slices.Clone(e.x), nil
}

// Y returns a copy of the fitted observations.
func (e *CurvefitEstimator) Y() ([]float64, error) {
	if err := e.state.check(); err != nil {
		return nil, err
	}

	return slices.Clone(e.y), nil
}

// Sigma returns a copy of the fit weights, nil if the fit was unweighted.
func (e *CurvefitEstimator) Sigma() ([]float64, error) {
	if err := e.state.check(); err != nil {
		return nil, err
	}

	return slices.Clone(e.sigma), nil
}

// AbsoluteSigma reports whether the fit treated sigma as absolute.
func (e *CurvefitEstimator) AbsoluteSigma() (bool, error) {
	if err := e.state.check(); err != nil {
		return false, err
	}

	return e.absoluteSigma, nil
}

// Coefficients returns a copy of the fitted coefficients.
func (e *CurvefitEstimator) Coefficients() ([]float64, error) {
	if err := e.state.check(); err != nil {
		return nil, err
	}

	return slices.Clone(e.coeffs), nil
}

// Covariance returns a copy of the estimated coefficient covariance.
// It is nil when the solver did not estimate one.
func (e *CurvefitEstimator) Covariance() (*mat.SymDense, error) {
	if err := e.state.check(); err != nil {
		return nil, err
	}

	if e.covariance == nil {
		return nil, nil
	}

	c := mat.NewSymDense(e.covariance.SymmetricDim(), nil)
	c.CopySym(e.covariance)

	return c, nil
}

// Cost returns the weighted residual sum of squares of the fit.
func (e *CurvefitEstimator) Cost() (float64, error) {
	if err := e.state.check(); err != nil {
		return 0, err
	}

	return e.cost, nil
}
