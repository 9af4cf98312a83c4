// Package solver defines the nonlinear least-squares boundary used by the
// estimators and provides a bounded curve fitter built on gonum.
package solver

import (
	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/mandv/calc/bounds"
	"github.com/arloliu/mandv/calc/models"
)

// Problem is one bounded, optionally weighted, least-squares fit.
type Problem struct {
	// Model is evaluated at every X with the candidate coefficients.
	Model models.Func
	// X and Y are the observations.
	X []float64
	Y []float64
	// P0 is the starting point and must lie within Bounds. A nil P0 starts from ones projected into Bounds.
	P0 []float64
	// Sigma holds per-observation uncertainties; residuals are divided by it. Nil means unweighted.
	Sigma []float64
	// Bounds limits every coefficient; it must have one entry per coefficient.
	Bounds bounds.Bounds
	// AbsoluteSigma reports Sigma in absolute units, so the covariance is not
	// rescaled by the residual variance.
	AbsoluteSigma bool
}

// Result is the outcome of a successful Solve.
type Result struct {
	// Params are the fitted coefficients, always within the problem bounds.
	Params []float64
	// Covariance is the estimated coefficient covariance. Every entry is +Inf when
	// it cannot be estimated.
	Covariance *mat.SymDense
	// Cost is the weighted sum of squared residuals at Params.
	Cost float64
	// Evaluations is the number of cost function evaluations.
	Evaluations int
	// Converged is false when the evaluation budget ran out before the cost settled.
	Converged bool
}

// Solver fits a Problem.
//
// Implementations must not retain the problem slices after Solve returns and must
// wrap every failure with errs.ErrSolverFailed.
type Solver interface {
	Solve(p Problem) (Result, error)
}

// SolverFunc adapts a function to the Solver interface.
type SolverFunc func(p Problem) (Result, error)

// Solve calls f(p).
func (f SolverFunc) Solve(p Problem) (Result, error) {
	return f(p)
}
