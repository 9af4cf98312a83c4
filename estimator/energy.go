package estimator

import (
	"fmt"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/mandv/dataset"
	"github.com/arloliu/mandv/errs"
	"github.com/arloliu/mandv/format"
	"github.com/arloliu/mandv/internal/options"
	"github.com/arloliu/mandv/plot"
	"github.com/arloliu/mandv/pmodel"
	"github.com/arloliu/mandv/solver"
)

// EnergyChangepointEstimator fits a pmodel.ModelFunction to a measurement dataset.
//
// Fit accepts only a *dataset.Dataset, so the data is always sorted by X before
// computed bounds and guesses see it. Every Fit builds a fresh CurvefitEstimator
// from the model function.
type EnergyChangepointEstimator struct {
	model  *pmodel.ModelFunction
	solver solver.Solver

	state State
	fit   *CurvefitEstimator
	ds    *dataset.Dataset
	predY []float64
}

// EnergyOption configures an EnergyChangepointEstimator.
type EnergyOption = options.Option[*EnergyChangepointEstimator]

// WithEnergySolver sets the solver handed to every underlying CurvefitEstimator.
func WithEnergySolver(s solver.Solver) EnergyOption {
	return options.New(func(e *EnergyChangepointEstimator) error {
		if s == nil {
			return fmt.Errorf("%w: nil solver", errs.ErrInvalidConfiguration)
		}
		e.solver = s

		return nil
	})
}

// NewEnergyChangepointEstimator creates an Unfitted estimator for model.
//
// Example:
//
//	mf, _ := pmodel.ForShape(format.ShapeThreeParameterCooling, bounds.DefaultPolicy)
//	est, err := estimator.NewEnergyChangepointEstimator(mf)
//	if err != nil {
//	    return err
//	}
//	if err := est.Fit(ds); err != nil {
//	    return err
//	}
//	coeffs, _ := est.ParsedCoefficients()
func NewEnergyChangepointEstimator(model *pmodel.ModelFunction, opts ...EnergyOption) (*EnergyChangepointEstimator, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: nil model function", errs.ErrInvalidModel)
	}

	e := &EnergyChangepointEstimator{model: model}
	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

type fitConfig struct {
	sigma         []float64
	sigmaSet      bool
	absoluteSigma bool
}

// FitOption configures a single Fit call.
type FitOption = options.Option[*fitConfig]

// WithSigma overrides the dataset's uncertainty weights. Pass nil for an unweighted fit.
func WithSigma(sigma []float64) FitOption {
	return options.NoError(func(c *fitConfig) {
		c.sigma = sigma
		c.sigmaSet = true
	})
}

// WithAbsoluteSigma marks sigma as absolute units.
func WithAbsoluteSigma(absolute bool) FitOption {
	return options.NoError(func(c *fitConfig) {
		c.absoluteSigma = absolute
	})
}

// Fit fits the model function to ds.
//
// Sigma defaults to the dataset's weights. On failure the previous fit state is
// left untouched.
func (e *EnergyChangepointEstimator) Fit(ds *dataset.Dataset, opts ...FitOption) error {
	if ds == nil {
		return fmt.Errorf("%w: nil dataset", errs.ErrInvalidDataset)
	}

	cfg := &fitConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}
	if !cfg.sigmaSet {
		cfg.sigma = ds.Sigma()
	}

	curveOpts := []CurvefitOption{
		WithBounds(e.model.Bounds()),
		WithInitialGuesses(e.model.InitialGuesses()),
	}
	if e.solver != nil {
		curveOpts = append(curveOpts, WithSolver(e.solver))
	}

	fit, err := NewCurvefitEstimator(e.model.Model(), curveOpts...)
	if err != nil {
		return err
	}

	x := ds.X()
	if err := fit.Fit(x, ds.Y(), cfg.sigma, cfg.absoluteSigma); err != nil {
		return err
	}

	predY, err := fit.Predict(x)
	if err != nil {
		return err
	}

	e.fit = fit
	e.ds = ds
	e.predY = predY
	e.state = Fitted

	return nil
}

// State returns the fit state.
func (e *EnergyChangepointEstimator) State() State {
	return e.state
}

// Name returns the model function name. It does not require a fit.
func (e *EnergyChangepointEstimator) Name() string {
	return e.model.Name()
}

// Shape returns the model shape. It does not require a fit.
func (e *EnergyChangepointEstimator) Shape() format.Shape {
	return e.model.Shape()
}

// ModelFunction returns the wrapped model function.
func (e *EnergyChangepointEstimator) ModelFunction() *pmodel.ModelFunction {
	return e.model
}

// Dataset returns the dataset of the last successful fit.
func (e *EnergyChangepointEstimator) Dataset() (*dataset.Dataset, error) {
	if err := e.state.check(); err != nil {
		return nil, err
	}

	return e.ds, nil
}

// X returns the fitted independent variable.
func (e *EnergyChangepointEstimator) X() ([]float64, error) {
	if err := e.state.check(); err != nil {
		return nil, err
	}

	return e.fit.X()
}

// Y returns the fitted observations.
func (e *EnergyChangepointEstimator) Y() ([]float64, error) {
	if err := e.state.check(); err != nil {
		return nil, err
	}

	return e.fit.Y()
}

// PredY returns the model predictions at the fitted X.
func (e *EnergyChangepointEstimator) PredY() ([]float64, error) {
	if err := e.state.check(); err != nil {
		return nil, err
	}

	return slices.Clone(e.predY), nil
}

// Timestamps returns the sensor reading timestamps aligned with X.
func (e *EnergyChangepointEstimator) Timestamps() ([]time.Time, error) {
	if err := e.state.check(); err != nil {
		return nil, err
	}

	return e.ds.Timestamps(), nil
}

// Sigma returns the fit weights, nil for an unweighted fit.
func (e *EnergyChangepointEstimator) Sigma() ([]float64, error) {
	if err := e.state.check(); err != nil {
		return nil, err
	}

	return e.fit.Sigma()
}

// AbsoluteSigma reports whether the fit treated sigma as absolute.
func (e *EnergyChangepointEstimator) AbsoluteSigma() (bool, error) {
	if err := e.state.check(); err != nil {
		return false, err
	}

	return e.fit.AbsoluteSigma()
}

// Coefficients returns the raw fitted coefficient vector.
func (e *EnergyChangepointEstimator) Coefficients() ([]float64, error) {
	if err := e.state.check(); err != nil {
		return nil, err
	}

	return e.fit.Coefficients()
}

// ParsedCoefficients returns the fitted coefficients split by the model's parser.
func (e *EnergyChangepointEstimator) ParsedCoefficients() (pmodel.Coefficients, error) {
	coeffs, err := e.Coefficients()
	if err != nil {
		return pmodel.Coefficients{}, err
	}

	return e.model.ParseCoefficients(coeffs)
}

// Covariance returns the estimated coefficient covariance, or nil when the solver
// did not estimate one.
func (e *EnergyChangepointEstimator) Covariance() (*mat.SymDense, error) {
	if err := e.state.check(); err != nil {
		return nil, err
	}

	return e.fit.Covariance()
}

// Predict evaluates the fitted model at x.
func (e *EnergyChangepointEstimator) Predict(x []float64) ([]float64, error) {
	if err := e.state.check(); err != nil {
		return nil, err
	}

	return e.fit.Predict(x)
}

// Adjust predicts this model at the X of another fitted estimator, e.g. a baseline
// model projected onto reporting-period conditions.
func (e *EnergyChangepointEstimator) Adjust(other *EnergyChangepointEstimator) ([]float64, error) {
	if err := e.state.check(); err != nil {
		return nil, err
	}
	if other == nil {
		return nil, fmt.Errorf("%w: nil estimator", errs.ErrInvalidModel)
	}

	x, err := other.X()
	if err != nil {
		return nil, fmt.Errorf("adjust to %s: %w", other.Name(), err)
	}

	return e.fit.Predict(x)
}

// NParams returns the number of fitted coefficients.
func (e *EnergyChangepointEstimator) NParams() (int, error) {
	if err := e.state.check(); err != nil {
		return 0, err
	}

	return e.model.Model().NParams, nil
}

// TotalY returns the sum of the observations.
func (e *EnergyChangepointEstimator) TotalY() (float64, error) {
	y, err := e.Y()
	if err != nil {
		return 0, err
	}

	return floats.Sum(y), nil
}

// TotalPredY returns the sum of the predictions.
func (e *EnergyChangepointEstimator) TotalPredY() (float64, error) {
	if err := e.state.check(); err != nil {
		return 0, err
	}

	return floats.Sum(e.predY), nil
}

// LenY returns the number of fitted observations.
func (e *EnergyChangepointEstimator) LenY() (int, error) {
	if err := e.state.check(); err != nil {
		return 0, err
	}

	return len(e.predY), nil
}

// Coordinates derives the plot coordinates of the fitted model line.
func (e *EnergyChangepointEstimator) Coordinates() (plot.ModelCoordinates, error) {
	if err := e.state.check(); err != nil {
		return plot.ModelCoordinates{}, err
	}

	p, err := plot.ParserFor(e.model.Shape())
	if err != nil {
		return plot.ModelCoordinates{}, err
	}

	x, err := e.fit.X()
	if err != nil {
		return plot.ModelCoordinates{}, err
	}
	coeffs, err := e.fit.Coefficients()
	if err != nil {
		return plot.ModelCoordinates{}, err
	}

	return p.Parse(x, e.predY, coeffs)
}
