// Package mandv fits piecewise-linear changepoint models to energy usage data for
// measurement and verification (M&V).
//
// A changepoint model relates energy use to an independent variable, typically the
// outdoor air temperature. Five shapes are supported:
//
//   - 2P: a single straight line
//   - 3PC: flat base load, rising above a cooling changepoint
//   - 3PH: flat base load, rising below a heating changepoint
//   - 4P: heating and cooling slopes meeting at one changepoint
//   - 5P: heating and cooling slopes separated by a flat dead band
//
// # Core Features
//
//   - Measurement datasets kept sorted by X, with the original order retained
//   - Per-shape initial guesses and coefficient bounds computed from the data
//   - Bounded nonlinear least-squares fits with coefficient covariance
//   - Concurrent shape selection ranked by R²
//   - Plot coordinates of every fitted model
//   - Compressed dataset archives and JSON/YAML fit reports
//
// # Basic Usage
//
// Fitting a single shape:
//
//	import "github.com/arloliu/mandv"
//
//	ds, err := mandv.NewDataset(temperatures, usage, days)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	est, err := mandv.NewEstimator(format.ShapeThreeParameterCooling)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := est.Fit(ds); err != nil {
//	    log.Fatal(err)
//	}
//
//	coeffs, _ := est.ParsedCoefficients()
//	fmt.Printf("base load %.1f, slope %.2f, changepoint %.1f\n",
//	    coeffs.Intercept, coeffs.Slopes[0], coeffs.Changepoints[0])
//
// Selecting the best shape:
//
//	result, err := mandv.Analyze(ctx, ds)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.BestFit)
//
// # Package Organization
//
//   - dataset: measurement datasets and their mebo archives
//   - calc/models, calc/guesses, calc/bounds: model functions and heuristics
//   - pmodel: model functions bound to their heuristics and coefficient parsers
//   - solver: the curve fitter
//   - estimator: fit state and fit-derived accessors
//   - plot: model and raw-data plot coordinates
//   - regression: shape selection
//   - report, compress: serialized fit reports
package mandv

import (
	"context"
	"time"

	"github.com/arloliu/mandv/calc/bounds"
	"github.com/arloliu/mandv/dataset"
	"github.com/arloliu/mandv/estimator"
	"github.com/arloliu/mandv/format"
	"github.com/arloliu/mandv/pmodel"
	"github.com/arloliu/mandv/regression"
)

// NewDataset creates a measurement dataset sorted by x.
//
// Parameters:
//   - x: Independent variable, e.g. average daily temperature
//   - y: Observed energy use
//   - timestamps: Reading time of every observation
//   - opts: dataset.WithSigma, dataset.WithOrder
//
// Returns:
//   - *dataset.Dataset: The sorted dataset
//   - error: Validation error for empty or misaligned input
func NewDataset(x, y []float64, timestamps []time.Time, opts ...dataset.Option) (*dataset.Dataset, error) {
	return dataset.New(x, y, timestamps, opts...)
}

// NewEstimator creates an unfitted estimator for shape using the default bounds policy.
//
// Example:
//
//	est, err := mandv.NewEstimator(format.ShapeFourParameter)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = est.Fit(ds)
func NewEstimator(shape format.Shape, opts ...estimator.EnergyOption) (*estimator.EnergyChangepointEstimator, error) {
	return NewEstimatorWithPolicy(shape, bounds.DefaultPolicy, opts...)
}

// NewEstimatorWithPolicy creates an unfitted estimator for shape with a custom trim policy.
func NewEstimatorWithPolicy(shape format.Shape, policy bounds.Policy, opts ...estimator.EnergyOption) (*estimator.EnergyChangepointEstimator, error) {
	mf, err := pmodel.ForShape(shape, policy)
	if err != nil {
		return nil, err
	}

	return estimator.NewEnergyChangepointEstimator(mf, opts...)
}

// DefaultCandidates returns one model function per shape with the default bounds policy.
func DefaultCandidates() []*pmodel.ModelFunction {
	candidates, _ := pmodel.Defaults(bounds.DefaultPolicy)
	return candidates
}

// Analyze fits every supported shape to ds and ranks them by R².
//
// It is a shortcut for regression.Analyze with DefaultCandidates.
func Analyze(ctx context.Context, ds *dataset.Dataset, opts ...regression.AnalyzeOption) (*regression.Result, error) {
	return regression.Analyze(ctx, ds, DefaultCandidates(), opts...)
}
