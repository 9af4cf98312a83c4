package regression

import (
	"fmt"

	"github.com/arloliu/mandv/estimator"
	"github.com/arloliu/mandv/format"
	"github.com/arloliu/mandv/pmodel"
)

// Model is the outcome of fitting one candidate model function to a dataset.
//
// A Model contains everything needed to compare a candidate against the others and
// to keep using it: the fitted coefficients, goodness-of-fit metrics and the fitted
// estimator. A failed fit keeps its error in Err and has a nil Estimator.
//
// Fields:
//   - Name: Name of the candidate model function
//   - Shape: Model shape (2P, 3PC, 3PH, 4P, 5P)
//   - Coefficients: Fitted parameters split into intercept, slopes and changepoints
//   - RSquared: Coefficient of determination (higher is better)
//   - RMSE: Root mean square error (lower is better)
//   - Err: Fit error, nil on success
//   - Estimator: Fitted estimator for predictions and plot coordinates
type Model struct {
	// Name is the name of the candidate model function.
	Name string
	// Shape is the model shape.
	Shape format.Shape
	// Coefficients contains the parsed fitted coefficients.
	Coefficients pmodel.Coefficients
	// RSquared is the coefficient of determination.
	RSquared float64
	// RMSE is the root mean square error.
	RMSE float64
	// Err is the fit error of a failed candidate.
	Err error
	// Estimator is the fitted estimator, nil for a failed candidate.
	Estimator *estimator.EnergyChangepointEstimator
}

// OK reports whether the candidate was fitted successfully.
func (m *Model) OK() bool {
	return m.Err == nil
}

// String returns a string representation of the model.
func (m *Model) String() string {
	if m.Err != nil {
		return fmt.Sprintf("Model{Name: %s, Shape: %s, Err: %v}", m.Name, m.Shape, m.Err)
	}

	return fmt.Sprintf("Model{Name: %s, Shape: %s, R²: %.4f, RMSE: %.4f, Coefficients: %v}",
		m.Name, m.Shape, m.RSquared, m.RMSE, m.Coefficients.Vector())
}

// Result represents the result of a shape selection.
//
// Fields:
//   - DatasetID: Fingerprint of the analyzed dataset
//   - BestFit: The successful model with the highest R²
//   - AllModels: Successful models ranked by R² (best first), then failed ones in
//     candidate order
type Result struct {
	// DatasetID is the fingerprint of the analyzed dataset.
	DatasetID uint64
	// BestFit is the best-fit model (highest R²).
	BestFit *Model
	// AllModels contains all candidate models, successful ones ranked by R².
	AllModels []*Model
}

// Failed returns the candidates that could not be fitted.
func (r *Result) Failed() []*Model {
	var out []*Model
	for _, m := range r.AllModels {
		if !m.OK() {
			out = append(out, m)
		}
	}

	return out
}

// String returns a string representation of the result.
func (r *Result) String() string {
	if r.BestFit == nil {
		return "Result{BestFit: nil}"
	}

	return fmt.Sprintf("Result{Dataset: %016x, BestFit: %s, TotalModels: %d}",
		r.DatasetID, r.BestFit, len(r.AllModels))
}
