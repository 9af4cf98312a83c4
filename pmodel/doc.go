// Package pmodel wraps changepoint model functions with everything an estimator
// needs to fit them.
//
// A ModelFunction ties together five parts that must belong to the same family:
//
//   - the model function from calc/models
//   - a bound specification from calc/bounds, fixed or computed from X
//   - an optional initial-guess specification from calc/guesses
//   - a ParameterModel naming the family
//   - a CoefficientParser splitting fitted coefficients into intercept, slopes and changepoints
//
// NewModelFunction checks the family agreement once at construction. ForShape and
// Defaults build the standard wrappers for the five supported shapes.
package pmodel
