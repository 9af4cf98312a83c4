// Package estimator fits changepoint models and guards access to fit results.
//
// CurvefitEstimator binds a model function, its bounds and its initial guesses to
// a solver. EnergyChangepointEstimator wraps it for measurement datasets.
//
// Both estimators start Unfitted. Every accessor for fit-derived state returns
// errs.ErrNotFitted until the first successful Fit; a later Fit overwrites the
// state and a failed Fit leaves it unchanged.
package estimator
