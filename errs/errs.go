// Package errs defines the sentinel errors returned by mandv packages.
//
// Callers should match them with errors.Is; functions wrap them with context
// describing the dataset or model involved.
package errs

import "errors"

// Validation errors, reported at construction time.
var (
	ErrEmptyDataset         = errors.New("dataset has no observations")
	ErrLengthMismatch       = errors.New("array lengths do not match")
	ErrInvalidOrder         = errors.New("order is not a permutation of the observation indexes")
	ErrInvalidDataset       = errors.New("invalid measurement dataset")
	ErrNonFiniteValue       = errors.New("non-finite value in input data")
	ErrInvalidModel         = errors.New("invalid model function")
	ErrModelFamilyMismatch  = errors.New("model function, parameter model and coefficient parser belong to different families")
	ErrInvalidBounds        = errors.New("invalid coefficient bounds")
	ErrInvalidGuess         = errors.New("invalid initial guess")
	ErrInvalidCoefficients  = errors.New("invalid number of coefficients")
	ErrUnknownShape         = errors.New("unknown model shape")
	ErrUnsupportedCompress  = errors.New("unsupported compression type")
	ErrInvalidArchive       = errors.New("invalid dataset archive")
	ErrNoCandidateModels    = errors.New("no candidate models provided")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrInvalidReport        = errors.New("invalid fit report")
	ErrUnknownEncoding      = errors.New("unknown report encoding")
)

// ErrNotFitted is returned by every accessor of fit-derived state before a successful fit.
var ErrNotFitted = errors.New("estimator is not fitted yet, call Fit first")

// ErrSolverFailed is returned when the nonlinear least-squares solver cannot produce a fit.
var ErrSolverFailed = errors.New("nonlinear least-squares solver failed")
