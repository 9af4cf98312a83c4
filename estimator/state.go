package estimator

import "github.com/arloliu/mandv/errs"

// State is the fit state of an estimator.
type State uint8

const (
	// Unfitted is the state of a new estimator. Fit-derived accessors fail.
	Unfitted State = iota
	// Fitted is reached after the first successful Fit and never left.
	Fitted
)

func (s State) String() string {
	switch s {
	case Unfitted:
		return "Unfitted"
	case Fitted:
		return "Fitted"
	default:
		return "Unknown"
	}
}

// check returns errs.ErrNotFitted unless s is Fitted.
func (s State) check() error {
	if s != Fitted {
		return errs.ErrNotFitted
	}

	return nil
}
