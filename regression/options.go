package regression

import (
	"fmt"
	"runtime"

	"github.com/arloliu/mandv/errs"
	"github.com/arloliu/mandv/estimator"
	"github.com/arloliu/mandv/internal/options"
	"github.com/arloliu/mandv/solver"
)

// AnalyzeConfig holds configuration for shape selection.
type AnalyzeConfig struct {
	// Concurrency is the maximum number of candidates fitted at once.
	Concurrency int
	// Solver is handed to every estimator; nil uses the default curve fitter.
	Solver solver.Solver
	// FitOptions are applied to every Fit call.
	FitOptions []estimator.FitOption
}

func defaultAnalyzeConfig() AnalyzeConfig {
	return AnalyzeConfig{
		Concurrency: runtime.GOMAXPROCS(0),
	}
}

// AnalyzeOption configures Analyze and AnalyzeEach.
type AnalyzeOption = options.Option[*AnalyzeConfig]

// WithConcurrency limits how many candidates are fitted in parallel.
func WithConcurrency(n int) AnalyzeOption {
	return options.New(func(cfg *AnalyzeConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: concurrency %d must be positive", errs.ErrInvalidConfiguration, n)
		}
		cfg.Concurrency = n

		return nil
	})
}

// WithSolver sets the solver used by every candidate fit.
func WithSolver(s solver.Solver) AnalyzeOption {
	return options.NoError(func(cfg *AnalyzeConfig) {
		cfg.Solver = s
	})
}

// WithFitOptions sets options applied to every candidate fit, e.g. estimator.WithSigma.
func WithFitOptions(opts ...estimator.FitOption) AnalyzeOption {
	return options.NoError(func(cfg *AnalyzeConfig) {
		cfg.FitOptions = append(cfg.FitOptions, opts...)
	})
}
