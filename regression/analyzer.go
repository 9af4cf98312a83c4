package regression

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/mandv/dataset"
	"github.com/arloliu/mandv/errs"
	"github.com/arloliu/mandv/estimator"
	"github.com/arloliu/mandv/internal/options"
	"github.com/arloliu/mandv/pmodel"
)

// Analyze fits every candidate model function to ds and ranks them by R².
//
// Candidates are fitted concurrently, bounded by WithConcurrency. A candidate that
// fails to fit does not abort the analysis; its error is kept in Model.Err and the
// model is ranked after every successful one.
//
// Parameters:
//   - ctx: Cancels candidates that have not started yet
//   - ds: Dataset to analyze
//   - candidates: Model functions to compare, e.g. pmodel.Defaults(bounds.DefaultPolicy)
//   - opts: Concurrency, solver and per-fit options
//
// Returns:
//   - *Result: Analysis result with best-fit model and all candidate models
//   - error: ErrNoCandidateModels, ErrInvalidDataset, the context error, or the
//     joined fit errors when no candidate could be fitted
//
// Example:
//
//	candidates, _ := pmodel.Defaults(bounds.DefaultPolicy)
//	result, err := regression.Analyze(ctx, ds, candidates)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.BestFit.Shape, result.BestFit.RSquared)
func Analyze(ctx context.Context, ds *dataset.Dataset, candidates []*pmodel.ModelFunction, opts ...AnalyzeOption) (*Result, error) {
	if len(candidates) == 0 {
		return nil, errs.ErrNoCandidateModels
	}
	if ds == nil {
		return nil, fmt.Errorf("%w: nil dataset", errs.ErrInvalidDataset)
	}

	cfg := defaultAnalyzeConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return analyze(ctx, ds, candidates, &cfg)
}

// AnalyzeEach analyzes each dataset separately and returns per-dataset results.
//
// Datasets are processed in order; candidates within a dataset are fitted
// concurrently as in Analyze. The first dataset that cannot be analyzed aborts
// the run.
//
// Example:
//
//	results, err := regression.AnalyzeEach(ctx, []*dataset.Dataset{baseline, reporting}, candidates)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i, result := range results {
//	    fmt.Printf("Dataset %d: %s\n", i, result.BestFit)
//	}
func AnalyzeEach(ctx context.Context, datasets []*dataset.Dataset, candidates []*pmodel.ModelFunction, opts ...AnalyzeOption) ([]*Result, error) {
	if len(datasets) == 0 {
		return nil, fmt.Errorf("%w: no datasets provided", errs.ErrInvalidDataset)
	}
	if len(candidates) == 0 {
		return nil, errs.ErrNoCandidateModels
	}

	cfg := defaultAnalyzeConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	results := make([]*Result, len(datasets))
	for i, ds := range datasets {
		if ds == nil {
			return nil, fmt.Errorf("dataset %d: %w: nil dataset", i, errs.ErrInvalidDataset)
		}

		result, err := analyze(ctx, ds, candidates, &cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze dataset %d: %w", i, err)
		}
		results[i] = result
	}

	return results, nil
}

func analyze(ctx context.Context, ds *dataset.Dataset, candidates []*pmodel.ModelFunction, cfg *AnalyzeConfig) (*Result, error) {
	models := make([]*Model, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)

	for i, mf := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			models[i] = fitCandidate(ds, mf, cfg)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked, failed := partition(models)
	if len(ranked) == 0 {
		fitErrs := make([]error, 0, len(failed))
		for _, m := range failed {
			fitErrs = append(fitErrs, m.Err)
		}

		return nil, errors.Join(fitErrs...)
	}

	// Sort models by R² (best first)
	slices.SortStableFunc(ranked, func(a, b *Model) int {
		if a.RSquared > b.RSquared {
			return -1
		}
		if a.RSquared < b.RSquared {
			return 1
		}

		return 0
	})

	return &Result{
		DatasetID: ds.Fingerprint(),
		BestFit:   ranked[0],
		AllModels: append(ranked, failed...),
	}, nil
}

// fitCandidate fits a single model function and scores it against the observations.
func fitCandidate(ds *dataset.Dataset, mf *pmodel.ModelFunction, cfg *AnalyzeConfig) *Model {
	m := &Model{}
	if mf == nil {
		m.Err = fmt.Errorf("%w: nil model function", errs.ErrInvalidModel)
		return m
	}
	m.Name = mf.Name()
	m.Shape = mf.Shape()

	var estOpts []estimator.EnergyOption
	if cfg.Solver != nil {
		estOpts = append(estOpts, estimator.WithEnergySolver(cfg.Solver))
	}

	est, err := estimator.NewEnergyChangepointEstimator(mf, estOpts...)
	if err != nil {
		m.Err = err
		return m
	}
	if err := est.Fit(ds, cfg.FitOptions...); err != nil {
		m.Err = fmt.Errorf("model %s: %w", m.Name, err)
		return m
	}

	coeffs, err := est.ParsedCoefficients()
	if err != nil {
		m.Err = fmt.Errorf("model %s: %w", m.Name, err)
		return m
	}
	y, _ := est.Y()
	predY, _ := est.PredY()

	m.Coefficients = coeffs
	m.RSquared = calculateRSquared(y, predY)
	m.RMSE = calculateRMSE(y, predY)
	m.Estimator = est

	return m
}

func partition(models []*Model) (ok, failed []*Model) {
	for _, m := range models {
		if m.OK() {
			ok = append(ok, m)
		} else {
			failed = append(failed, m)
		}
	}

	return ok, failed
}

// calculateRSquared calculates the coefficient of determination (R²).
//
// Formula: R² = 1 - (SS_res / SS_tot)
//   - SS_res: Sum of squares of residuals (observed - predicted)²
//   - SS_tot: Total sum of squares (observed - mean)²
//
// A constant series has SS_tot = 0 and scores 0.
func calculateRSquared(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	mean := calculateMean(observed)
	ssTot := 0.0
	ssRes := 0.0

	for i := range observed {
		ssTot += (observed[i] - mean) * (observed[i] - mean)
		ssRes += (observed[i] - predicted[i]) * (observed[i] - predicted[i])
	}

	if ssTot == 0 {
		return 0
	}

	return 1.0 - (ssRes / ssTot)
}

// calculateRMSE calculates the root mean square error.
//
// Formula: RMSE = √(Σ(observed - predicted)² / n)
func calculateRMSE(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	sumSq := 0.0
	for i := range observed {
		diff := observed[i] - predicted[i]
		sumSq += diff * diff
	}

	return math.Sqrt(sumSq / float64(len(observed)))
}

func calculateMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return stat.Mean(values, nil)
}
