// Package regression selects the best changepoint model shape for a dataset.
//
// Every candidate pmodel.ModelFunction is fitted with an
// estimator.EnergyChangepointEstimator, scored by R² and RMSE against the
// observations, and ranked. The candidate with the highest R² becomes the best fit.
//
// # Usage Patterns
//
// ## Basic Analysis
//
//	candidates, err := pmodel.Defaults(bounds.DefaultPolicy)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := regression.Analyze(ctx, ds, candidates)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	best := result.BestFit
//	fmt.Printf("%s: R²=%.4f, coefficients=%v\n", best.Shape, best.RSquared, best.Coefficients.Vector())
//
// ## Baseline and Reporting Periods
//
// Analyze each period separately, then project the baseline model onto the
// reporting-period conditions:
//
//	results, err := regression.AnalyzeEach(ctx, []*dataset.Dataset{baseline, reporting}, candidates)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	adjusted, err := results[0].BestFit.Estimator.Adjust(results[1].BestFit.Estimator)
//
// # Failed Candidates
//
// A candidate whose fit fails is kept in Result.AllModels with Err set and is ranked
// after every successful candidate. Analyze only fails when no candidate fits, in
// which case the joined fit errors are returned.
package regression
