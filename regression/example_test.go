package regression_test

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/arloliu/mandv/calc/bounds"
	"github.com/arloliu/mandv/dataset"
	"github.com/arloliu/mandv/format"
	"github.com/arloliu/mandv/pmodel"
	"github.com/arloliu/mandv/regression"
)

// ExampleAnalyze demonstrates selecting the best shape for a cooling-dominated building.
func ExampleAnalyze() {
	ds := createExampleDataset()

	candidates, err := pmodel.ForShapes([]format.Shape{
		format.ShapeTwoParameter,
		format.ShapeThreeParameterCooling,
		format.ShapeThreeParameterHeating,
	}, bounds.DefaultPolicy)
	if err != nil {
		log.Fatal(err)
	}

	result, err := regression.Analyze(context.Background(), ds, candidates)
	if err != nil {
		log.Fatal(err)
	}

	best := result.BestFit
	fmt.Printf("Best fit: %s\n", best.Shape)
	fmt.Printf("R²: %.4f\n", best.RSquared)
	fmt.Printf("Base load: %.2f\n", best.Coefficients.Intercept)
	fmt.Printf("Cooling slope: %.2f\n", best.Coefficients.Slopes[0])
	fmt.Printf("Changepoint: %.2f\n", best.Coefficients.Changepoints[0])

	predicted, err := best.Estimator.Predict([]float64{5, 15})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Predicted at 5 and 15: %.2f, %.2f\n", predicted[0], predicted[1])

	// Output:
	// Best fit: 3PC
	// R²: 1.0000
	// Base load: 10.00
	// Cooling slope: 3.00
	// Changepoint: 10.00
	// Predicted at 5 and 15: 10.00, 25.00
}

// createExampleDataset returns 21 days of usage that rises 3 units per degree above 10°.
func createExampleDataset() *dataset.Dataset {
	base := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	x := make([]float64, 21)
	y := make([]float64, 21)
	ts := make([]time.Time, 21)
	for i := range x {
		x[i] = float64(i)
		y[i] = 10 + 3*math.Max(x[i]-10, 0)
		ts[i] = base.AddDate(0, 0, i)
	}

	ds, err := dataset.New(x, y, ts)
	if err != nil {
		log.Fatal(err)
	}

	return ds
}
