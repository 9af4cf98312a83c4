// Package models provides the piecewise-linear changepoint model functions.
//
// Every model takes coefficients laid out as (intercept, slopes..., changepoints...).
// The intercept of a changepoint model is the energy usage at its changepoint.
package models

import "fmt"

// Func evaluates a model at x with the given coefficients.
type Func func(x float64, coeffs []float64) float64

// Model is a named model function with a fixed coefficient count.
type Model struct {
	Name    string
	NParams int
	F       Func
}

// Eval evaluates the model at every element of x.
//
// It returns an error if coeffs does not have exactly NParams elements.
func (m Model) Eval(x []float64, coeffs []float64) ([]float64, error) {
	if m.F == nil {
		return nil, fmt.Errorf("model %q has no function", m.Name)
	}
	if len(coeffs) != m.NParams {
		return nil, fmt.Errorf("model %q expects %d coefficients, got %d", m.Name, m.NParams, len(coeffs))
	}

	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = m.F(v, coeffs)
	}

	return out, nil
}

// TwoP is the linear model yint + m*x.
func TwoP(x float64, c []float64) float64 {
	return c[0] + c[1]*x
}

// ThreePC is the cooling model: flat below the changepoint, sloped above.
func ThreePC(x float64, c []float64) float64 {
	yint, m, cp := c[0], c[1], c[2]
	if x < cp {
		return yint
	}

	return yint + m*(x-cp)
}

// ThreePH is the heating model: sloped below the changepoint, flat above.
func ThreePH(x float64, c []float64) float64 {
	yint, m, cp := c[0], c[1], c[2]
	if x < cp {
		return yint + m*(x-cp)
	}

	return yint
}

// FourP has independent slopes on each side of a single changepoint.
func FourP(x float64, c []float64) float64 {
	yint, ls, rs, cp := c[0], c[1], c[2], c[3]
	if x < cp {
		return yint + ls*(x-cp)
	}

	return yint + rs*(x-cp)
}

// FiveP has a heating slope below cp1, a flat deadband, and a cooling slope above cp2.
func FiveP(x float64, c []float64) float64 {
	yint, ls, rs, cp1, cp2 := c[0], c[1], c[2], c[3], c[4]
	switch {
	case x < cp1:
		return yint + ls*(x-cp1)
	case x < cp2:
		return yint
	default:
		return yint + rs*(x-cp2)
	}
}

// Built-in models.
var (
	TwoParameter          = Model{Name: "2P", NParams: 2, F: TwoP}
	ThreeParameterCooling = Model{Name: "3PC", NParams: 3, F: ThreePC}
	ThreeParameterHeating = Model{Name: "3PH", NParams: 3, F: ThreePH}
	FourParameter         = Model{Name: "4P", NParams: 4, F: FourP}
	FiveParameter         = Model{Name: "5P", NParams: 5, F: FiveP}
)
