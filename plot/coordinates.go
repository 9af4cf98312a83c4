// Package plot derives the coordinates needed to draw a fitted changepoint model.
//
// A model line is described by its first and last point and one marker per
// changepoint. Markers sit at the changepoint x and the minimum predicted y. The
// package only produces coordinates; rendering is left to the caller.
package plot

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/arloliu/mandv/errs"
	"github.com/arloliu/mandv/format"
)

// Point is a single plot coordinate.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// ModelCoordinates describes a fitted model line.
type ModelCoordinates struct {
	First        Point   `json:"first" yaml:"first"`
	Last         Point   `json:"last" yaml:"last"`
	Changepoints []Point `json:"changepoints,omitempty" yaml:"changepoints,omitempty"`
}

// CoordinatesParser derives model coordinates from the fitted X, the predicted y
// and the raw coefficient vector.
type CoordinatesParser interface {
	Parse(x, predY, coeffs []float64) (ModelCoordinates, error)
}

// TwoParameterCoordinatesParser draws the 2P line without changepoint markers.
type TwoParameterCoordinatesParser struct{}

// ThreeParameterCoordinatesParser draws 3PC and 3PH models with one marker at coeffs[2].
type ThreeParameterCoordinatesParser struct{}

// FourParameterCoordinatesParser draws the 4P model with one marker at the last coefficient.
type FourParameterCoordinatesParser struct{}

// FiveParameterCoordinatesParser draws the 5P model with markers at the last two coefficients.
type FiveParameterCoordinatesParser struct{}

func (TwoParameterCoordinatesParser) Parse(x, predY, coeffs []float64) (ModelCoordinates, error) {
	if err := checkInput(x, predY, coeffs, 2); err != nil {
		return ModelCoordinates{}, err
	}
	first, last := boundaryCoordinates(x, predY)

	return ModelCoordinates{First: first, Last: last}, nil
}

func (ThreeParameterCoordinatesParser) Parse(x, predY, coeffs []float64) (ModelCoordinates, error) {
	if err := checkInput(x, predY, coeffs, 3); err != nil {
		return ModelCoordinates{}, err
	}
	first, last := boundaryCoordinates(x, predY)

	return ModelCoordinates{
		First:        first,
		Last:         last,
		Changepoints: changepointCoordinates(predY, coeffs[2:3]),
	}, nil
}

func (FourParameterCoordinatesParser) Parse(x, predY, coeffs []float64) (ModelCoordinates, error) {
	if err := checkInput(x, predY, coeffs, 4); err != nil {
		return ModelCoordinates{}, err
	}
	first, last := boundaryCoordinates(x, predY)

	return ModelCoordinates{
		First:        first,
		Last:         last,
		Changepoints: changepointCoordinates(predY, coeffs[3:]),
	}, nil
}

func (FiveParameterCoordinatesParser) Parse(x, predY, coeffs []float64) (ModelCoordinates, error) {
	if err := checkInput(x, predY, coeffs, 5); err != nil {
		return ModelCoordinates{}, err
	}
	first, last := boundaryCoordinates(x, predY)

	return ModelCoordinates{
		First:        first,
		Last:         last,
		Changepoints: changepointCoordinates(predY, coeffs[3:]),
	}, nil
}

func checkInput(x, predY, coeffs []float64, nParams int) error {
	if len(x) == 0 {
		return errs.ErrEmptyDataset
	}
	if len(x) != len(predY) {
		return fmt.Errorf("%w: len(X)=%d, len(pred_y)=%d", errs.ErrLengthMismatch, len(x), len(predY))
	}
	if len(coeffs) != nParams {
		return fmt.Errorf("%w: expected %d, got %d", errs.ErrInvalidCoefficients, nParams, len(coeffs))
	}

	return nil
}

// boundaryCoordinates returns the first and last fitted points.
func boundaryCoordinates(x, predY []float64) (Point, Point) {
	last := len(x) - 1

	return Point{X: x[0], Y: predY[0]}, Point{X: x[last], Y: predY[last]}
}

// changepointCoordinates places a marker at every changepoint, at the minimum predicted y.
func changepointCoordinates(predY, changepoints []float64) []Point {
	minY := floats.Min(predY)
	out := make([]Point, len(changepoints))
	for i, cp := range changepoints {
		out[i] = Point{X: cp, Y: minY}
	}

	return out
}

// ParserFor returns the coordinates parser of shape.
func ParserFor(shape format.Shape) (CoordinatesParser, error) {
	switch shape {
	case format.ShapeTwoParameter:
		return TwoParameterCoordinatesParser{}, nil
	case format.ShapeThreeParameterCooling, format.ShapeThreeParameterHeating:
		return ThreeParameterCoordinatesParser{}, nil
	case format.ShapeFourParameter:
		return FourParameterCoordinatesParser{}, nil
	case format.ShapeFiveParameter:
		return FiveParameterCoordinatesParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownShape, shape)
	}
}

// ParserForCoefficients returns the coordinates parser for a coefficient count.
func ParserForCoefficients(n int) (CoordinatesParser, error) {
	switch n {
	case 2:
		return TwoParameterCoordinatesParser{}, nil
	case 3:
		return ThreeParameterCoordinatesParser{}, nil
	case 4:
		return FourParameterCoordinatesParser{}, nil
	case 5:
		return FiveParameterCoordinatesParser{}, nil
	default:
		return nil, fmt.Errorf("%w: no coordinates parser for %d coefficients", errs.ErrInvalidCoefficients, n)
	}
}

// Derive picks the parser by coefficient count and parses.
func Derive(x, predY, coeffs []float64) (ModelCoordinates, error) {
	p, err := ParserForCoefficients(len(coeffs))
	if err != nil {
		return ModelCoordinates{}, err
	}

	return p.Parse(x, predY, coeffs)
}
