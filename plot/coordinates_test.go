package plot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mandv/errs"
	"github.com/arloliu/mandv/format"
)

func TestCoordinatesParsers(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	predY := []float64{9, 7, 5, 6, 8}

	tests := []struct {
		name   string
		shape  format.Shape
		coeffs []float64
		want   ModelCoordinates
	}{
		{
			"2P", format.ShapeTwoParameter, []float64{1, 2},
			ModelCoordinates{First: Point{1, 9}, Last: Point{5, 8}},
		},
		{
			"3PC", format.ShapeThreeParameterCooling, []float64{5, 1, 3.5},
			ModelCoordinates{First: Point{1, 9}, Last: Point{5, 8}, Changepoints: []Point{{3.5, 5}}},
		},
		{
			"3PH", format.ShapeThreeParameterHeating, []float64{5, -1, 2.5},
			ModelCoordinates{First: Point{1, 9}, Last: Point{5, 8}, Changepoints: []Point{{2.5, 5}}},
		},
		{
			"4P", format.ShapeFourParameter, []float64{5, -2, 1, 3},
			ModelCoordinates{First: Point{1, 9}, Last: Point{5, 8}, Changepoints: []Point{{3, 5}}},
		},
		{
			"5P", format.ShapeFiveParameter, []float64{5, -2, 1, 2.5, 3.5},
			ModelCoordinates{First: Point{1, 9}, Last: Point{5, 8}, Changepoints: []Point{{2.5, 5}, {3.5, 5}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParserFor(tt.shape)
			require.NoError(t, err)
			got, err := p.Parse(x, predY, tt.coeffs)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)

			derived, err := Derive(x, predY, tt.coeffs)
			require.NoError(t, err)
			require.Equal(t, tt.want, derived)
		})
	}
}

func TestCoordinatesParsers_Errors(t *testing.T) {
	p := FourParameterCoordinatesParser{}

	_, err := p.Parse(nil, nil, []float64{1, 2, 3, 4})
	require.ErrorIs(t, err, errs.ErrEmptyDataset)

	_, err = p.Parse([]float64{1, 2}, []float64{1}, []float64{1, 2, 3, 4})
	require.ErrorIs(t, err, errs.ErrLengthMismatch)

	_, err = p.Parse([]float64{1}, []float64{1}, []float64{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrInvalidCoefficients)

	_, err = ParserFor(format.Shape(0))
	require.ErrorIs(t, err, errs.ErrUnknownShape)

	_, err = ParserForCoefficients(6)
	require.ErrorIs(t, err, errs.ErrInvalidCoefficients)
}

func TestModelParameters_Trace(t *testing.T) {
	c := ModelCoordinates{
		First:        Point{1, 9},
		Last:         Point{5, 8},
		Changepoints: []Point{{2.5, 5}, {3.5, 5}},
	}

	trace := NewModelParameters(c).Trace()
	require.Equal(t, []float64{1, 2.5, 3.5, 5}, trace.X)
	require.Equal(t, []float64{9, 5, 5, 8}, trace.Y)
	require.Equal(t, ModelMode, trace.Mode)
	require.Equal(t, ModelName, trace.Name)

	raw := NewRawDataParameters([]float64{1, 2}, []float64{3, 4}).Trace()
	require.Equal(t, Trace{X: []float64{1, 2}, Y: []float64{3, 4}, Mode: "markers", Name: "Raw Data"}, raw)
}

func TestModelCoordinatesDeriver(t *testing.T) {
	d := ModelCoordinatesDeriver{Name: "baseline", Parser: TwoParameterCoordinatesParser{}}
	params, err := d.Derive([]float64{1, 2}, []float64{3, 4}, []float64{2, 1})
	require.NoError(t, err)
	require.Equal(t, "baseline", params.Name)
	require.Equal(t, ModelMode, params.Mode)
	require.Equal(t, Point{2, 4}, params.Last)

	_, err = d.Derive([]float64{1}, []float64{1}, []float64{1})
	require.ErrorIs(t, err, errs.ErrInvalidCoefficients)
}
