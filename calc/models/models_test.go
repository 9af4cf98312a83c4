package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModels(t *testing.T) {
	tests := []struct {
		name   string
		model  Model
		coeffs []float64
		x      []float64
		want   []float64
	}{
		{"2P", TwoParameter, []float64{1, 2}, []float64{0, 1, 2}, []float64{1, 3, 5}},
		{"3PC", ThreeParameterCooling, []float64{10, 2, 5}, []float64{1, 5, 8}, []float64{10, 10, 16}},
		{"3PH", ThreeParameterHeating, []float64{10, -2, 5}, []float64{1, 5, 8}, []float64{18, 10, 10}},
		{"4P", FourParameter, []float64{10, -2, 3, 5}, []float64{1, 5, 8}, []float64{18, 10, 19}},
		{"5P", FiveParameter, []float64{10, -2, 3, 4, 7}, []float64{2, 4, 6, 7, 9}, []float64{14, 10, 10, 10, 16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.name, tt.model.Name)
			require.Len(t, tt.coeffs, tt.model.NParams)

			got, err := tt.model.Eval(tt.x, tt.coeffs)
			require.NoError(t, err)
			require.InDeltaSlice(t, tt.want, got, 1e-12)
		})
	}
}

func TestModel_EvalErrors(t *testing.T) {
	_, err := TwoParameter.Eval([]float64{1}, []float64{1, 2, 3})
	require.Error(t, err)
	require.Contains(t, err.Error(), "expects 2 coefficients")

	_, err = Model{Name: "empty", NParams: 1}.Eval([]float64{1}, []float64{1})
	require.Error(t, err)
}
