package pmodel

import (
	"fmt"
	"slices"

	"github.com/arloliu/mandv/errs"
)

// Coefficients is a fitted coefficient vector split by meaning.
type Coefficients struct {
	Intercept    float64   `json:"intercept" yaml:"intercept"`
	Slopes       []float64 `json:"slopes" yaml:"slopes"`
	Changepoints []float64 `json:"changepoints,omitempty" yaml:"changepoints,omitempty"`
}

// Vector returns the coefficients in model order: intercept, slopes, changepoints.
func (c Coefficients) Vector() []float64 {
	out := make([]float64, 0, 1+len(c.Slopes)+len(c.Changepoints))
	out = append(out, c.Intercept)
	out = append(out, c.Slopes...)

	return append(out, c.Changepoints...)
}

// CoefficientParser splits a raw coefficient vector into Coefficients.
type CoefficientParser interface {
	NParams() int
	Parse(coeffs []float64) (Coefficients, error)
}

// TwoParameterCoefficientParser parses (yint, slope).
type TwoParameterCoefficientParser struct{}

// ThreeParameterCoefficientParser parses (yint, slope, cp) for both 3P families.
type ThreeParameterCoefficientParser struct{}

// FourParameterCoefficientParser parses (yint, left slope, right slope, cp).
type FourParameterCoefficientParser struct{}

// FiveParameterCoefficientParser parses (yint, left slope, right slope, cp1, cp2).
type FiveParameterCoefficientParser struct{}

func (TwoParameterCoefficientParser) NParams() int   { return 2 }
func (ThreeParameterCoefficientParser) NParams() int { return 3 }
func (FourParameterCoefficientParser) NParams() int  { return 4 }
func (FiveParameterCoefficientParser) NParams() int  { return 5 }

func (p TwoParameterCoefficientParser) Parse(coeffs []float64) (Coefficients, error) {
	return split(coeffs, p.NParams(), 1)
}

func (p ThreeParameterCoefficientParser) Parse(coeffs []float64) (Coefficients, error) {
	return split(coeffs, p.NParams(), 1)
}

func (p FourParameterCoefficientParser) Parse(coeffs []float64) (Coefficients, error) {
	return split(coeffs, p.NParams(), 2)
}

func (p FiveParameterCoefficientParser) Parse(coeffs []float64) (Coefficients, error) {
	return split(coeffs, p.NParams(), 2)
}

func split(coeffs []float64, n, nSlopes int) (Coefficients, error) {
	if len(coeffs) != n {
		return Coefficients{}, fmt.Errorf("%w: expected %d, got %d", errs.ErrInvalidCoefficients, n, len(coeffs))
	}

	c := Coefficients{
		Intercept: coeffs[0],
		Slopes:    slices.Clone(coeffs[1 : 1+nSlopes]),
	}
	if n > 1+nSlopes {
		c.Changepoints = slices.Clone(coeffs[1+nSlopes:])
	}

	return c, nil
}
