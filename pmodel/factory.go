package pmodel

import (
	"fmt"

	"github.com/arloliu/mandv/calc/bounds"
	"github.com/arloliu/mandv/calc/guesses"
	"github.com/arloliu/mandv/calc/models"
	"github.com/arloliu/mandv/errs"
	"github.com/arloliu/mandv/format"
)

// ForShape builds the standard ModelFunction of shape, with bounds computed under
// policy and initial guesses from calc/guesses.
//
// Example:
//
//	mf, err := pmodel.ForShape(format.ShapeFourParameter, bounds.DefaultPolicy)
//	if err != nil {
//	    return err
//	}
//	est, err := estimator.NewEnergyChangepointEstimator(mf)
func ForShape(shape format.Shape, policy bounds.Policy) (*ModelFunction, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	var (
		model  models.Model
		bf     bounds.Func
		gf     guesses.Func
		parser CoefficientParser
	)

	switch shape {
	case format.ShapeTwoParameter:
		model, bf, gf, parser = models.TwoParameter, policy.TwoP, guesses.TwoP, TwoParameterCoefficientParser{}
	case format.ShapeThreeParameterCooling:
		model, bf, gf, parser = models.ThreeParameterCooling, policy.ThreePC, guesses.ThreePC, ThreeParameterCoefficientParser{}
	case format.ShapeThreeParameterHeating:
		model, bf, gf, parser = models.ThreeParameterHeating, policy.ThreePH, guesses.ThreePH, ThreeParameterCoefficientParser{}
	case format.ShapeFourParameter:
		model, bf, gf, parser = models.FourParameter, policy.FourP, guesses.FourP, FourParameterCoefficientParser{}
	case format.ShapeFiveParameter:
		model, bf, gf, parser = models.FiveParameter, policy.FiveP, guesses.FiveP, FiveParameterCoefficientParser{}
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownShape, shape)
	}

	return NewModelFunction(
		shape.String(),
		model,
		bounds.Computed(bf),
		ParameterModelFor(shape),
		parser,
		WithInitialGuesses(guesses.Computed(gf)),
	)
}

// Defaults builds the standard ModelFunction of every shape in format.Shapes order.
func Defaults(policy bounds.Policy) ([]*ModelFunction, error) {
	return ForShapes(format.Shapes, policy)
}

// ForShapes builds the standard ModelFunction of each shape in order.
func ForShapes(shapes []format.Shape, policy bounds.Policy) ([]*ModelFunction, error) {
	out := make([]*ModelFunction, 0, len(shapes))
	for _, shape := range shapes {
		mf, err := ForShape(shape, policy)
		if err != nil {
			return nil, err
		}
		out = append(out, mf)
	}

	return out, nil
}
