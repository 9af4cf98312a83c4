package pmodel

import (
	"fmt"

	"github.com/arloliu/mandv/calc/bounds"
	"github.com/arloliu/mandv/calc/guesses"
	"github.com/arloliu/mandv/calc/models"
	"github.com/arloliu/mandv/errs"
	"github.com/arloliu/mandv/format"
	"github.com/arloliu/mandv/internal/options"
)

// ModelFunction bundles a model function with its bounds, initial guesses,
// parameter model and coefficient parser.
//
// A ModelFunction is read-only after construction and can be shared by any number
// of estimators, including ones running concurrently.
type ModelFunction struct {
	name           string
	model          models.Model
	bounds         bounds.Spec
	parameterModel ParameterModel
	parser         CoefficientParser
	guesses        guesses.Spec
}

// Option configures optional parts of a ModelFunction.
type Option = options.Option[*ModelFunction]

// WithInitialGuesses sets the initial guesses handed to the solver.
func WithInitialGuesses(g guesses.Spec) Option {
	return options.NoError(func(mf *ModelFunction) {
		mf.guesses = g
	})
}

// NewModelFunction creates a ModelFunction.
//
// The model, parameter model and coefficient parser must describe the same family:
// their coefficient counts have to agree. Fixed bounds and fixed initial guesses are
// checked against that count; computed ones are checked at fit time.
//
// Parameters:
//   - name: Identifier of the model function (e.g. "3PC")
//   - model: Model function and its coefficient count
//   - b: Bound specification; the zero Spec means unbounded
//   - pm: Parameter model of the family
//   - parser: Coefficient parser of the family
//   - opts: Optional settings (WithInitialGuesses)
//
// Returns:
//   - *ModelFunction: The validated model function
//   - error: errs.ErrInvalidModel, errs.ErrModelFamilyMismatch, errs.ErrInvalidBounds or errs.ErrInvalidGuess
func NewModelFunction(
	name string,
	model models.Model,
	b bounds.Spec,
	pm ParameterModel,
	parser CoefficientParser,
	opts ...Option,
) (*ModelFunction, error) {
	mf := &ModelFunction{
		name:           name,
		model:          model,
		bounds:         b,
		parameterModel: pm,
		parser:         parser,
	}

	if err := options.Apply(mf, opts...); err != nil {
		return nil, err
	}

	if err := mf.validate(); err != nil {
		return nil, fmt.Errorf("model function %q: %w", name, err)
	}

	return mf, nil
}

func (mf *ModelFunction) validate() error {
	if mf.model.F == nil {
		return fmt.Errorf("%w: nil model function", errs.ErrInvalidModel)
	}
	if mf.parameterModel == nil {
		return fmt.Errorf("%w: nil parameter model", errs.ErrInvalidModel)
	}
	if mf.parser == nil {
		return fmt.Errorf("%w: nil coefficient parser", errs.ErrInvalidModel)
	}

	n := mf.model.NParams
	if n <= 0 {
		return fmt.Errorf("%w: non-positive coefficient count %d", errs.ErrInvalidModel, n)
	}
	if mf.parser.NParams() != n || mf.parameterModel.Shape().NParams() != n {
		return fmt.Errorf("%w: model has %d coefficients, parser %d, parameter model %s",
			errs.ErrModelFamilyMismatch, n, mf.parser.NParams(), mf.parameterModel.Shape())
	}

	if mf.bounds.IsFixed() {
		if err := mf.bounds.Resolve(nil, n).Validate(n); err != nil {
			return err
		}
	}
	if mf.guesses.IsFixed() && mf.guesses.Len() != n {
		return fmt.Errorf("%w: expected %d values, got %d", errs.ErrInvalidGuess, n, mf.guesses.Len())
	}

	return nil
}

// Name returns the identifier of the model function.
func (mf *ModelFunction) Name() string {
	return mf.name
}

// Model returns the model function.
func (mf *ModelFunction) Model() models.Model {
	return mf.model
}

// Bounds returns the bound specification.
func (mf *ModelFunction) Bounds() bounds.Spec {
	return mf.bounds
}

// ParameterModel returns the parameter model.
func (mf *ModelFunction) ParameterModel() ParameterModel {
	return mf.parameterModel
}

// CoefficientsParser returns the coefficient parser.
func (mf *ModelFunction) CoefficientsParser() CoefficientParser {
	return mf.parser
}

// InitialGuesses returns the initial-guess specification; its zero value means none.
func (mf *ModelFunction) InitialGuesses() guesses.Spec {
	return mf.guesses
}

// Shape returns the shape of the parameter model.
func (mf *ModelFunction) Shape() format.Shape {
	return mf.parameterModel.Shape()
}

// ParseCoefficients splits a raw coefficient vector with the function's parser.
func (mf *ModelFunction) ParseCoefficients(coeffs []float64) (Coefficients, error) {
	return mf.parser.Parse(coeffs)
}
