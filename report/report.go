package report

import (
	"fmt"
	"strconv"

	"github.com/arloliu/mandv/errs"
	"github.com/arloliu/mandv/plot"
	"github.com/arloliu/mandv/pmodel"
	"github.com/arloliu/mandv/regression"
)

// Version is the report document version written by New.
const Version = 1

// Report is the serializable summary of a shape selection.
type Report struct {
	Version      int           `json:"version" yaml:"version"`
	DatasetID    string        `json:"dataset_id" yaml:"dataset_id"`
	Observations int           `json:"observations" yaml:"observations"`
	BestFit      string        `json:"best_fit" yaml:"best_fit"`
	RawData      *plot.Trace   `json:"raw_data,omitempty" yaml:"raw_data,omitempty"`
	Models       []ModelReport `json:"models" yaml:"models"`
}

// ModelReport describes one candidate model of a Report.
type ModelReport struct {
	Name         string               `json:"name" yaml:"name"`
	Shape        string               `json:"shape" yaml:"shape"`
	Coefficients *pmodel.Coefficients `json:"coefficients,omitempty" yaml:"coefficients,omitempty"`
	RSquared     float64              `json:"r_squared" yaml:"r_squared"`
	RMSE         float64              `json:"rmse" yaml:"rmse"`
	Error        string               `json:"error,omitempty" yaml:"error,omitempty"`
	Trace        *plot.Trace          `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// New builds a Report from a shape selection result.
//
// Successful models carry their coefficients and model trace; failed models
// carry only their error message. The raw-data trace comes from the best fit.
//
// Parameters:
//   - result: Result of regression.Analyze
//
// Returns:
//   - Report: The report, models in the result's ranking order
//   - error: errs.ErrInvalidReport for a nil result or one without a best fit
func New(result *regression.Result) (Report, error) {
	if result == nil || result.BestFit == nil {
		return Report{}, fmt.Errorf("%w: no best fit", errs.ErrInvalidReport)
	}

	rep := Report{
		Version:   Version,
		DatasetID: FormatDatasetID(result.DatasetID),
		BestFit:   result.BestFit.Name,
		Models:    make([]ModelReport, 0, len(result.AllModels)),
	}

	if est := result.BestFit.Estimator; est != nil {
		x, err := est.X()
		if err != nil {
			return Report{}, err
		}
		y, err := est.Y()
		if err != nil {
			return Report{}, err
		}
		trace := plot.NewRawDataParameters(x, y).Trace()
		rep.RawData = &trace
		rep.Observations = len(x)
	}

	for _, m := range result.AllModels {
		mr, err := newModelReport(m)
		if err != nil {
			return Report{}, err
		}
		rep.Models = append(rep.Models, mr)
	}

	return rep, nil
}

func newModelReport(m *regression.Model) (ModelReport, error) {
	mr := ModelReport{Name: m.Name, Shape: m.Shape.String()}
	if !m.OK() {
		mr.Error = m.Err.Error()
		return mr, nil
	}

	coeffs := m.Coefficients
	mr.Coefficients = &coeffs
	mr.RSquared = m.RSquared
	mr.RMSE = m.RMSE

	if m.Estimator != nil {
		coords, err := m.Estimator.Coordinates()
		if err != nil {
			return ModelReport{}, fmt.Errorf("model %s: %w", m.Name, err)
		}
		params := plot.NewModelParameters(coords)
		params.Name = m.Name
		trace := params.Trace()
		mr.Trace = &trace
	}

	return mr, nil
}

// Best returns the model named by BestFit.
func (r Report) Best() (ModelReport, bool) {
	for _, m := range r.Models {
		if m.Name == r.BestFit {
			return m, true
		}
	}

	return ModelReport{}, false
}

// Validate checks that the report names a successful best fit.
func (r Report) Validate() error {
	if r.Version != Version {
		return fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidReport, r.Version)
	}

	best, ok := r.Best()
	if !ok {
		return fmt.Errorf("%w: best fit %q not among models", errs.ErrInvalidReport, r.BestFit)
	}
	if best.Error != "" || best.Coefficients == nil {
		return fmt.Errorf("%w: best fit %q has no coefficients", errs.ErrInvalidReport, r.BestFit)
	}

	return nil
}

// FormatDatasetID renders a dataset fingerprint as 16 hex digits.
func FormatDatasetID(id uint64) string {
	return fmt.Sprintf("%016x", id)
}

// ParseDatasetID parses a fingerprint rendered by FormatDatasetID.
func ParseDatasetID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: dataset id %q: %w", errs.ErrInvalidReport, s, err)
	}

	return id, nil
}
