package report

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/mandv/calc/bounds"
	"github.com/arloliu/mandv/calc/guesses"
	"github.com/arloliu/mandv/calc/models"
	"github.com/arloliu/mandv/dataset"
	"github.com/arloliu/mandv/errs"
	"github.com/arloliu/mandv/format"
	"github.com/arloliu/mandv/plot"
	"github.com/arloliu/mandv/pmodel"
	"github.com/arloliu/mandv/regression"
	"github.com/arloliu/mandv/solver"
)

var echoSolver = solver.SolverFunc(func(p solver.Problem) (solver.Result, error) {
	return solver.Result{Params: append([]float64(nil), p.P0...)}, nil
})

func twoP(t *testing.T, name string, g guesses.Spec) *pmodel.ModelFunction {
	t.Helper()

	mf, err := pmodel.NewModelFunction(name, models.TwoParameter, bounds.Spec{},
		pmodel.TwoParameterModel{}, pmodel.TwoParameterCoefficientParser{},
		pmodel.WithInitialGuesses(g))
	require.NoError(t, err)

	return mf
}

func analyzedResult(t *testing.T) *regression.Result {
	t.Helper()

	x := []float64{4, 1, 3, 2, 5}
	y := make([]float64, len(x))
	ts := make([]time.Time, len(x))
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range x {
		y[i] = 1 + 2*v
		ts[i] = base.AddDate(0, 0, i)
	}
	ds, err := dataset.New(x, y, ts)
	require.NoError(t, err)

	broken := twoP(t, "broken", guesses.Computed(func(_, _ []float64) []float64 { return nil }))
	exact := twoP(t, "exact", guesses.Fixed([]float64{1, 2}))

	result, err := regression.Analyze(context.Background(), ds, []*pmodel.ModelFunction{broken, exact},
		regression.WithSolver(echoSolver))
	require.NoError(t, err)

	return result
}

func TestNew(t *testing.T) {
	result := analyzedResult(t)

	rep, err := New(result)
	require.NoError(t, err)
	require.NoError(t, rep.Validate())

	assert.Equal(t, Version, rep.Version)
	assert.Equal(t, FormatDatasetID(result.DatasetID), rep.DatasetID)
	assert.Equal(t, 5, rep.Observations)
	assert.Equal(t, "exact", rep.BestFit)

	require.NotNil(t, rep.RawData)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, rep.RawData.X)
	assert.Equal(t, []float64{3, 5, 7, 9, 11}, rep.RawData.Y)
	assert.Equal(t, plot.RawDataMode, rep.RawData.Mode)

	require.Len(t, rep.Models, 2)
	best, ok := rep.Best()
	require.True(t, ok)
	assert.Equal(t, rep.Models[0], best)
	assert.Equal(t, "2P", best.Shape)
	assert.Equal(t, &pmodel.Coefficients{Intercept: 1, Slopes: []float64{2}}, best.Coefficients)
	assert.InDelta(t, 1.0, best.RSquared, 1e-12)
	assert.Empty(t, best.Error)
	require.NotNil(t, best.Trace)
	assert.Equal(t, []float64{1, 5}, best.Trace.X)
	assert.Equal(t, []float64{3, 11}, best.Trace.Y)
	assert.Equal(t, plot.ModelMode, best.Trace.Mode)
	assert.Equal(t, "exact", best.Trace.Name)

	failed := rep.Models[1]
	assert.Equal(t, "broken", failed.Name)
	assert.Contains(t, failed.Error, errs.ErrInvalidGuess.Error())
	assert.Nil(t, failed.Coefficients)
	assert.Nil(t, failed.Trace)
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, errs.ErrInvalidReport)

	_, err = New(&regression.Result{})
	require.ErrorIs(t, err, errs.ErrInvalidReport)
}

func TestWriteRead_RoundTrip(t *testing.T) {
	rep, err := New(analyzedResult(t))
	require.NoError(t, err)

	encodings := []format.EncodingType{format.EncodingJSON, format.EncodingYAML}
	compressions := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, enc := range encodings {
		for _, ct := range compressions {
			t.Run(enc.String()+"/"+ct.String(), func(t *testing.T) {
				var buf bytes.Buffer
				stats, err := Write(&buf, rep, enc, ct)
				require.NoError(t, err)
				require.Equal(t, ct, stats.Algorithm)
				require.Equal(t, int64(buf.Len()), stats.CompressedSize)

				got, err := Read(&buf, enc, ct)
				require.NoError(t, err)
				require.Equal(t, rep, got)
			})
		}
	}
}

func TestMarshal_HumanReadable(t *testing.T) {
	rep, err := New(analyzedResult(t))
	require.NoError(t, err)

	doc, err := Marshal(rep, format.EncodingJSON)
	require.NoError(t, err)
	require.Contains(t, string(doc), `"best_fit": "exact"`)
	require.Contains(t, string(doc), `"mode": "markers+lines"`)

	doc, err = Marshal(rep, format.EncodingYAML)
	require.NoError(t, err)
	require.Contains(t, string(doc), "best_fit: exact")
	require.Contains(t, string(doc), "r_squared: 1")

	again, err := Marshal(rep, format.EncodingYAML)
	require.NoError(t, err)
	require.Equal(t, doc, again)
	require.NotSame(t, &doc[0], &again[0], "marshaled documents must not share pooled memory")
}

func TestRead_Errors(t *testing.T) {
	rep, err := New(analyzedResult(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = Write(&buf, rep, format.EncodingJSON, format.CompressionZstd)
	require.NoError(t, err)
	payload := buf.Bytes()

	_, err = Read(bytes.NewReader(payload), format.EncodingJSON, format.CompressionLZ4)
	require.ErrorIs(t, err, errs.ErrInvalidReport)

	_, err = Read(bytes.NewReader(payload), format.EncodingJSON, format.CompressionType(0))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompress)

	_, err = Read(bytes.NewReader([]byte("{not json")), format.EncodingJSON, format.CompressionNone)
	require.ErrorIs(t, err, errs.ErrInvalidReport)

	_, err = Read(bytes.NewReader([]byte(`{"version":1,"best_fit":"missing","models":[]}`)), format.EncodingJSON, format.CompressionNone)
	require.ErrorIs(t, err, errs.ErrInvalidReport)

	_, err = Read(bytes.NewReader([]byte(`{"version":7}`)), format.EncodingJSON, format.CompressionNone)
	require.ErrorIs(t, err, errs.ErrInvalidReport)

	_, err = Write(&buf, rep, format.EncodingType(0), format.CompressionNone)
	require.ErrorIs(t, err, errs.ErrUnknownEncoding)

	_, err = Write(failingWriter{}, rep, format.EncodingJSON, format.CompressionNone)
	require.ErrorContains(t, err, "write report")
}

func TestDatasetID(t *testing.T) {
	s := FormatDatasetID(0xdeadbeef)
	require.Equal(t, "00000000deadbeef", s)

	id, err := ParseDatasetID(s)
	require.NoError(t, err)
	require.Equal(t, uint64(0xdeadbeef), id)

	_, err = ParseDatasetID("xyz")
	require.ErrorIs(t, err, errs.ErrInvalidReport)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}
