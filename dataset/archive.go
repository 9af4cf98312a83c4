package dataset

import (
	"fmt"
	"math"
	"time"

	"github.com/arloliu/mebo"
	"github.com/arloliu/mebo/blob"
	meboformat "github.com/arloliu/mebo/format"

	"github.com/arloliu/mandv/errs"
	"github.com/arloliu/mandv/format"
	"github.com/arloliu/mandv/internal/options"
)

// Metric names used inside an archived dataset blob.
const (
	MetricX     = "x"
	MetricY     = "y"
	MetricSigma = "sigma"
	MetricOrder = "order"
)

// MaxArchiveObservations is the largest dataset that fits in a single blob metric.
const MaxArchiveObservations = math.MaxUint16

type archiveConfig struct {
	compression format.CompressionType
}

// ArchiveOption configures MarshalBlob.
type ArchiveOption = options.Option[*archiveConfig]

// WithArchiveCompression sets the payload compression of the archived values.
func WithArchiveCompression(c format.CompressionType) ArchiveOption {
	return options.New(func(cfg *archiveConfig) error {
		if c != format.CompressionNone && c != format.CompressionZstd &&
			c != format.CompressionS2 && c != format.CompressionLZ4 {
			return fmt.Errorf("%w: %s", errs.ErrUnsupportedCompress, c)
		}
		cfg.compression = c

		return nil
	})
}

// MarshalBlob encodes the dataset as a mebo numeric blob.
//
// Each column is stored as one metric keyed by the observation timestamps in
// microseconds: "x", "y", and when present "sigma" and "order". Timestamps use raw
// encoding because the sorted data is not in time order; values use Gorilla encoding.
//
// Parameters:
//   - opts: Archive options (WithArchiveCompression)
//
// Returns:
//   - []byte: Encoded blob
//   - error: Option, size or encoder errors
func (d *Dataset) MarshalBlob(opts ...ArchiveOption) ([]byte, error) {
	cfg := &archiveConfig{compression: format.CompressionZstd}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	n := d.Len()
	if n > MaxArchiveObservations {
		return nil, fmt.Errorf("%w: %d observations exceed the limit of %d",
			errs.ErrInvalidArchive, n, MaxArchiveObservations)
	}

	ts := make([]int64, n)
	start := d.timestamps[0]
	for i, t := range d.timestamps {
		ts[i] = t.UnixMicro()
		if t.Before(start) {
			start = t
		}
	}

	enc, err := mebo.NewNumericEncoder(start,
		blob.WithTimestampEncoding(meboformat.TypeRaw),
		blob.WithValueEncoding(meboformat.TypeGorilla),
		blob.WithValueCompression(meboformat.CompressionType(cfg.compression)),
	)
	if err != nil {
		return nil, fmt.Errorf("create blob encoder: %w", err)
	}

	columns := []struct {
		name   string
		values []float64
	}{
		{MetricX, d.x},
		{MetricY, d.y},
	}
	if d.sigma != nil {
		columns = append(columns, struct {
			name   string
			values []float64
		}{MetricSigma, d.sigma})
	}
	if d.order != nil {
		order := make([]float64, n)
		for i, idx := range d.order {
			order[i] = float64(idx)
		}
		columns = append(columns, struct {
			name   string
			values []float64
		}{MetricOrder, order})
	}

	for _, col := range columns {
		if err := enc.StartMetricID(mebo.MetricID(col.name), n); err != nil {
			return nil, fmt.Errorf("start metric %q: %w", col.name, err)
		}
		for i, v := range col.values {
			if err := enc.AddDataPoint(ts[i], v, ""); err != nil {
				return nil, fmt.Errorf("add metric %q: %w", col.name, err)
			}
		}
		if err := enc.EndMetric(); err != nil {
			return nil, fmt.Errorf("end metric %q: %w", col.name, err)
		}
	}

	data, err := enc.Finish()
	if err != nil {
		return nil, fmt.Errorf("finish blob: %w", err)
	}

	return data, nil
}

// UnmarshalBlob decodes a blob produced by MarshalBlob.
//
// The decoded columns are passed through New, so the returned dataset satisfies
// the same sortedness and length invariants as a freshly constructed one.
func UnmarshalBlob(data []byte) (*Dataset, error) {
	dec, err := mebo.NewNumericDecoder(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidArchive, err)
	}

	b, err := dec.Decode()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidArchive, err)
	}

	xID := mebo.MetricID(MetricX)
	yID := mebo.MetricID(MetricY)
	if !b.HasMetricID(xID) || !b.HasMetricID(yID) {
		return nil, fmt.Errorf("%w: missing %q or %q metric", errs.ErrInvalidArchive, MetricX, MetricY)
	}

	n := b.Len(xID)
	x := make([]float64, 0, n)
	timestamps := make([]time.Time, 0, n)
	for _, dp := range b.All(xID) {
		x = append(x, dp.Val)
		timestamps = append(timestamps, time.UnixMicro(dp.Ts).UTC())
	}

	y := collectValues(b, yID)

	var opts []Option
	if id := mebo.MetricID(MetricSigma); b.HasMetricID(id) {
		opts = append(opts, WithSigma(collectValues(b, id)))
	}
	if id := mebo.MetricID(MetricOrder); b.HasMetricID(id) {
		raw := collectValues(b, id)
		order := make([]int, len(raw))
		for i, v := range raw {
			order[i] = int(v)
		}
		opts = append(opts, WithOrder(order))
	}

	ds, err := New(x, y, timestamps, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidArchive, err)
	}

	return ds, nil
}

func collectValues(b blob.NumericBlob, id uint64) []float64 {
	values := make([]float64, 0, b.Len(id))
	for v := range b.AllValues(id) {
		values = append(values, v)
	}

	return values
}
