package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/arloliu/mandv/dataset"
	"github.com/arloliu/mandv/errs"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// readCSV reads observations laid out as timestamp,x,y[,sigma].
//
// A first row whose x column is not numeric is treated as a header. Either every
// row has a sigma column or none does.
func readCSV(r io.Reader) (*dataset.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var (
		x, y, sigma []float64
		ts          []time.Time
		withSigma   = -1
	)

	for first := true; ; first = false {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrInvalidDataset, err)
		}

		if first && isHeader(record) {
			continue
		}

		line, _ := cr.FieldPos(0)

		if len(record) != 3 && len(record) != 4 {
			return nil, fmt.Errorf("%w: line %d: expected 3 or 4 columns, got %d", errs.ErrInvalidDataset, line, len(record))
		}

		hasSigma := 0
		if len(record) == 4 {
			hasSigma = 1
		}
		if withSigma == -1 {
			withSigma = hasSigma
		} else if withSigma != hasSigma {
			return nil, fmt.Errorf("%w: line %d: sigma column must be present on every row", errs.ErrInvalidDataset, line)
		}

		t, err := parseTimestamp(record[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", errs.ErrInvalidDataset, line, err)
		}

		values := make([]float64, len(record)-1)
		for i, field := range record[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %d: %w", errs.ErrInvalidDataset, line, i+2, err)
			}
			values[i] = v
		}

		ts = append(ts, t)
		x = append(x, values[0])
		y = append(y, values[1])
		if hasSigma == 1 {
			sigma = append(sigma, values[2])
		}
	}

	var opts []dataset.Option
	if withSigma == 1 {
		opts = append(opts, dataset.WithSigma(sigma))
	}

	ds, err := dataset.New(x, y, ts, opts...)
	if err != nil {
		return nil, err
	}
	if err := ds.CheckFinite(); err != nil {
		return nil, err
	}

	return ds, nil
}

func isHeader(record []string) bool {
	if len(record) < 2 {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)

	return err != nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
