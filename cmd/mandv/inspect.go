package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/arloliu/mandv/report"
)

type inspectOptions struct {
	report      bool
	encoding    string
	compression string
}

func newInspectCmd(a *app) *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize a dataset archive, CSV file or fit report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.report {
				return a.inspectReport(cmd.OutOrStdout(), args[0], opts)
			}

			return inspectDataset(cmd.OutOrStdout(), args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.report, "report", false, "inspect a fit report instead of a dataset")
	cmd.Flags().StringVar(&opts.encoding, "encoding", "", "report encoding, overrides report.encoding")
	cmd.Flags().StringVar(&opts.compression, "compression", "", "report compression, overrides report.compression")

	return cmd
}

func inspectDataset(w io.Writer, path string) error {
	ds, err := loadDataset(path)
	if err != nil {
		return err
	}

	x := ds.X()
	y := ds.Y()
	ts := ds.Timestamps()

	fmt.Fprintf(w, "Dataset:      %s\n", report.FormatDatasetID(ds.Fingerprint()))
	fmt.Fprintf(w, "Observations: %d\n", ds.Len())
	fmt.Fprintf(w, "X range:      %g .. %g\n", x[0], x[len(x)-1])
	fmt.Fprintf(w, "Y range:      %g .. %g\n", floats.Min(y), floats.Max(y))
	fmt.Fprintf(w, "Y total:      %g\n", floats.Sum(y))
	fmt.Fprintf(w, "Sigma:        %t\n", ds.HasSigma())
	fmt.Fprintf(w, "Period:       %s .. %s\n", ts[0].Format("2006-01-02"), ts[len(ts)-1].Format("2006-01-02"))

	return nil
}

func (a *app) inspectReport(w io.Writer, path string, opts *inspectOptions) error {
	rc := a.cfg.Report
	if opts.encoding != "" {
		rc.Encoding = opts.encoding
	}
	if opts.compression != "" {
		rc.Compression = opts.compression
	}
	enc, err := rc.EncodingType()
	if err != nil {
		return err
	}
	ct, err := rc.CompressionType()
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rep, err := report.Read(f, enc, ct)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Fprintf(w, "Dataset:      %s\n", rep.DatasetID)
	fmt.Fprintf(w, "Observations: %d\n", rep.Observations)
	fmt.Fprintf(w, "Best fit:     %s\n", rep.BestFit)
	for _, m := range rep.Models {
		if m.Error != "" {
			fmt.Fprintf(w, "  %-4s failed: %s\n", m.Name, m.Error)
			continue
		}
		fmt.Fprintf(w, "  %-4s R²=%.4f RMSE=%.4f coefficients=%v\n", m.Name, m.RSquared, m.RMSE, m.Coefficients.Vector())
	}

	return nil
}
