package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/mandv/estimator"
	"github.com/arloliu/mandv/format"
	"github.com/arloliu/mandv/internal/logging"
	"github.com/arloliu/mandv/pmodel"
	"github.com/arloliu/mandv/regression"
	"github.com/arloliu/mandv/report"
)

type fitOptions struct {
	output        string
	shapes        []string
	encoding      string
	compression   string
	absoluteSigma bool
}

func newFitCmd(a *app) *cobra.Command {
	opts := &fitOptions{}

	cmd := &cobra.Command{
		Use:   "fit <data.csv|archive>",
		Short: "Fit every candidate shape and write a fit report",
		Long: `Fit reads observations from a CSV file (timestamp,x,y[,sigma]) or a dataset
archive, fits every configured shape and writes the report to --output or stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFit(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "report file (default stdout)")
	cmd.Flags().StringSliceVar(&opts.shapes, "shapes", nil, "candidate shapes, overrides models.shapes")
	cmd.Flags().StringVar(&opts.encoding, "encoding", "", "report encoding (json, yaml), overrides report.encoding")
	cmd.Flags().StringVar(&opts.compression, "compression", "", "report compression (none, zstd, s2, lz4), overrides report.compression")
	cmd.Flags().BoolVar(&opts.absoluteSigma, "absolute-sigma", false, "treat the sigma column as absolute uncertainties")

	return cmd
}

func (a *app) runFit(cmd *cobra.Command, path string, opts *fitOptions) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	models := a.cfg.Models
	if len(opts.shapes) > 0 {
		models.Shapes = opts.shapes
	}
	shapes, err := models.ShapeList()
	if err != nil {
		return err
	}

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

	ds, err := loadDataset(path)
	if err != nil {
		return err
	}
	log.Info().Str("input", path).Int("observations", ds.Len()).Bool("sigma", ds.HasSigma()).Msg("dataset loaded")

	candidates, err := pmodel.ForShapes(shapes, a.cfg.Bounds.Policy())
	if err != nil {
		return err
	}

	s, err := a.cfg.Solver.NewSolver()
	if err != nil {
		return err
	}

	analyzeOpts := []regression.AnalyzeOption{
		regression.WithSolver(s),
		regression.WithFitOptions(estimator.WithAbsoluteSigma(opts.absoluteSigma)),
	}
	if a.cfg.Models.Concurrency > 0 {
		analyzeOpts = append(analyzeOpts, regression.WithConcurrency(a.cfg.Models.Concurrency))
	}

	result, err := regression.Analyze(ctx, ds, candidates, analyzeOpts...)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", path, err)
	}

	for _, m := range result.AllModels {
		if m.Err != nil {
			log.Warn().Str("model", m.Name).Err(m.Err).Msg("fit failed")
			continue
		}
		log.Debug().Str("model", m.Name).Float64("r_squared", m.RSquared).Float64("rmse", m.RMSE).
			Floats64("coefficients", m.Coefficients.Vector()).Msg("fit succeeded")
	}
	log.Info().Str("best_fit", result.BestFit.Name).Float64("r_squared", result.BestFit.RSquared).
		Str("dataset_id", report.FormatDatasetID(result.DatasetID)).Msg("shape selected")

	rep, err := report.New(result)
	if err != nil {
		return err
	}

	return a.writeReport(cmd.OutOrStdout(), opts.output, rep, enc, ct)
}

func (a *app) writeReport(stdout io.Writer, output string, rep report.Report, enc format.EncodingType, ct format.CompressionType) error {
	if output == "" {
		return a.encodeReport(stdout, rep, enc, ct)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := a.encodeReport(f, rep, enc, ct); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func (a *app) encodeReport(w io.Writer, rep report.Report, enc format.EncodingType, ct format.CompressionType) error {
	stats, err := report.Write(w, rep, enc, ct)
	if err != nil {
		return err
	}

	a.log.Debug().Str("encoding", enc.String()).Str("compression", ct.String()).
		Int64("bytes", stats.CompressedSize).Float64("space_savings", stats.SpaceSavings()).Msg("report written")

	return nil
}
