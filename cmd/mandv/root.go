package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arloliu/mandv/dataset"
	"github.com/arloliu/mandv/internal/config"
	"github.com/arloliu/mandv/internal/logging"
)

// app holds state shared by every subcommand after PersistentPreRunE.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	log    zerolog.Logger
	closer io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "mandv",
		Short: "Fit changepoint energy models to measurement data",
		Long: `mandv fits piecewise-linear changepoint models (2P, 3PC, 3PH, 4P, 5P)
to energy usage observations, selects the best shape by R² and writes a fit report.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.closer != nil {
				return a.closer.Close()
			}

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newFitCmd(a),
		newArchiveCmd(a),
		newInspectCmd(a),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
		if err := cfg.Logging.Validate(); err != nil {
			return err
		}
	}

	logger, closer, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger
	a.closer = closer
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))

	a.log.Debug().Str("config", a.configPath).Msg("configuration loaded")

	return nil
}

// loadDataset reads a CSV file or a dataset archive, chosen by file extension.
func loadDataset(path string) (*dataset.Dataset, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		ds, err := readCSV(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		return ds, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ds, err := dataset.UnmarshalBlob(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return ds, nil
}
