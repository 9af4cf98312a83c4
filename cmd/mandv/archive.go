package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/mandv/dataset"
	"github.com/arloliu/mandv/internal/logging"
	"github.com/arloliu/mandv/report"
)

func newArchiveCmd(a *app) *cobra.Command {
	var compression string

	cmd := &cobra.Command{
		Use:   "archive <data.csv> <archive>",
		Short: "Store a CSV dataset as a compressed mebo archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ac := a.cfg.Archive
			if compression != "" {
				ac.Compression = compression
			}
			ct, err := ac.CompressionType()
			if err != nil {
				return err
			}

			ds, err := loadDataset(args[0])
			if err != nil {
				return err
			}

			data, err := ds.MarshalBlob(dataset.WithArchiveCompression(ct))
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], data, 0o644); err != nil {
				return err
			}

			logging.FromContext(cmd.Context()).Info().
				Str("output", args[1]).
				Int("observations", ds.Len()).
				Int("bytes", len(data)).
				Str("compression", ct.String()).
				Str("dataset_id", report.FormatDatasetID(ds.Fingerprint())).
				Msg("dataset archived")

			return nil
		},
	}

	cmd.Flags().StringVar(&compression, "compression", "", "archive compression (none, zstd, s2, lz4), overrides archive.compression")

	return cmd
}
