package config

import (
	"fmt"
	"math"

	"github.com/arloliu/mandv/calc/bounds"
	"github.com/arloliu/mandv/errs"
	"github.com/arloliu/mandv/format"
	"github.com/arloliu/mandv/solver"
)

// Config represents the complete CLI configuration
type Config struct {
	Solver  SolverConfig  `mapstructure:"solver"`
	Bounds  BoundsConfig  `mapstructure:"bounds"`
	Models  ModelsConfig  `mapstructure:"models"`
	Report  ReportConfig  `mapstructure:"report"`
	Archive ArchiveConfig `mapstructure:"archive"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SolverConfig configures the curve fitter
type SolverConfig struct {
	MaxEvaluations int     `mapstructure:"max_evaluations"`
	Tolerance      float64 `mapstructure:"tolerance"`
	Restarts       int     `mapstructure:"restarts"`
}

// BoundsConfig configures the trim policy of the computed bounds
type BoundsConfig struct {
	EdgeTrim               float64 `mapstructure:"edge_trim"`               // Fraction of X excluded at both ends
	InnerTrim              float64 `mapstructure:"inner_trim"`              // Fraction of X kept between the 5P changepoints
	NonNegativeIntercept2P bool    `mapstructure:"non_negative_intercept"` // Constrain the 2P intercept to >= 0
}

// ModelsConfig selects the candidate shapes
type ModelsConfig struct {
	Shapes      []string `mapstructure:"shapes"`
	Concurrency int      `mapstructure:"concurrency"` // Candidates fitted in parallel, 0 means GOMAXPROCS
}

// ReportConfig controls how fit reports are written
type ReportConfig struct {
	Encoding    string `mapstructure:"encoding"`    // json or yaml
	Compression string `mapstructure:"compression"` // none, zstd, s2 or lz4
}

// ArchiveConfig controls dataset archives
type ArchiveConfig struct {
	Compression string `mapstructure:"compression"` // none, zstd, s2 or lz4
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`      // json or console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr or a file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix or Kitchen
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Solver.Validate(); err != nil {
		return fmt.Errorf("solver config: %w", err)
	}

	if err := c.Bounds.Validate(); err != nil {
		return fmt.Errorf("bounds config: %w", err)
	}

	if err := c.Models.Validate(); err != nil {
		return fmt.Errorf("models config: %w", err)
	}

	if err := c.Report.Validate(); err != nil {
		return fmt.Errorf("report config: %w", err)
	}

	if err := c.Archive.Validate(); err != nil {
		return fmt.Errorf("archive config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates solver configuration
func (c *SolverConfig) Validate() error {
	if c.MaxEvaluations <= 0 {
		return fmt.Errorf("%w: max_evaluations must be positive", errs.ErrInvalidConfiguration)
	}

	if c.Tolerance <= 0 || math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance must be a positive number", errs.ErrInvalidConfiguration)
	}

	if c.Restarts < 0 {
		return fmt.Errorf("%w: restarts must not be negative", errs.ErrInvalidConfiguration)
	}

	return nil
}

// NewSolver builds the curve fitter described by the configuration.
func (c *SolverConfig) NewSolver() (*solver.CurveFit, error) {
	return solver.NewCurveFit(
		solver.WithMaxEvaluations(c.MaxEvaluations),
		solver.WithTolerance(c.Tolerance),
		solver.WithRestarts(c.Restarts),
	)
}

// Validate validates bounds configuration
func (c *BoundsConfig) Validate() error {
	return c.Policy().Validate()
}

// Policy returns the trim policy for the computed bounds.
func (c *BoundsConfig) Policy() bounds.Policy {
	return bounds.Policy{
		EdgeTrim:               c.EdgeTrim,
		InnerTrim:              c.InnerTrim,
		NonNegativeIntercept2P: c.NonNegativeIntercept2P,
	}
}

// Validate validates models configuration
func (c *ModelsConfig) Validate() error {
	if _, err := c.ShapeList(); err != nil {
		return err
	}

	if c.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency must not be negative", errs.ErrInvalidConfiguration)
	}

	return nil
}

// ShapeList parses the configured shape names.
func (c *ModelsConfig) ShapeList() ([]format.Shape, error) {
	if len(c.Shapes) == 0 {
		return nil, fmt.Errorf("%w: at least one shape is required", errs.ErrInvalidConfiguration)
	}

	shapes := make([]format.Shape, 0, len(c.Shapes))
	for _, name := range c.Shapes {
		s, ok := format.ShapeFromString(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", errs.ErrUnknownShape, name)
		}
		shapes = append(shapes, s)
	}

	return shapes, nil
}

// Validate validates report configuration
func (c *ReportConfig) Validate() error {
	if _, err := c.EncodingType(); err != nil {
		return err
	}

	_, err := parseCompression(c.Compression)

	return err
}

// EncodingType parses the configured report encoding.
func (c *ReportConfig) EncodingType() (format.EncodingType, error) {
	enc, ok := format.EncodingFromString(c.Encoding)
	if !ok {
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownEncoding, c.Encoding)
	}

	return enc, nil
}

// CompressionType parses the configured report compression.
func (c *ReportConfig) CompressionType() (format.CompressionType, error) {
	return parseCompression(c.Compression)
}

// Validate validates archive configuration
func (c *ArchiveConfig) Validate() error {
	_, err := parseCompression(c.Compression)

	return err
}

// CompressionType parses the configured archive compression.
func (c *ArchiveConfig) CompressionType() (format.CompressionType, error) {
	return parseCompression(c.Compression)
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("%w: logging.level must be one of: debug, info, warn, error", errs.ErrInvalidConfiguration)
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("%w: logging.format must be 'json' or 'console'", errs.ErrInvalidConfiguration)
	}

	return nil
}

func parseCompression(name string) (format.CompressionType, error) {
	ct, ok := format.CompressionFromString(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", errs.ErrUnsupportedCompress, name)
	}

	return ct, nil
}
