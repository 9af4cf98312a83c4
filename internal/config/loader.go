package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/arloliu/mandv/calc/bounds"
	"github.com/arloliu/mandv/solver"
)

// EnvPrefix prefixes environment overrides, e.g. MANDV_SOLVER_RESTARTS.
const EnvPrefix = "MANDV"

// Load loads configuration from file
//
// An empty configPath searches ./mandv.yaml, ./configs/mandv.yaml and
// /etc/mandv/mandv.yaml and falls back to the defaults when none exists. An
// explicit path must exist.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("mandv")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/mandv")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return parseConfig(v)
		}

		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("solver.max_evaluations", d.Solver.MaxEvaluations)
	v.SetDefault("solver.tolerance", d.Solver.Tolerance)
	v.SetDefault("solver.restarts", d.Solver.Restarts)

	v.SetDefault("bounds.edge_trim", d.Bounds.EdgeTrim)
	v.SetDefault("bounds.inner_trim", d.Bounds.InnerTrim)
	v.SetDefault("bounds.non_negative_intercept", d.Bounds.NonNegativeIntercept2P)

	v.SetDefault("models.shapes", d.Models.Shapes)
	v.SetDefault("models.concurrency", d.Models.Concurrency)

	v.SetDefault("report.encoding", d.Report.Encoding)
	v.SetDefault("report.compression", d.Report.Compression)

	v.SetDefault("archive.compression", d.Archive.Compression)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output_path", d.Logging.OutputPath)
	v.SetDefault("logging.time_format", d.Logging.TimeFormat)
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Solver: SolverConfig{
			MaxEvaluations: solver.DefaultMaxEvaluations,
			Tolerance:      solver.DefaultTolerance,
			Restarts:       solver.DefaultRestarts,
		},
		Bounds: BoundsConfig{
			EdgeTrim:               bounds.DefaultPolicy.EdgeTrim,
			InnerTrim:              bounds.DefaultPolicy.InnerTrim,
			NonNegativeIntercept2P: bounds.DefaultPolicy.NonNegativeIntercept2P,
		},
		Models: ModelsConfig{
			Shapes: []string{"2P", "3PC", "3PH", "4P", "5P"},
		},
		Report: ReportConfig{
			Encoding:    "json",
			Compression: "none",
		},
		Archive: ArchiveConfig{
			Compression: "zstd",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stderr",
			TimeFormat: "RFC3339",
		},
	}
}
