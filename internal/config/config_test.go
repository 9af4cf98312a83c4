package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/mandv/calc/bounds"
	"github.com/arloliu/mandv/errs"
	"github.com/arloliu/mandv/format"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:   "default config should be valid",
			mutate: func(*Config) {},
		},
		{
			name:    "zero max evaluations",
			mutate:  func(c *Config) { c.Solver.MaxEvaluations = 0 },
			wantErr: errs.ErrInvalidConfiguration,
		},
		{
			name:    "negative tolerance",
			mutate:  func(c *Config) { c.Solver.Tolerance = -1 },
			wantErr: errs.ErrInvalidConfiguration,
		},
		{
			name:    "negative restarts",
			mutate:  func(c *Config) { c.Solver.Restarts = -1 },
			wantErr: errs.ErrInvalidConfiguration,
		},
		{
			name:    "edge trim of one half",
			mutate:  func(c *Config) { c.Bounds.EdgeTrim = 0.5 },
			wantErr: errs.ErrInvalidConfiguration,
		},
		{
			name:    "unknown shape",
			mutate:  func(c *Config) { c.Models.Shapes = []string{"3PC", "6P"} },
			wantErr: errs.ErrUnknownShape,
		},
		{
			name:    "no shapes",
			mutate:  func(c *Config) { c.Models.Shapes = nil },
			wantErr: errs.ErrInvalidConfiguration,
		},
		{
			name:    "negative concurrency",
			mutate:  func(c *Config) { c.Models.Concurrency = -2 },
			wantErr: errs.ErrInvalidConfiguration,
		},
		{
			name:    "unknown report encoding",
			mutate:  func(c *Config) { c.Report.Encoding = "toml" },
			wantErr: errs.ErrUnknownEncoding,
		},
		{
			name:    "unknown report compression",
			mutate:  func(c *Config) { c.Report.Compression = "gzip" },
			wantErr: errs.ErrUnsupportedCompress,
		},
		{
			name:    "unknown archive compression",
			mutate:  func(c *Config) { c.Archive.Compression = "brotli" },
			wantErr: errs.ErrUnsupportedCompress,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: errs.ErrInvalidConfiguration,
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: errs.ErrInvalidConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDefaultConfig_Helpers(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, bounds.DefaultPolicy, cfg.Bounds.Policy())

	shapes, err := cfg.Models.ShapeList()
	require.NoError(t, err)
	assert.Equal(t, format.Shapes, shapes)

	enc, err := cfg.Report.EncodingType()
	require.NoError(t, err)
	assert.Equal(t, format.EncodingJSON, enc)

	ct, err := cfg.Report.CompressionType()
	require.NoError(t, err)
	assert.Equal(t, format.CompressionNone, ct)

	ct, err = cfg.Archive.CompressionType()
	require.NoError(t, err)
	assert.Equal(t, format.CompressionZstd, ct)

	s, err := cfg.Solver.NewSolver()
	require.NoError(t, err)
	require.NotNil(t, s)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mandv.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
solver:
  restarts: 1
  tolerance: 1e-9
bounds:
  edge_trim: 0.1
  non_negative_intercept: true
models:
  shapes: [2P, 3PC]
  concurrency: 2
report:
  encoding: yaml
  compression: s2
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Solver.Restarts)
	assert.InDelta(t, 1e-9, cfg.Solver.Tolerance, 1e-18)
	assert.Equal(t, DefaultConfig().Solver.MaxEvaluations, cfg.Solver.MaxEvaluations)

	assert.InDelta(t, 0.1, cfg.Bounds.EdgeTrim, 1e-12)
	assert.InDelta(t, bounds.DefaultPolicy.InnerTrim, cfg.Bounds.InnerTrim, 1e-12)
	assert.True(t, cfg.Bounds.NonNegativeIntercept2P)

	assert.Equal(t, []string{"2P", "3PC"}, cfg.Models.Shapes)
	assert.Equal(t, 2, cfg.Models.Concurrency)
	assert.Equal(t, "yaml", cfg.Report.Encoding)
	assert.Equal(t, "s2", cfg.Report.Compression)
	assert.Equal(t, "zstd", cfg.Archive.Compression)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.OutputPath)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "solver:\n  restarts: 1\n")
	t.Setenv("MANDV_SOLVER_RESTARTS", "7")
	t.Setenv("MANDV_ARCHIVE_COMPRESSION", "lz4")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Solver.Restarts)
	assert.Equal(t, "lz4", cfg.Archive.Compression)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, "models:\n  shapes: [6P]\n")

	_, err := Load(path)
	require.ErrorIs(t, err, errs.ErrUnknownShape)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path = writeConfig(t, "solver: [not, a, map\n")
	_, err = Load(path)
	require.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
