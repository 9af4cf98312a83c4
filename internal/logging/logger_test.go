package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/mandv/internal/config"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.InfoLevel)

	logger.Debug().Msg("hidden")
	logger.Info().Str("shape", "3PC").Float64("r_squared", 0.97).Msg("best fit")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "best fit", entry["message"])
	assert.Equal(t, "3PC", entry["shape"])
	assert.InDelta(t, 0.97, entry["r_squared"], 1e-12)
	assert.Contains(t, entry, "time")
}

func TestNewFromConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mandv.log")

	logger, closer, err := NewFromConfig(config.LoggingConfig{
		Level:      "warn",
		Format:     "json",
		OutputPath: path,
	})
	require.NoError(t, err)

	logger.Info().Msg("skipped")
	logger.Warn().Msg("kept")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"kept"`)
	assert.NotContains(t, string(data), "skipped")
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}

func TestNewFromConfig_StdStreams(t *testing.T) {
	for _, out := range []string{"", "stdout", "stderr"} {
		logger, closer, err := NewFromConfig(config.LoggingConfig{Level: "bogus", Format: "console", OutputPath: out})
		require.NoError(t, err, out)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
		require.NoError(t, closer.Close())
	}
}

func TestNewFromConfig_BadPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, _, err := NewFromConfig(config.LoggingConfig{Level: "info", Format: "json", OutputPath: filepath.Join(blocker, "x.log")})
	require.Error(t, err)
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.DebugLevel)

	ctx := WithLogger(context.Background(), logger)
	FromContext(ctx).Info().Msg("from context")
	assert.Contains(t, buf.String(), "from context")

	assert.Equal(t, zerolog.Disabled, FromContext(context.Background()).GetLevel())
}

func TestTimeFormat(t *testing.T) {
	assert.Equal(t, time.RFC3339, timeFormat(""))
	assert.Equal(t, time.RFC3339, timeFormat("RFC3339"))
	assert.Equal(t, time.UnixDate, timeFormat("Unix"))
	assert.Equal(t, time.Kitchen, timeFormat("Kitchen"))
}
