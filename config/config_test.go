package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("TQTEST_NONE_", "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TQTEST_LOG_LEVEL", "debug")
	t.Setenv("TQTEST_OUTPUT_LIMIT", "5")
	t.Setenv("TQTEST_OUTPUT_FORMAT", "JSON")

	cfg, err := Load("TQTEST_", "")
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 5, cfg.Output.Limit)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tq.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  format: json\noutput:\n  limit: 10\n"), 0644))

	t.Setenv("TQTEST2_OUTPUT_LIMIT", "20")

	cfg, err := Load("TQTEST2_", path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "WARN", cfg.Log.Level)
	assert.Equal(t, 20, cfg.Output.Limit)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(EnvPrefix, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
