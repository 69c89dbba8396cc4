package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.Multiplicity)
	assert.Equal(t, "memo", cfg.Strategy)
	assert.Equal(t, "fail_fast", cfg.ErrorPolicy)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_FileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "springs.yaml")
	data := []byte("workers: 3\nstrategy: table\nlogging:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "table", cfg.Strategy)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Unset fields keep their defaults.
	assert.Equal(t, 5, cfg.Multiplicity)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [1,2\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestEnvOverrides(t *testing.T) {
	t.Run("SPRINGS_WORKERS sets workers", func(t *testing.T) {
		t.Setenv("SPRINGS_WORKERS", "7")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.Workers)
	})

	t.Run("SPRINGS_WORKERS must be numeric", func(t *testing.T) {
		t.Setenv("SPRINGS_WORKERS", "many")
		_, err := Load("")
		require.Error(t, err)
	})

	t.Run("SPRINGS_STRATEGY overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "springs.yaml")
		require.NoError(t, os.WriteFile(path, []byte("strategy: table\n"), 0644))
		t.Setenv("SPRINGS_STRATEGY", "automaton")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "automaton", cfg.Strategy)
	})

	t.Run("SPRINGS_LOG_LEVEL and SPRINGS_METRICS_FILE", func(t *testing.T) {
		t.Setenv("SPRINGS_LOG_LEVEL", "warn")
		t.Setenv("SPRINGS_METRICS_FILE", "/tmp/springs.prom")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.Equal(t, "/tmp/springs.prom", cfg.MetricsFile)
	})
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"zero multiplicity", func(c *Config) { c.Multiplicity = 0 }},
		{"huge multiplicity", func(c *Config) { c.Multiplicity = 65 }},
		{"unknown strategy", func(c *Config) { c.Strategy = "guess" }},
		{"unknown policy", func(c *Config) { c.ErrorPolicy = "skip" }},
		{"unknown level", func(c *Config) { c.Logging.Level = "trace" }},
		{"unknown format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "springs.yaml")
	cfg := DefaultConfig()
	cfg.Workers = 2
	cfg.Strategy = "automaton"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
