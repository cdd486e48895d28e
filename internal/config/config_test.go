package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Should return defaults for an empty path", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("Should overlay file values on the defaults", func(t *testing.T) {
		path := writeConfig(t, `
data_dir: /srv/corpus
folders: [PRE]
evaluation:
  host: http://eval.local:8000
  batch_size: 25
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/srv/corpus", cfg.DataDir)
		assert.Equal(t, []string{"PRE"}, cfg.Folders)
		assert.Equal(t, "http://eval.local:8000", cfg.Evaluation.Host)
		assert.Equal(t, 25, cfg.Evaluation.BatchSize)

		// Untouched keys keep their defaults.
		assert.Equal(t, "_NOR", cfg.Normalizer.Suffix)
		assert.Equal(t, "consignas.csv", cfg.Validator.CSVName)
		assert.Equal(t, 30, cfg.Evaluation.TimeoutSeconds)
	})

	t.Run("Should fail on a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("Should fail on malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "folders: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("Should reject values the validator refuses", func(t *testing.T) {
		_, err := Load(writeConfig(t, "evaluation:\n  batch_size: 0\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "batch_size")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "Should reject an empty data dir", mutate: func(c *Config) { c.DataDir = "" }},
		{name: "Should reject no folders", mutate: func(c *Config) { c.Folders = nil }},
		{name: "Should reject an empty folder name", mutate: func(c *Config) { c.Folders = []string{"POS1", ""} }},
		{name: "Should reject an empty suffix", mutate: func(c *Config) { c.Normalizer.Suffix = "" }},
		{name: "Should reject an empty table name", mutate: func(c *Config) { c.Validator.CSVName = "" }},
		{name: "Should reject no identifier columns", mutate: func(c *Config) { c.Validator.IDColumns = nil }},
		{name: "Should reject an empty output column", mutate: func(c *Config) { c.Validator.OutputColumn = "" }},
		{name: "Should reject a zero timeout", mutate: func(c *Config) { c.Evaluation.TimeoutSeconds = 0 }},
		{name: "Should reject a zero stream timeout", mutate: func(c *Config) { c.Evaluation.StreamTimeoutSeconds = 0 }},
		{name: "Should reject a negative pause", mutate: func(c *Config) { c.Evaluation.PauseSeconds = -1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.Error(t, Validate(&cfg))
		})
	}

	t.Run("Should accept the defaults", func(t *testing.T) {
		cfg := Default()
		assert.NoError(t, Validate(&cfg))
	})
}
