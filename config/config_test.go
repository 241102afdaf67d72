package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gelfconv.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Facility)
	assert.True(t, cfg.ShouldCacheHostname())
	assert.Equal(t, "auto", cfg.Input.Codec)
	assert.Equal(t, "lines", cfg.Input.Framing)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "tint", cfg.Logging.Format)
	assert.False(t, cfg.ValidateDocuments)
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
facility: billing
hostname: web-01
cache_hostname: false
input:
  codec: json
validate: true
logging:
  level: debug
  format: json
metrics:
  textfile: /tmp/gelfconv.prom
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "billing", cfg.Facility)
	assert.Equal(t, "web-01", cfg.Hostname)
	assert.False(t, cfg.ShouldCacheHostname())
	assert.Equal(t, "json", cfg.Input.Codec)
	assert.Equal(t, "lines", cfg.Input.Framing, "unset keys keep their default")
	assert.True(t, cfg.ValidateDocuments)
	assert.Equal(t, "/tmp/gelfconv.prom", cfg.Metrics.Textfile)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_EmptyValuesFallBackToDefaults(t *testing.T) {
	path := writeConfig(t, `
input:
  codec: ""
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Input.Codec)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/gelfconv.yaml")
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "facility: [unclosed"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"codec":      "input:\n  codec: xml\n",
		"framing":    "input:\n  framing: gzip\n",
		"log format": "logging:\n  format: xml\n",
		"log level":  "logging:\n  level: loud\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}
