package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTempConfig writes content to a temp file and returns its path.
func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeTempConfig(t, `
application:
  log_level: "debug"
  log_format: "json"
  listen_addr: ":8080"
  tick_interval: "50ms"
bundles:
  - "bundles/chapter1.json"
events:
  - id: "intro"
    type: "dialogue"
    priority: 5
    content:
      text: "Welcome to the colony"
triggers:
  - event_id: "intro"
    type: "time"
    condition:
      delay: 1000
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "debug", cfg.Application.LogLevel)
	assert.Equal(t, "json", cfg.Application.LogFormat)
	assert.Equal(t, ":8080", cfg.Application.ListenAddr)
	assert.Equal(t, 50*time.Millisecond, cfg.Application.TickInterval.Duration)
	assert.Equal(t, []string{"bundles/chapter1.json"}, cfg.Bundles)
	require.Len(t, cfg.Events, 1)
	assert.Equal(t, "intro", cfg.Events[0].ID)
	require.Len(t, cfg.Triggers, 1)
	assert.Equal(t, "intro", cfg.Triggers[0].EventID)
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeTempConfig(t, "application: [unclosed")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal config file")
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeTempConfig(t, `
application:
  log_level: "loud"
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestLoadConfig_Empty(t *testing.T) {
	path := writeTempConfig(t, "")
	cfg, err := LoadConfig(path)
	require.NoError(t, err, "an empty config is valid; everything defaults")
	assert.Empty(t, cfg.Events)
	assert.Empty(t, cfg.Triggers)
}
