package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
omdb:
  api_key: abc123
  plot: full
  requests_per_second: 2
storage:
  path: /tmp/favs.db
ui:
  load_more_threshold: 5
logging:
  level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.OMDb.APIKey)
	assert.Equal(t, "full", cfg.OMDb.Plot)
	assert.Equal(t, 2.0, cfg.OMDb.RequestsPerSecond)
	assert.Equal(t, "https://www.omdbapi.com/", cfg.OMDb.BaseURL, "unset keys keep defaults")
	assert.Equal(t, "/tmp/favs.db", cfg.Storage.Path)
	assert.Equal(t, 5, cfg.UI.LoadMoreThreshold)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, path, cfg.File())
	assert.True(t, cfg.IsConfigured())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.False(t, cfg.IsConfigured())
	assert.Equal(t, 3, cfg.UI.LoadMoreThreshold)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("CINESEARCH_OMDB_API_KEY", "from-env")
	path := writeConfig(t, "omdb:\n  api_key: from-file\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.OMDb.APIKey)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfig(t, "omdb: [unclosed")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.OMDb.APIKey = "saved-key"

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "saved-key", loaded.OMDb.APIKey)
	assert.Equal(t, cfg.Storage.Path, loaded.Storage.Path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing key", mutate: func(c *Config) { c.OMDb.APIKey = "" }, wantErr: "omdb.api_key"},
		{name: "missing base url", mutate: func(c *Config) { c.OMDb.BaseURL = "" }, wantErr: "omdb.base_url"},
		{name: "bad plot", mutate: func(c *Config) { c.OMDb.Plot = "medium" }, wantErr: "omdb.plot"},
		{name: "negative rate", mutate: func(c *Config) { c.OMDb.RequestsPerSecond = -1 }, wantErr: "requests_per_second"},
		{name: "zero threshold", mutate: func(c *Config) { c.UI.LoadMoreThreshold = 0 }, wantErr: "load_more_threshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.OMDb.APIKey = "key"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
