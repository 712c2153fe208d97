package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

const appName = "cinesearch"

// Config holds all application configuration
type Config struct {
	OMDb    OMDbConfig    `mapstructure:"omdb"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`

	// path the config was read from, empty when defaults only
	file string
}

// OMDbConfig holds movie database configuration
type OMDbConfig struct {
	APIKey            string  `mapstructure:"api_key"`
	BaseURL           string  `mapstructure:"base_url"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"` // 0 disables client-side limiting
	Plot              string  `mapstructure:"plot"`                // "short" or "full"
}

// StorageConfig holds local persistence configuration
type StorageConfig struct {
	Path string `mapstructure:"path"` // bbolt file holding favorites; empty = memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	LoadMoreThreshold int      `mapstructure:"load_more_threshold"` // rows from the end that trigger the next page
	OpenCommand       string   `mapstructure:"open_command"`        // empty = platform default
	OpenArgs          []string `mapstructure:"open_args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		OMDb: OMDbConfig{
			BaseURL:           "https://www.omdbapi.com/",
			TimeoutSeconds:    30,
			RequestsPerSecond: 5,
			Plot:              "short",
		},
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataPath(), "favorites.db"),
		},
		UI: UIConfig{
			LoadMoreThreshold: 3,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), appName+".log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName)
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// setDefaults registers every key so env overrides reach Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("omdb.api_key", cfg.OMDb.APIKey)
	v.SetDefault("omdb.base_url", cfg.OMDb.BaseURL)
	v.SetDefault("omdb.timeout_seconds", cfg.OMDb.TimeoutSeconds)
	v.SetDefault("omdb.requests_per_second", cfg.OMDb.RequestsPerSecond)
	v.SetDefault("omdb.plot", cfg.OMDb.Plot)

	v.SetDefault("storage.path", cfg.Storage.Path)

	v.SetDefault("ui.load_more_threshold", cfg.UI.LoadMoreThreshold)
	v.SetDefault("ui.open_command", cfg.UI.OpenCommand)
	v.SetDefault("ui.open_args", cfg.UI.OpenArgs)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// LoadConfig loads configuration from file and environment.
// An empty path searches the default locations; a missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. CINESEARCH_OMDB_API_KEY
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.file = v.ConfigFileUsed()
	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	cfg.Logging.File = expandHome(cfg.Logging.File)
	return cfg, nil
}

// SaveConfig writes cfg to path, or to the default location when path is empty
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = filepath.Join(defaultConfigPath(), "config.yaml")
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("omdb.api_key", cfg.OMDb.APIKey)
	v.Set("omdb.base_url", cfg.OMDb.BaseURL)
	v.Set("omdb.timeout_seconds", cfg.OMDb.TimeoutSeconds)
	v.Set("omdb.requests_per_second", cfg.OMDb.RequestsPerSecond)
	v.Set("omdb.plot", cfg.OMDb.Plot)

	v.Set("storage.path", cfg.Storage.Path)

	v.Set("ui.load_more_threshold", cfg.UI.LoadMoreThreshold)
	v.Set("ui.open_command", cfg.UI.OpenCommand)
	v.Set("ui.open_args", cfg.UI.OpenArgs)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	cfg.file = path
	return nil
}

// Validate checks the settings needed to talk to OMDb
func (c *Config) Validate() error {
	if c.OMDb.APIKey == "" {
		return fmt.Errorf("omdb.api_key is required")
	}
	if c.OMDb.BaseURL == "" {
		return fmt.Errorf("omdb.base_url is required")
	}
	if c.OMDb.Plot != "short" && c.OMDb.Plot != "full" {
		return fmt.Errorf("omdb.plot must be \"short\" or \"full\", got %q", c.OMDb.Plot)
	}
	if c.OMDb.RequestsPerSecond < 0 {
		return fmt.Errorf("omdb.requests_per_second cannot be negative")
	}
	if c.UI.LoadMoreThreshold < 1 {
		return fmt.Errorf("ui.load_more_threshold must be at least 1")
	}
	return nil
}

// IsConfigured returns true if an API key is set
func (c *Config) IsConfigured() bool {
	return c.OMDb.APIKey != ""
}

// File returns the config file in use, empty when running on defaults
func (c *Config) File() string {
	return c.file
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
