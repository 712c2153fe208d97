package source

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/cinesearch/internal/adapter/source/omdb"
	"github.com/mmcdole/cinesearch/internal/config"
	"github.com/mmcdole/cinesearch/internal/domain"
)

// SourceConfig contains the configuration needed to create a MovieSource
type SourceConfig struct {
	BaseURL           string
	APIKey            string
	Plot              string
	TimeoutSeconds    int
	RequestsPerSecond float64
}

// NewClient creates a MovieSource backed by OMDb
func NewClient(cfg *SourceConfig, logger *slog.Logger) (domain.MovieSource, error) {
	if cfg == nil {
		return nil, fmt.Errorf("source config is nil")
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OMDb API key is required")
	}

	opts := []omdb.Option{
		omdb.WithRateLimit(cfg.RequestsPerSecond),
		omdb.WithPlot(cfg.Plot),
	}
	if cfg.TimeoutSeconds > 0 {
		opts = append(opts, omdb.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second))
	}

	return omdb.NewClient(cfg.BaseURL, cfg.APIKey, logger, opts...)
}

// NewClientFromConfig creates a MovieSource from the application config
func NewClientFromConfig(cfg *config.Config, logger *slog.Logger) (domain.MovieSource, error) {
	return NewClient(&SourceConfig{
		BaseURL:           cfg.OMDb.BaseURL,
		APIKey:            cfg.OMDb.APIKey,
		Plot:              cfg.OMDb.Plot,
		TimeoutSeconds:    cfg.OMDb.TimeoutSeconds,
		RequestsPerSecond: cfg.OMDb.RequestsPerSecond,
	}, logger)
}
