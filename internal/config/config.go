package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all run settings, populated from environment variables.
type Config struct {
	InputDir     string
	OutputDir    string
	SamplesFile  string
	SamplesSheet string
	GridFile     string

	LogLevel  string
	LogFormat string

	// MetricsTextfile, when set, receives the run's metrics in Prometheus text format.
	MetricsTextfile string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	cfg := &Config{
		InputDir:        envOrDefault("INPUT_DIR", "input"),
		OutputDir:       envOrDefault("OUTPUT_DIR", "output"),
		SamplesFile:     envOrDefault("SAMPLES_FILE", "CAF_soil_type.xlsx"),
		SamplesSheet:    envOrDefault("SAMPLES_SHEET", "Sheet1"),
		GridFile:        envOrDefault("GRID_FILE", "cookeast_georeferencepoint_20190924.geojson"),
		LogLevel:        strings.ToLower(envOrDefault("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(envOrDefault("LOG_FORMAT", "text")),
		MetricsTextfile: strings.TrimSpace(os.Getenv("METRICS_TEXTFILE")),
	}

	if cfg.InputDir == "" {
		return nil, errors.New("INPUT_DIR is required")
	}
	if cfg.OutputDir == "" {
		return nil, errors.New("OUTPUT_DIR is required")
	}
	if cfg.SamplesFile == "" {
		return nil, errors.New("SAMPLES_FILE is required")
	}
	if cfg.GridFile == "" {
		return nil, errors.New("GRID_FILE is required")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}

	return cfg, nil
}

// SamplesPath is the full path of the survey spreadsheet.
func (c *Config) SamplesPath() string {
	return filepath.Join(c.InputDir, c.SamplesFile)
}

// GridPath is the full path of the georeference grid.
func (c *Config) GridPath() string {
	return filepath.Join(c.InputDir, c.GridFile)
}

// envOrDefault trims surrounding whitespace, so a blank value fails validation.
func envOrDefault(key, def string) string {
	return strings.TrimSpace(sharedcfg.EnvOrDefault(key, def))
}
