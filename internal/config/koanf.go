// Movieseed - MovieLens Bulk Seed Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieseed

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"movieseed.yaml",
	"movieseed.yml",
	"/etc/movieseed/config.yaml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults, matching the MovieLens 100k layout.
func defaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Dir:         "ml-100k",
			GenreFile:   "u.genre",
			MovieFile:   "u.item",
			UserFile:    "u.user",
			RatingsFile: "u.data",
			IndexName:   "",
		},
		Output: OutputConfig{
			Path: "-",
		},
		Aggregation: AggregationConfig{
			Provider:    ProviderNone,
			RatingsFile: "",
			CacheDir:    "",
			CacheTTL:    24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Metrics: MetricsConfig{
			TextfilePath: "",
		},
	}
}

// LoadWithKoanf loads configuration with layered sources:
//  1. Defaults
//  2. Config file (optional)
//  3. Environment variables
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// MOVIESEED_DATASET_DIR -> dataset.dir, LOG_LEVEL -> logging.level
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if cfg.Aggregation.RatingsFile == "" {
		cfg.Aggregation.RatingsFile = cfg.Dataset.Path(cfg.Dataset.RatingsFile)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	"movieseed_dataset_dir":      "dataset.dir",
	"movieseed_genre_file":       "dataset.genre_file",
	"movieseed_movie_file":       "dataset.movie_file",
	"movieseed_user_file":        "dataset.user_file",
	"movieseed_ratings_file":     "dataset.ratings_file",
	"movieseed_index_name":       "dataset.index_name",
	"movieseed_output":           "output.path",
	"movieseed_aggregation":      "aggregation.provider",
	"aggregation_ratings_file":   "aggregation.ratings_file",
	"aggregation_cache_dir":      "aggregation.cache_dir",
	"aggregation_cache_ttl":      "aggregation.cache_ttl",
	"log_level":                  "logging.level",
	"log_format":                 "logging.format",
	"log_caller":                 "logging.caller",
	"movieseed_metrics_textfile": "metrics.textfile_path",
}

// envTransformFunc maps an environment variable to a koanf path.
// Unknown variables return "" and are ignored by the env provider.
func envTransformFunc(key string) string {
	if path, ok := envMappings[strings.ToLower(key)]; ok {
		return path
	}
	return ""
}
