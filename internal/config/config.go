// Movieseed - MovieLens Bulk Seed Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieseed

// Package config loads movieseed configuration with Koanf v2.
//
// Sources are layered, highest priority last:
//  1. Defaults (defaultConfig)
//  2. Optional YAML file (CONFIG_PATH, movieseed.yaml, /etc/movieseed/config.yaml)
//  3. Environment variables (see envTransformFunc)
//
// The dataset conversion core never reads configuration itself; the
// command hands it a *DatasetConfig.
package config

import (
	"path/filepath"
	"time"
)

// Config holds all configuration for a seed run.
type Config struct {
	Dataset     DatasetConfig     `koanf:"dataset"`
	Output      OutputConfig      `koanf:"output"`
	Aggregation AggregationConfig `koanf:"aggregation"`
	Logging     LoggingConfig     `koanf:"logging"`
	Metrics     MetricsConfig     `koanf:"metrics"`
}

// DatasetConfig locates the MovieLens input files.
// File names are relative to Dir.
type DatasetConfig struct {
	// Dir is the dataset directory (e.g. ml-100k).
	Dir string `koanf:"dir" validate:"required"`

	GenreFile   string `koanf:"genre_file" validate:"required"`
	MovieFile   string `koanf:"movie_file" validate:"required"`
	UserFile    string `koanf:"user_file" validate:"required"`
	RatingsFile string `koanf:"ratings_file" validate:"required"`

	// IndexName is added as "_index" to every bulk action line when set.
	// Empty keeps the action line as {"index":{"_type":...}}.
	IndexName string `koanf:"index_name"`
}

// Path joins name onto the dataset directory.
func (d *DatasetConfig) Path(name string) string {
	return filepath.Join(d.Dir, name)
}

// OutputConfig controls where bulk lines are written.
type OutputConfig struct {
	// Path of the bulk file. "-" writes to stdout.
	Path string `koanf:"path" validate:"required"`
}

// Stdout reports whether output goes to standard output.
func (o *OutputConfig) Stdout() bool {
	return o.Path == "-"
}

// Aggregation provider names.
const (
	ProviderNone   = "none"
	ProviderDuckDB = "duckdb"
)

// AggregationConfig selects the per-movie ratings statistics source.
type AggregationConfig struct {
	// Provider is "none" (movies carry no rating fields) or "duckdb".
	Provider string `koanf:"provider" validate:"oneof=none duckdb"`

	// RatingsFile is the tab-delimited ratings file aggregated by the
	// duckdb provider. Empty uses the dataset ratings file.
	RatingsFile string `koanf:"ratings_file"`

	// CacheDir enables the BadgerDB cache of the aggregation hash.
	CacheDir string `koanf:"cache_dir"`

	// CacheTTL is how long a cached hash stays valid.
	CacheTTL time.Duration `koanf:"cache_ttl" validate:"gte=0"`
}

// Enabled reports whether movies are joined with aggregation statistics.
func (a *AggregationConfig) Enabled() bool {
	return a.Provider != "" && a.Provider != ProviderNone
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	// TextfilePath is written at the end of a run for node_exporter's
	// textfile collector. Empty disables the export.
	TextfilePath string `koanf:"textfile_path"`
}

// Enabled reports whether metrics are exported.
func (m *MetricsConfig) Enabled() bool {
	return m.TextfilePath != ""
}

// Load reads configuration from defaults, config file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
