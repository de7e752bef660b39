// Movieseed - MovieLens Bulk Seed Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieseed

// Package main is the entry point for movieseed.
//
// movieseed reads a MovieLens 100k directory and writes one bulk-index file
// containing movies, users and ratings, in that order:
//
//	{"index":{"_type":"movie"}}
//	{"id":"1","title":"Toy Story (1995)",...}
//
// # Configuration
//
// Loaded via Koanf v2 (environment > config file > defaults):
//   - MOVIESEED_DATASET_DIR: dataset directory (default: ml-100k)
//   - MOVIESEED_OUTPUT: output file, "-" for stdout (default: -)
//   - MOVIESEED_INDEX_NAME: optional "_index" on every action line
//   - MOVIESEED_AGGREGATION: none or duckdb (default: none)
//   - AGGREGATION_CACHE_DIR: BadgerDB cache for the aggregation hash
//   - MOVIESEED_METRICS_TEXTFILE: node_exporter textfile output
//   - LOG_LEVEL, LOG_FORMAT: logging (logs always go to stderr)
//
// # Example Usage
//
//	MOVIESEED_DATASET_DIR=./ml-100k MOVIESEED_AGGREGATION=duckdb \
//	  ./movieseed > seed.json
//	curl -s -H 'Content-Type: application/x-ndjson' \
//	  -XPOST localhost:9200/movielens/_bulk --data-binary @seed.json
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/movieseed/internal/aggregation"
	"github.com/tomtom215/movieseed/internal/config"
	"github.com/tomtom215/movieseed/internal/dataset"
	"github.com/tomtom215/movieseed/internal/logging"
	"github.com/tomtom215/movieseed/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.ContextWithNewRunID(ctx)

	if err := run(ctx, cfg); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Seed run failed")
		stop()
		os.Exit(1)
	}
}

// run converts the configured dataset into the configured output.
func run(ctx context.Context, cfg *config.Config) (err error) {
	logging.Ctx(ctx).Info().
		Str("dataset_dir", cfg.Dataset.Dir).
		Str("output", cfg.Output.Path).
		Str("aggregation", cfg.Aggregation.Provider).
		Msg("Starting seed run")

	if cfg.Metrics.Enabled() {
		defer func() {
			if writeErr := metrics.WriteTextfile(cfg.Metrics.TextfilePath); writeErr != nil {
				logging.Ctx(ctx).Warn().Err(writeErr).Msg("Failed to write metrics textfile")
			}
		}()
	}

	provider, closeProvider, err := aggregation.NewProvider(&cfg.Aggregation)
	if err != nil {
		return fmt.Errorf("create aggregation provider: %w", err)
	}
	defer func() {
		if closeErr := closeProvider(); closeErr != nil {
			logging.Ctx(ctx).Warn().Err(closeErr).Msg("Error closing aggregation cache")
		}
	}()

	loader, err := dataset.NewLoader(&cfg.Dataset, provider)
	if err != nil {
		return err
	}

	output, closeOutput, err := openOutput(&cfg.Output)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeOutput(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output: %w", closeErr)
		}
	}()

	all, err := loader.CreateSeedFiles(ctx, output)
	if err != nil {
		return err
	}

	var total int64
	for _, stats := range all {
		total += stats.Records
	}
	logging.Ctx(ctx).Info().Int64("records", total).Msg("Seed run completed")
	return nil
}

// openOutput returns the configured output stream and its close function.
func openOutput(cfg *config.OutputConfig) (io.Writer, func() error, error) {
	if cfg.Stdout() {
		return os.Stdout, func() error { return nil }, nil
	}

	file, err := os.Create(cfg.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return file, file.Close, nil
}
