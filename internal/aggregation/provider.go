// Movieseed - MovieLens Bulk Seed Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieseed

// Package aggregation supplies per-movie rating statistics (count, mean)
// that the movie conversion merges into each movie document.
//
// Providers:
//
//   - DuckDBProvider: computes the hash from the tab-delimited ratings file
//   - CachedProvider: BadgerDB cache in front of another provider
//   - StaticProvider: fixed in-memory hash
//
// FetchHash is called once per movie conversion and the result is held in
// memory for the whole scan.
package aggregation

import (
	"context"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/tomtom215/movieseed/internal/config"
)

// Stats holds the rating statistics for one movie.
type Stats struct {
	Count int64   `json:"count"`
	Mean  float64 `json:"mean"`
}

// Hash maps a movie id (as it appears in the movie file) to its statistics.
type Hash map[string]Stats

// Provider fetches the complete aggregation hash.
type Provider interface {
	FetchHash(ctx context.Context) (Hash, error)
}

// StaticProvider returns a fixed hash.
type StaticProvider struct {
	hash Hash
}

// NewStaticProvider creates a provider serving a copy of hash.
func NewStaticProvider(hash Hash) *StaticProvider {
	return &StaticProvider{hash: copyHash(hash)}
}

// FetchHash returns a copy of the static hash.
func (p *StaticProvider) FetchHash(_ context.Context) (Hash, error) {
	return copyHash(p.hash), nil
}

func copyHash(h Hash) Hash {
	out := make(Hash, len(h))
	for id, s := range h {
		out[id] = s
	}
	return out
}

// NewProvider builds the provider selected by cfg.
// It returns a nil Provider when aggregation is disabled. The returned
// close function releases the cache database and is never nil.
func NewProvider(cfg *config.AggregationConfig) (Provider, func() error, error) {
	noop := func() error { return nil }

	if !cfg.Enabled() {
		return nil, noop, nil
	}

	var provider Provider
	switch cfg.Provider {
	case config.ProviderDuckDB:
		provider = NewDuckDBProvider(cfg.RatingsFile)
	default:
		return nil, noop, fmt.Errorf("unknown aggregation provider %q", cfg.Provider)
	}

	if cfg.CacheDir == "" {
		return provider, noop, nil
	}

	source, err := ratingsSource(cfg.Provider, cfg.RatingsFile)
	if err != nil {
		return nil, noop, err
	}
	db, err := OpenCache(cfg.CacheDir)
	if err != nil {
		return nil, noop, err
	}
	cached := NewCachedProvider(db, provider, source, cfg.CacheTTL)
	return cached, db.Close, nil
}

// ratingsSource identifies one version of the ratings file. Size and
// modification time are part of it, so an edited file misses the cache.
func ratingsSource(provider, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("ratings file: %w", err)
	}
	return fmt.Sprintf("%s:%s:%d:%d", provider, path, info.Size(), info.ModTime().UnixNano()), nil
}

// OpenCache opens (or creates) the BadgerDB cache directory.
func OpenCache(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	opts.ValueLogFileSize = 16 << 20

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open aggregation cache: %w", err)
	}
	return db, nil
}
