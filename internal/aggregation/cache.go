// Movieseed - MovieLens Bulk Seed Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieseed

package aggregation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/movieseed/internal/logging"
	"github.com/tomtom215/movieseed/internal/metrics"
)

const cacheKeyPrefix = "aggregation:hash:"

// CachedProvider serves the aggregation hash from BadgerDB and falls back
// to the wrapped provider on a miss. Entries expire after ttl (0 = never).
type CachedProvider struct {
	db    *badger.DB
	inner Provider
	key   []byte
	ttl   time.Duration
}

// NewCachedProvider wraps inner. source identifies the underlying data
// (provider and file) so different inputs never share a cache entry.
func NewCachedProvider(db *badger.DB, inner Provider, source string, ttl time.Duration) *CachedProvider {
	sum := sha256.Sum256([]byte(source))
	return &CachedProvider{
		db:    db,
		inner: inner,
		key:   []byte(cacheKeyPrefix + hex.EncodeToString(sum[:8])),
		ttl:   ttl,
	}
}

// FetchHash returns the cached hash, or fetches and stores it.
// A failed cache write is logged; the fetched hash is still returned.
func (c *CachedProvider) FetchHash(ctx context.Context) (Hash, error) {
	log := logging.Ctx(logging.ContextWithComponent(ctx, "aggregation"))

	hash, err := c.load()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read aggregation cache")
	}
	if hash != nil {
		metrics.RecordAggregationCache(true)
		log.Debug().Int("movies", len(hash)).Msg("Aggregation cache hit")
		return hash, nil
	}
	metrics.RecordAggregationCache(false)

	hash, err = c.inner.FetchHash(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.store(hash); err != nil {
		log.Warn().Err(err).Msg("Failed to write aggregation cache")
	}
	return hash, nil
}

// Clear removes the cached hash.
func (c *CachedProvider) Clear() error {
	return c.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(c.key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// load returns nil, nil when nothing is cached.
func (c *CachedProvider) load() (Hash, error) {
	var hash Hash

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(c.key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &hash)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load cached hash: %w", err)
	}

	return hash, nil
}

func (c *CachedProvider) store(hash Hash) error {
	data, err := json.Marshal(hash)
	if err != nil {
		return fmt.Errorf("marshal hash: %w", err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(c.key, data)
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}
		return txn.SetEntry(entry)
	})
}
