// Movieseed - MovieLens Bulk Seed Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieseed

package aggregation

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/dgraph-io/badger/v4"
)

// countingProvider is a test double that counts FetchHash calls.
type countingProvider struct {
	hash  Hash
	err   error
	calls int32
}

func (p *countingProvider) FetchHash(_ context.Context) (Hash, error) {
	atomic.AddInt32(&p.calls, 1)
	if p.err != nil {
		return nil, p.err
	}
	return copyHash(p.hash), nil
}

func openTestCache(t *testing.T) *badger.DB {
	t.Helper()
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // test cleanup
	return db
}

func TestCachedProvider_MissThenHit(t *testing.T) {
	db := openTestCache(t)
	inner := &countingProvider{hash: Hash{"1": {Count: 5, Mean: 3.2}}}
	cached := NewCachedProvider(db, inner, "duckdb:u.data", 0)

	first, err := cached.FetchHash(context.Background())
	if err != nil {
		t.Fatalf("first FetchHash() error = %v", err)
	}
	second, err := cached.FetchHash(context.Background())
	if err != nil {
		t.Fatalf("second FetchHash() error = %v", err)
	}

	if calls := atomic.LoadInt32(&inner.calls); calls != 1 {
		t.Errorf("inner provider called %d times, want 1", calls)
	}
	if first["1"] != second["1"] {
		t.Errorf("cached stats %+v differ from fetched %+v", second["1"], first["1"])
	}
	if second["1"].Count != 5 || second["1"].Mean != 3.2 {
		t.Errorf("cached stats = %+v, want {5 3.2}", second["1"])
	}
}

func TestCachedProvider_SourceIsolation(t *testing.T) {
	db := openTestCache(t)
	a := &countingProvider{hash: Hash{"1": {Count: 1, Mean: 1}}}
	b := &countingProvider{hash: Hash{"1": {Count: 2, Mean: 2}}}

	hashA, _ := NewCachedProvider(db, a, "duckdb:a.data", 0).FetchHash(context.Background())
	hashB, _ := NewCachedProvider(db, b, "duckdb:b.data", 0).FetchHash(context.Background())

	if hashA["1"].Count != 1 || hashB["1"].Count != 2 {
		t.Errorf("sources share a cache entry: a=%+v b=%+v", hashA["1"], hashB["1"])
	}
}

func TestCachedProvider_InnerError(t *testing.T) {
	db := openTestCache(t)
	inner := &countingProvider{err: errors.New("ratings file unreadable")}
	cached := NewCachedProvider(db, inner, "duckdb:u.data", 0)

	if _, err := cached.FetchHash(context.Background()); err == nil {
		t.Fatal("expected inner error to propagate")
	}

	// Errors are not cached.
	inner.err = nil
	inner.hash = Hash{"7": {Count: 1, Mean: 4}}
	hash, err := cached.FetchHash(context.Background())
	if err != nil {
		t.Fatalf("FetchHash() error = %v", err)
	}
	if hash["7"].Count != 1 {
		t.Errorf("hash[7] = %+v, want count 1", hash["7"])
	}
}

func TestCachedProvider_Clear(t *testing.T) {
	db := openTestCache(t)
	inner := &countingProvider{hash: Hash{"1": {Count: 5, Mean: 3.2}}}
	cached := NewCachedProvider(db, inner, "duckdb:u.data", 0)

	if _, err := cached.FetchHash(context.Background()); err != nil {
		t.Fatalf("FetchHash() error = %v", err)
	}
	if err := cached.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := cached.FetchHash(context.Background()); err != nil {
		t.Fatalf("FetchHash() error = %v", err)
	}
	if calls := atomic.LoadInt32(&inner.calls); calls != 2 {
		t.Errorf("inner provider called %d times after Clear, want 2", calls)
	}

	// Clearing an empty cache is not an error.
	if err := cached.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if err := cached.Clear(); err != nil {
		t.Errorf("Clear() on empty cache error = %v", err)
	}
}
