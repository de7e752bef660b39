// Movieseed - MovieLens Bulk Seed Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieseed

package aggregation

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/movieseed/internal/config"
)

func TestStaticProvider(t *testing.T) {
	t.Parallel()

	source := Hash{"1": {Count: 5, Mean: 3.2}}
	p := NewStaticProvider(source)

	// Mutating the source after construction must not leak in.
	source["2"] = Stats{Count: 1, Mean: 1}

	hash, err := p.FetchHash(context.Background())
	if err != nil {
		t.Fatalf("FetchHash() error = %v", err)
	}
	if len(hash) != 1 {
		t.Fatalf("len(hash) = %d, want 1", len(hash))
	}
	if got := hash["1"]; got.Count != 5 || got.Mean != 3.2 {
		t.Errorf("hash[1] = %+v, want {5 3.2}", got)
	}

	// Callers receive a copy.
	hash["1"] = Stats{}
	again, _ := p.FetchHash(context.Background())
	if again["1"].Count != 5 {
		t.Error("FetchHash should return an independent copy")
	}
}

func TestNewProvider(t *testing.T) {
	t.Run("disabled returns nil provider", func(t *testing.T) {
		p, closeFn, err := NewProvider(&config.AggregationConfig{Provider: config.ProviderNone})
		if err != nil {
			t.Fatalf("NewProvider() error = %v", err)
		}
		if p != nil {
			t.Errorf("expected nil provider, got %T", p)
		}
		if closeFn == nil || closeFn() != nil {
			t.Error("expected no-op close function")
		}
	})

	t.Run("duckdb without cache", func(t *testing.T) {
		p, closeFn, err := NewProvider(&config.AggregationConfig{
			Provider:    config.ProviderDuckDB,
			RatingsFile: "u.data",
		})
		if err != nil {
			t.Fatalf("NewProvider() error = %v", err)
		}
		defer closeFn() //nolint:errcheck // no-op
		if _, ok := p.(*DuckDBProvider); !ok {
			t.Errorf("expected *DuckDBProvider, got %T", p)
		}
	})

	t.Run("duckdb with cache", func(t *testing.T) {
		p, closeFn, err := NewProvider(&config.AggregationConfig{
			Provider:    config.ProviderDuckDB,
			RatingsFile: writeRatings(t, "u.data", "1\t1\t5\t881250949\n"),
			CacheDir:    filepath.Join(t.TempDir(), "cache"),
			CacheTTL:    time.Hour,
		})
		if err != nil {
			t.Fatalf("NewProvider() error = %v", err)
		}
		if _, ok := p.(*CachedProvider); !ok {
			t.Errorf("expected *CachedProvider, got %T", p)
		}
		if err := closeFn(); err != nil {
			t.Errorf("close error = %v", err)
		}
	})

	t.Run("cache with missing ratings file", func(t *testing.T) {
		_, closeFn, err := NewProvider(&config.AggregationConfig{
			Provider:    config.ProviderDuckDB,
			RatingsFile: filepath.Join(t.TempDir(), "missing.data"),
			CacheDir:    filepath.Join(t.TempDir(), "cache"),
		})
		if err == nil {
			t.Fatal("expected error for missing ratings file")
		}
		if closeFn == nil || closeFn() != nil {
			t.Error("expected no-op close function")
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		if _, _, err := NewProvider(&config.AggregationConfig{Provider: "mongo"}); err == nil {
			t.Error("expected error for unknown provider")
		}
	})
}

func TestNewProvider_CacheFollowsRatingsFile(t *testing.T) {
	path := writeRatings(t, "u.data", "1\t1\t5\t881250949\n")
	cfg := &config.AggregationConfig{
		Provider:    config.ProviderDuckDB,
		RatingsFile: path,
		CacheDir:    filepath.Join(t.TempDir(), "cache"),
		CacheTTL:    time.Hour,
	}

	fetch := func() Hash {
		t.Helper()
		p, closeFn, err := NewProvider(cfg)
		if err != nil {
			t.Fatalf("NewProvider() error = %v", err)
		}
		defer func() {
			if err := closeFn(); err != nil {
				t.Errorf("close error = %v", err)
			}
		}()
		hash, err := p.FetchHash(context.Background())
		if err != nil {
			t.Fatalf("FetchHash() error = %v", err)
		}
		return hash
	}

	if got := fetch()["1"]; got.Count != 1 || got.Mean != 5 {
		t.Fatalf("first fetch hash[1] = %+v, want {1 5}", got)
	}
	if got := fetch()["1"]; got.Count != 1 || got.Mean != 5 {
		t.Fatalf("cached fetch hash[1] = %+v, want {1 5}", got)
	}

	if err := os.WriteFile(path, []byte("1\t1\t1\t881250949\n2\t1\t1\t881250950\n"), 0o600); err != nil {
		t.Fatalf("rewrite ratings: %v", err)
	}
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("touch ratings: %v", err)
	}

	if got := fetch()["1"]; got.Count != 2 || got.Mean != 1 {
		t.Errorf("fetch after rewrite hash[1] = %+v, want {2 1}", got)
	}
}

func TestRatingsSource(t *testing.T) {
	path := writeRatings(t, "u.data", "1\t1\t5\t881250949\n")

	before, err := ratingsSource(config.ProviderDuckDB, path)
	if err != nil {
		t.Fatalf("ratingsSource() error = %v", err)
	}
	again, _ := ratingsSource(config.ProviderDuckDB, path)
	if before != again {
		t.Errorf("unchanged file gave %q then %q", before, again)
	}

	if err := os.WriteFile(path, []byte("1\t1\t5\t881250949\n1\t2\t4\t881250950\n"), 0o600); err != nil {
		t.Fatalf("rewrite ratings: %v", err)
	}
	after, err := ratingsSource(config.ProviderDuckDB, path)
	if err != nil {
		t.Fatalf("ratingsSource() error = %v", err)
	}
	if after == before {
		t.Errorf("source %q did not change after the file was rewritten", after)
	}

	if _, err := ratingsSource(config.ProviderDuckDB, filepath.Join(t.TempDir(), "missing.data")); err == nil {
		t.Error("expected error for missing ratings file")
	}
}
