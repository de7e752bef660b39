// Movieseed - MovieLens Bulk Seed Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieseed

package aggregation

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	// DuckDB driver - aggregates the ratings file with read_csv
	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/movieseed/internal/logging"
	"github.com/tomtom215/movieseed/internal/metrics"
)

// DuckDBProvider computes count and mean rating per movie from a
// tab-delimited ratings file (user id, movie id, rating, timestamp).
type DuckDBProvider struct {
	ratingsFile string
}

// NewDuckDBProvider creates a provider aggregating ratingsFile.
func NewDuckDBProvider(ratingsFile string) *DuckDBProvider {
	return &DuckDBProvider{ratingsFile: ratingsFile}
}

// FetchHash runs the aggregation in a throwaway in-memory DuckDB.
func (p *DuckDBProvider) FetchHash(ctx context.Context) (hash Hash, err error) {
	start := time.Now()
	log := logging.Ctx(logging.ContextWithComponent(ctx, "aggregation"))
	defer func() {
		metrics.RecordAggregationFetch("duckdb", len(hash), time.Since(start), err)
	}()

	info, err := os.Stat(p.ratingsFile)
	if err != nil {
		return nil, fmt.Errorf("ratings file: %w", err)
	}
	// read_csv cannot sniff an empty file; no ratings means no entries.
	if info.Size() == 0 {
		log.Debug().Str("ratings_file", p.ratingsFile).Msg("Ratings file is empty")
		return make(Hash), nil
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Error closing DuckDB")
		}
	}()

	rows, err := db.QueryContext(ctx, aggregateQuery(p.ratingsFile))
	if err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}
	defer rows.Close()

	hash = make(Hash)
	for rows.Next() {
		var (
			movieID int64
			stats   Stats
		)
		if err := rows.Scan(&movieID, &stats.Count, &stats.Mean); err != nil {
			return nil, fmt.Errorf("scan aggregate row: %w", err)
		}
		hash[strconv.FormatInt(movieID, 10)] = stats
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate aggregate rows: %w", err)
	}

	log.Debug().
		Str("ratings_file", p.ratingsFile).
		Int("movies", len(hash)).
		Dur("duration", time.Since(start)).
		Msg("Ratings aggregated")

	return hash, nil
}

// aggregateQuery builds the GROUP BY over the ratings file. read_csv takes
// the path as a literal, so single quotes are doubled.
func aggregateQuery(path string) string {
	quoted := "'" + strings.ReplaceAll(path, "'", "''") + "'"
	return `SELECT movie_id, count(*) AS rating_count, avg(rating) AS rating_mean
FROM read_csv(` + quoted + `,
	delim = '\t',
	header = false,
	columns = {'user_id': 'BIGINT', 'movie_id': 'BIGINT', 'rating': 'DOUBLE', 'ts': 'BIGINT'})
GROUP BY movie_id
ORDER BY movie_id`
}
