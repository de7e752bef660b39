// Movieseed - MovieLens Bulk Seed Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieseed

package dataset

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/tomtom215/movieseed/internal/aggregation"
	"github.com/tomtom215/movieseed/internal/config"
	"github.com/tomtom215/movieseed/internal/logging"
	"github.com/tomtom215/movieseed/internal/metrics"
)

// Loader converts the dataset files in one directory. The genre table is
// loaded once by NewLoader and never modified.
type Loader struct {
	cfg      *config.DatasetConfig
	genres   GenreTable
	provider aggregation.Provider
}

// NewLoader loads the genre table from cfg.Dir. provider may be nil, in
// which case movie documents carry no rating statistics.
func NewLoader(cfg *config.DatasetConfig, provider aggregation.Provider) (*Loader, error) {
	genres, err := LoadGenres(cfg.Path(cfg.GenreFile))
	if err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}

	return &Loader{
		cfg:      cfg,
		genres:   genres,
		provider: provider,
	}, nil
}

// Genres returns the loaded genre table.
func (l *Loader) Genres() GenreTable {
	return l.genres
}

// DetectGenres resolves a genre bit-vector against the loaded table.
func (l *Loader) DetectGenres(flags []int) ([]string, error) {
	return l.genres.DetectGenres(flags)
}

// CreateMovieSeedFile converts the movie file inputFile (relative to the
// dataset directory). When a provider is configured the aggregation hash
// is fetched once before the scan and merged by movie id.
func (l *Loader) CreateMovieSeedFile(ctx context.Context, inputFile string, output io.Writer) (*ConvertStats, error) {
	var hash aggregation.Hash
	if l.provider != nil {
		var err error
		if hash, err = l.provider.FetchHash(ctx); err != nil {
			metrics.RecordConversion(string(RecordTypeMovie), 0, 0, err)
			return nil, fmt.Errorf("fetch aggregation hash: %w", err)
		}
	}

	return l.convert(ctx, RecordTypeMovie, inputFile, pipeSeparator, output, func(fields []string) (any, error) {
		movie, err := parseMovie(fields, l.genres)
		if err != nil {
			return nil, err
		}
		if hash != nil {
			mergeStats(movie, hash)
		}
		return movie, nil
	})
}

// mergeStats copies the movie's statistics from hash, defaulting to 0 / 0.0.
func mergeStats(movie *Movie, hash aggregation.Hash) {
	stats := hash[movie.ID]
	movie.RatingCount = &stats.Count
	movie.RatingMean = &stats.Mean
}

// CreateUserSeedFile converts the user file inputFile.
func (l *Loader) CreateUserSeedFile(ctx context.Context, inputFile string, output io.Writer) (*ConvertStats, error) {
	return l.convert(ctx, RecordTypeUser, inputFile, pipeSeparator, output, func(fields []string) (any, error) {
		return parseUser(fields)
	})
}

// CreateRatingsSeedFile converts the tab-delimited ratings file inputFile.
func (l *Loader) CreateRatingsSeedFile(ctx context.Context, inputFile string, output io.Writer) (*ConvertStats, error) {
	return l.convert(ctx, RecordTypeRating, inputFile, tabSeparator, output, func(fields []string) (any, error) {
		return parseRating(fields)
	})
}

// CreateSeedFiles converts the configured movie, user and ratings files,
// in that order, into one output stream. It stops at the first failure.
func (l *Loader) CreateSeedFiles(ctx context.Context, output io.Writer) ([]*ConvertStats, error) {
	steps := []struct {
		file    string
		convert func(context.Context, string, io.Writer) (*ConvertStats, error)
	}{
		{l.cfg.MovieFile, l.CreateMovieSeedFile},
		{l.cfg.UserFile, l.CreateUserSeedFile},
		{l.cfg.RatingsFile, l.CreateRatingsSeedFile},
	}

	all := make([]*ConvertStats, 0, len(steps))
	for _, step := range steps {
		stats, err := step.convert(ctx, step.file, output)
		if err != nil {
			return all, err
		}
		all = append(all, stats)
	}
	return all, nil
}

// convert scans one file, turning each line into a document with parse
// and writing it as a bulk line pair.
func (l *Loader) convert(
	ctx context.Context,
	recordType RecordType,
	inputFile, separator string,
	output io.Writer,
	parse func(fields []string) (any, error),
) (stats *ConvertStats, err error) {
	ctx = logging.ContextWithComponent(ctx, "dataset")
	path := l.cfg.Path(inputFile)
	stats = &ConvertStats{
		RecordType: recordType,
		File:       path,
		StartTime:  time.Now(),
	}
	writer := NewBulkWriter(output, l.cfg.IndexName)

	defer func() {
		stats.EndTime = time.Now()
		stats.Records = writer.Pairs()
		metrics.RecordConversion(string(recordType), stats.Records, stats.Duration(), err)
	}()

	logging.Ctx(ctx).Info().
		Str("type", string(recordType)).
		Str("file", path).
		Msg("Starting conversion")

	err = scanDataFile(ctx, path, separator, func(fields []string) error {
		doc, err := parse(fields)
		if err != nil {
			return err
		}
		return writer.Write(recordType, doc)
	})
	if flushErr := writer.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		return stats, fmt.Errorf("convert %s file: %w", recordType, err)
	}

	logging.Ctx(ctx).Info().
		Str("type", string(recordType)).
		Int64("records", writer.Pairs()).
		Dur("duration", time.Since(stats.StartTime)).
		Msg("Conversion completed")

	return stats, nil
}
