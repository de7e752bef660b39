// Movieseed - MovieLens Bulk Seed Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieseed

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Conversion Metrics
	RecordsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movieseed_records_written_total",
			Help: "Total number of bulk line pairs written",
		},
		[]string{"type"},
	)

	ConversionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movieseed_conversion_errors_total",
			Help: "Total number of conversions aborted by an error",
		},
		[]string{"type"},
	)

	ConversionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movieseed_conversion_duration_seconds",
			Help:    "Duration of a full-file conversion in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"type"},
	)

	// Aggregation Metrics
	AggregationFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movieseed_aggregation_fetch_duration_seconds",
			Help:    "Duration of ratings aggregation fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	AggregationMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movieseed_aggregation_movies",
			Help: "Number of movies in the last fetched aggregation hash",
		},
	)

	AggregationCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movieseed_aggregation_cache_total",
			Help: "Total number of aggregation cache lookups",
		},
		[]string{"result"}, // "hit", "miss"
	)
)

// RecordConversion records the outcome of one full-file conversion.
func RecordConversion(recordType string, records int64, duration time.Duration, err error) {
	RecordsWritten.WithLabelValues(recordType).Add(float64(records))
	ConversionDuration.WithLabelValues(recordType).Observe(duration.Seconds())
	if err != nil {
		ConversionErrors.WithLabelValues(recordType).Inc()
	}
}

// RecordAggregationFetch records a FetchHash call.
func RecordAggregationFetch(provider string, movies int, duration time.Duration, err error) {
	AggregationFetchDuration.WithLabelValues(provider).Observe(duration.Seconds())
	if err == nil {
		AggregationMovies.Set(float64(movies))
	}
}

// RecordAggregationCache records a cache lookup.
func RecordAggregationCache(hit bool) {
	if hit {
		AggregationCache.WithLabelValues("hit").Inc()
		return
	}
	AggregationCache.WithLabelValues("miss").Inc()
}

// WriteTextfile writes the default registry to path in Prometheus text
// format. The file is written atomically.
func WriteTextfile(path string) error {
	return WriteTextfileFrom(path, prometheus.DefaultGatherer)
}

// WriteTextfileFrom writes the metrics gathered from g to path.
func WriteTextfileFrom(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
