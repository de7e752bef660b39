// Movieseed - MovieLens Bulk Seed Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieseed

/*
Package metrics provides Prometheus instrumentation for seed runs.

A seed run is a short-lived batch job, so nothing is served over HTTP.
Instead WriteTextfile writes the default registry in text exposition
format for node_exporter's textfile collector:

	MOVIESEED_METRICS_TEXTFILE=/var/lib/node_exporter/textfile/movieseed.prom

# Available Metrics

Conversion Metrics:
  - movieseed_records_written_total: Bulk line pairs written (counter)
    Labels: type (movie, user, rating)
  - movieseed_conversion_errors_total: Aborted conversions (counter)
    Labels: type
  - movieseed_conversion_duration_seconds: Full-file scan time (histogram)
    Labels: type

Aggregation Metrics:
  - movieseed_aggregation_fetch_duration_seconds: FetchHash latency (histogram)
    Labels: provider
  - movieseed_aggregation_movies: Movies in the last fetched hash (gauge)
  - movieseed_aggregation_cache_total: Cache lookups (counter)
    Labels: result (hit, miss)
*/
package metrics
