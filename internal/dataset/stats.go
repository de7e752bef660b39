// Movieseed - MovieLens Bulk Seed Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieseed

package dataset

import (
	"time"
)

// ConvertStats describes one full-file conversion.
type ConvertStats struct {
	// RecordType is the bulk "_type" written.
	RecordType RecordType

	// File is the input file path.
	File string

	// Records is the number of line pairs written.
	Records int64

	// StartTime is when the scan started.
	StartTime time.Time

	// EndTime is when the scan finished (zero while running).
	EndTime time.Time
}

// Duration returns the duration of the conversion.
func (s *ConvertStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// RecordsPerSecond returns the conversion rate.
func (s *ConvertStats) RecordsPerSecond() float64 {
	duration := s.Duration().Seconds()
	if duration == 0 {
		return 0
	}
	return float64(s.Records) / duration
}
