// Movieseed - MovieLens Bulk Seed Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieseed

package dataset

import "errors"

var (
	// ErrMalformedLine is returned for a line with fewer columns than its schema.
	ErrMalformedLine = errors.New("malformed line")

	// ErrUnknownGenre is returned when a genre flag is set for a position
	// missing from the genre table.
	ErrUnknownGenre = errors.New("unknown genre index")
)
