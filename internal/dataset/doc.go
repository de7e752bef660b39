// Movieseed - MovieLens Bulk Seed Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieseed

// Package dataset converts the MovieLens 100k flat files into bulk-index
// line pairs.
//
// # Input Files
//
//   - u.genre: "name|index" pairs, default (UTF-8) decoding
//   - u.item: pipe-delimited movies ending in a 0/1 genre flag per genre
//   - u.user: pipe-delimited users (id, age, gender, occupation, zip code)
//   - u.data: tab-delimited ratings (user id, movie id, rating, unix seconds)
//
// Movie, user and rating files are ISO-8859-1 and are re-encoded as UTF-8.
//
// # Output
//
// Every record becomes two lines: an action line and the document.
//
//	{"index":{"_type":"movie"}}
//	{"id":"1","title":"Toy Story (1995)","release_date":"01-Jan-1995",...}
//
// # Errors
//
// Conversion is all-or-nothing per file. A malformed integer, a short line
// or a genre flag without a genre name aborts the scan; the error names the
// file and line. Movies missing from the aggregation hash are not an error
// and get a zero count and mean.
//
// # Example Usage
//
//	loader, err := dataset.NewLoader(&cfg.Dataset, provider)
//	if err != nil {
//	    return err
//	}
//	stats, err := loader.CreateMovieSeedFile(ctx, "u.item", os.Stdout)
package dataset
