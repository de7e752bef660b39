// Movieseed - MovieLens Bulk Seed Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieseed

package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tomtom215/movieseed/internal/logging"
)

// GenreTable maps a genre's bit-vector position to its name.
// It is read-only once loaded.
type GenreTable map[int]string

// Lookup returns the genre name at position.
func (g GenreTable) Lookup(position int) (string, error) {
	name, ok := g[position]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownGenre, position)
	}
	return name, nil
}

// DetectGenres returns the names of every position whose flag is positive,
// in position order.
func (g GenreTable) DetectGenres(flags []int) ([]string, error) {
	names := make([]string, 0, len(flags))
	for position, flag := range flags {
		if flag <= 0 {
			continue
		}
		name, err := g.Lookup(position)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// LoadGenres reads a "name|index" genre file. Lines missing either field
// are skipped; a non-numeric index is an error.
func LoadGenres(path string) (GenreTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open genre file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logging.WithComponent("dataset").Warn().Err(closeErr).Str("file", path).Msg("Error closing genre file")
		}
	}()

	genres := make(GenreTable)
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		name, index, ok := splitGenreLine(scanner.Text())
		if !ok {
			continue
		}

		position, err := strconv.Atoi(index)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: genre index: %w", path, lineNo, err)
		}
		genres[position] = name
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read genre file: %w", err)
	}

	logging.WithComponent("dataset").Debug().Str("file", path).Int("genres", len(genres)).Msg("Genres loaded")
	return genres, nil
}

// splitGenreLine returns the name and index fields, or ok=false when
// either is missing.
func splitGenreLine(line string) (name, index string, ok bool) {
	fields := strings.Split(trimLine(line), "|")
	if len(fields) < 2 || fields[0] == "" || fields[1] == "" {
		return "", "", false
	}
	return fields[0], fields[1], true
}
