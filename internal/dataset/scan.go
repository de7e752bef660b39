// Movieseed - MovieLens Bulk Seed Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieseed

package dataset

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/tomtom215/movieseed/internal/logging"
)

const (
	pipeSeparator = "|"
	tabSeparator  = "\t"

	maxLineSize = 1 << 20
)

// lineHandler receives the columns of one data line.
type lineHandler func(fields []string) error

// scanDataFile decodes path as ISO-8859-1 and calls handle with the
// columns of each line. The first error stops the scan and is returned
// with the file name and line number attached.
func scanDataFile(ctx context.Context, path, separator string, handle lineHandler) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open data file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logging.Ctx(ctx).Warn().Err(closeErr).Str("file", path).Msg("Error closing data file")
		}
	}()

	scanner := bufio.NewScanner(charmap.ISO8859_1.NewDecoder().Reader(file))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	name := filepath.Base(path)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++

		fields := strings.Split(trimLine(scanner.Text()), separator)
		if err := handle(fields); err != nil {
			return fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return nil
}

// trimLine strips a trailing carriage return left by CRLF files.
func trimLine(line string) string {
	return strings.TrimSuffix(line, "\r")
}
