// Movieseed - MovieLens Bulk Seed Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieseed

package dataset

import (
	"bufio"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// RecordType is the "_type" of a bulk action.
type RecordType string

const (
	RecordTypeMovie  RecordType = "movie"
	RecordTypeUser   RecordType = "user"
	RecordTypeRating RecordType = "rating"
)

type bulkAction struct {
	Index bulkIndex `json:"index"`
}

type bulkIndex struct {
	Index string     `json:"_index,omitempty"`
	Type  RecordType `json:"_type"`
}

// BulkWriter writes bulk-index line pairs: an action line followed by the
// document line. Output is buffered; call Flush when done.
type BulkWriter struct {
	buf   *bufio.Writer
	enc   *json.Encoder
	index string
	pairs int64
}

// NewBulkWriter writes to w. A non-empty index is emitted as "_index" on
// every action line.
func NewBulkWriter(w io.Writer, index string) *BulkWriter {
	buf := bufio.NewWriter(w)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	return &BulkWriter{buf: buf, enc: enc, index: index}
}

// Write emits the action line for recordType and then doc.
func (b *BulkWriter) Write(recordType RecordType, doc any) error {
	action := bulkAction{Index: bulkIndex{Index: b.index, Type: recordType}}
	if err := b.enc.Encode(action); err != nil {
		return fmt.Errorf("write %s action: %w", recordType, err)
	}
	if err := b.enc.Encode(doc); err != nil {
		return fmt.Errorf("write %s document: %w", recordType, err)
	}
	b.pairs++
	return nil
}

// Pairs returns the number of line pairs written.
func (b *BulkWriter) Pairs() int64 {
	return b.pairs
}

// Flush writes any buffered lines to the underlying writer.
func (b *BulkWriter) Flush() error {
	if err := b.buf.Flush(); err != nil {
		return fmt.Errorf("flush bulk output: %w", err)
	}
	return nil
}
