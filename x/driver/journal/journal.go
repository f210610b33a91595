// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package journal records performed write operations and their outcomes as
// a stream of length-prefixed, optionally compressed frames. Each frame
// holds one JSON-encoded Entry. The journal is append-only and readable
// back in order, which makes it usable both as a debugging trace and as a
// recording decorator around an executor in tests.
package journal // import "github.com/ewall-cauc/mongo-cxx-driver/x/driver/journal"

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/ewall-cauc/mongo-cxx-driver/document"
	"github.com/ewall-cauc/mongo-cxx-driver/x/driver"
)

// Op is the journaled form of a write operation. Kind holds the camelCase
// kind name so journals remain readable without this package.
type Op struct {
	Kind         string       `json:"kind"`
	Document     document.D   `json:"document,omitempty"`
	Filter       document.D   `json:"filter,omitempty"`
	Update       document.D   `json:"update,omitempty"`
	Collation    document.D   `json:"collation,omitempty"`
	ArrayFilters []document.D `json:"arrayFilters,omitempty"`
	Upsert       *bool        `json:"upsert,omitempty"`
}

func newOp(op driver.Operation) Op {
	return Op{
		Kind:         op.Kind.String(),
		Document:     op.Document,
		Filter:       op.Filter,
		Update:       op.Update,
		Collation:    op.Collation,
		ArrayFilters: op.ArrayFilters,
		Upsert:       op.Upsert,
	}
}

// Operation converts the journaled form back into a driver operation.
func (o Op) Operation() (driver.Operation, error) {
	kind, ok := parseKind(o.Kind)
	if !ok {
		return driver.Operation{}, fmt.Errorf("journal: unknown operation kind %q", o.Kind)
	}
	return driver.Operation{
		Kind:         kind,
		Document:     o.Document,
		Filter:       o.Filter,
		Update:       o.Update,
		Collation:    o.Collation,
		ArrayFilters: o.ArrayFilters,
		Upsert:       o.Upsert,
	}, nil
}

func parseKind(s string) (driver.Kind, bool) {
	kinds := []driver.Kind{
		driver.InsertOne, driver.UpdateOne, driver.UpdateMany,
		driver.DeleteOne, driver.DeleteMany, driver.ReplaceOne,
	}
	for _, k := range kinds {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Outcome is the journaled report of an applied operation. Numeric
// identifiers read back as float64, the encoding/json default.
type Outcome struct {
	N          int64       `json:"n"`
	NModified  int64       `json:"nModified,omitempty"`
	UpsertedID interface{} `json:"upsertedId,omitempty"`
}

// WriteError is the journaled form of a write rejection.
type WriteError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Entry is one journal record: the operation plus exactly one of Outcome,
// WriteError, Fault, or the Unacknowledged marker.
type Entry struct {
	Op             Op          `json:"op"`
	Outcome        *Outcome    `json:"outcome,omitempty"`
	WriteError     *WriteError `json:"writeError,omitempty"`
	Fault          string      `json:"fault,omitempty"`
	Unacknowledged bool        `json:"unacknowledged,omitempty"`
}

// A Writer appends entries to a journal stream. It is safe for concurrent
// use; concurrent entries are framed whole, in some serial order.
type Writer struct {
	mu   sync.Mutex
	w    io.Writer
	opts driver.CompressionOpts
}

// NewWriter returns a Writer emitting frames compressed with the given
// compressor. CompressorNoOp writes the payload uncompressed.
func NewWriter(w io.Writer, compressor driver.CompressorID) *Writer {
	return &Writer{
		w: w,
		opts: driver.CompressionOpts{
			Compressor: compressor,
			ZlibLevel:  driver.DefaultZlibLevel,
			ZstdLevel:  driver.DefaultZstdLevel,
		},
	}
}

// WriteEntry appends one entry to the journal.
func (w *Writer) WriteEntry(e Entry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	return writeFrame(w.w, payload, w.opts)
}

// A Reader decodes entries from a journal stream.
type Reader struct {
	r io.Reader
}

// NewReader returns a Reader decoding the stream written by a Writer.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadEntry returns the next entry. io.EOF signals the clean end of the
// journal; a journal cut off mid-frame reads as io.ErrUnexpectedEOF.
func (r *Reader) ReadEntry() (Entry, error) {
	payload, err := readFrame(r.r)
	if err != nil {
		return Entry{}, err
	}

	var e Entry
	if err := json.Unmarshal(payload, &e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// ReadAll returns every remaining entry up to the end of the journal.
func (r *Reader) ReadAll() ([]Entry, error) {
	var entries []Entry
	for {
		e, err := r.ReadEntry()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return entries, err
		}
		entries = append(entries, e)
	}
}
