// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package driver

import (
	"sort"
	"sync"
)

// Outcome is an executor's report for one applied operation. N counts the
// documents inserted, matched, or deleted depending on the operation's kind.
// When an update or replace upserts, UpsertedID carries the new document's
// identifier and N and NModified count zero matched documents.
type Outcome struct {
	N                 int64
	NModified         int64
	UpsertedID        interface{}
	WriteConcernError *WriteConcernError
}

// Upsert represents a document that an update or replace inserted because
// its filter matched nothing. Index is relative to the executed batch.
type Upsert struct {
	Index int64
	ID    interface{}
}

// BatchResult is an executor's report for one same-kind batch. N and
// NModified total across the batch's applied operations; indices in Upserted
// and WriteErrors are relative to the batch's operation slice.
type BatchResult struct {
	N                 int64
	NModified         int64
	Upserted          []Upsert
	WriteErrors       []WriteError
	WriteConcernError *WriteConcernError
}

// InsertResult is the verbose per-operation result of a successful insert.
type InsertResult struct {
	InsertedID interface{}
}

// UpdateResult is the verbose per-operation result of a successful update
// or replace.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
	UpsertedID    interface{}
}

// DeleteResult is the verbose per-operation result of a successful delete.
type DeleteResult struct {
	DeletedCount int64
}

// Result is the aggregate of executing a batch of mixed operations. Indices
// in UpsertedIDs, InsertedIDs, and WriteErrors refer to an operation's
// position in the batch as appended, regardless of execution order.
type Result struct {
	InsertedCount     int64
	MatchedCount      int64
	ModifiedCount     int64
	DeletedCount      int64
	UpsertedCount     int64
	UpsertedIDs       map[int64]interface{}
	InsertedIDs       map[int64]interface{}
	WriteErrors       WriteErrors
	WriteConcernError *WriteConcernError

	// InsertResults, UpdateResults, and DeleteResults break the counts
	// down per operation, keyed by append position. They are populated
	// only when the bulk write requests verbose results.
	InsertResults map[int64]InsertResult
	UpdateResults map[int64]UpdateResult
	DeleteResults map[int64]DeleteResult

	// Acknowledged is false when the writes ran under an unacknowledged
	// write concern. Counts and IDs are then not meaningful.
	Acknowledged bool

	// Partial is true when a fatal error halted execution. Counts reflect
	// only the writes applied before the halt.
	Partial bool
}

// aggregator folds executor outcomes into a Result, renumbering
// batch-relative indices back to original append positions. It is safe for
// concurrent use by the unordered dispatch path.
type aggregator struct {
	mu      sync.Mutex
	ordered bool
	verbose bool
	newIDs  map[int]interface{}
	res     Result
}

func newAggregator(ordered, acknowledged, verbose bool, newIDs map[int]interface{}) *aggregator {
	return &aggregator{
		ordered: ordered,
		verbose: verbose,
		newIDs:  newIDs,
		res: Result{
			UpsertedIDs:  make(map[int64]interface{}),
			InsertedIDs:  make(map[int64]interface{}),
			Acknowledged: acknowledged,
		},
	}
}

// addOutcome merges a single operation's outcome. index is the operation's
// original append position.
func (a *aggregator) addOutcome(kind Kind, index int, out Outcome) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if out.WriteConcernError != nil {
		a.res.WriteConcernError = out.WriteConcernError
	}

	switch kind.command() {
	case insertCommand:
		a.res.InsertedCount += out.N
		a.res.InsertedIDs[int64(index)] = a.newIDs[index]
		if a.verbose {
			if a.res.InsertResults == nil {
				a.res.InsertResults = make(map[int64]InsertResult)
			}
			a.res.InsertResults[int64(index)] = InsertResult{InsertedID: a.newIDs[index]}
		}
	case updateCommand:
		a.res.MatchedCount += out.N
		a.res.ModifiedCount += out.NModified
		if out.UpsertedID != nil {
			a.res.UpsertedCount++
			a.res.UpsertedIDs[int64(index)] = out.UpsertedID
		}
		if a.verbose {
			if a.res.UpdateResults == nil {
				a.res.UpdateResults = make(map[int64]UpdateResult)
			}
			a.res.UpdateResults[int64(index)] = UpdateResult{
				MatchedCount:  out.N,
				ModifiedCount: out.NModified,
				UpsertedID:    out.UpsertedID,
			}
		}
	case deleteCommand:
		a.res.DeletedCount += out.N
		if a.verbose {
			if a.res.DeleteResults == nil {
				a.res.DeleteResults = make(map[int64]DeleteResult)
			}
			a.res.DeleteResults[int64(index)] = DeleteResult{DeletedCount: out.N}
		}
	}
}

// addWriteError records a write rejection for the operation at the given
// original append position.
func (a *aggregator) addWriteError(index int, we WriteError) {
	a.mu.Lock()
	defer a.mu.Unlock()

	we.Index = index
	a.res.WriteErrors = append(a.res.WriteErrors, we)
}

// addBatchResult merges a batch executor's report for b, renumbering its
// batch-relative indices through b's index map.
func (a *aggregator) addBatchResult(b batch, br BatchResult) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if br.WriteConcernError != nil {
		a.res.WriteConcernError = br.WriteConcernError
	}

	failed := make(map[int]bool, len(br.WriteErrors))
	firstFailed := len(b.ops)
	for _, we := range br.WriteErrors {
		rel := we.Index
		we.Index = b.position(rel)
		a.res.WriteErrors = append(a.res.WriteErrors, we)
		failed[rel] = true
		if rel < firstFailed {
			firstFailed = rel
		}
	}

	switch b.kind {
	case insertCommand:
		a.res.InsertedCount += br.N
		for rel := range b.ops {
			// In ordered mode nothing after the first rejection was
			// applied, so it has no reportable inserted ID.
			if failed[rel] || (a.ordered && rel >= firstFailed) {
				continue
			}
			orig := b.indexes[rel]
			a.res.InsertedIDs[int64(orig)] = a.newIDs[orig]
		}
	case updateCommand:
		a.res.MatchedCount += br.N
		a.res.ModifiedCount += br.NModified
		for _, ups := range br.Upserted {
			a.res.UpsertedCount++
			a.res.UpsertedIDs[int64(b.position(int(ups.Index)))] = ups.ID
		}
	case deleteCommand:
		a.res.DeletedCount += br.N
	}
}

// setUnacknowledged marks the result as produced by unacknowledged writes.
func (a *aggregator) setUnacknowledged() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.res.Acknowledged = false
}

// result returns the folded Result with write errors sorted into original
// append order.
func (a *aggregator) result() Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	sort.Slice(a.res.WriteErrors, func(i, j int) bool {
		return a.res.WriteErrors[i].Index < a.res.WriteErrors[j].Index
	})
	return a.res
}
