// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bulkwrite

import (
	"github.com/ewall-cauc/mongo-cxx-driver/x/driver"
)

// InsertOneResult is the verbose result of one insert in a bulk write
// operation.
type InsertOneResult struct {
	// The _id of the inserted document.
	InsertedID interface{}
}

// UpdateResult is the verbose result of one update or replace in a bulk
// write operation.
type UpdateResult struct {
	// The number of documents that matched the filter.
	MatchedCount int64
	// The number of documents that were modified.
	ModifiedCount int64
	// The _id of the upserted document, or nil if no upsert was performed.
	UpsertedID interface{}
}

// DeleteResult is the verbose result of one delete in a bulk write
// operation.
type DeleteResult struct {
	// The number of documents that were deleted.
	DeletedCount int64
}

// BulkWriteResult is the result of a bulk write operation. Keys in
// UpsertedIDs, InsertedIDs, and the verbose result maps are the index of the
// write model that produced the value, in append order.
type BulkWriteResult struct {
	// The number of documents inserted.
	InsertedCount int64

	// The number of documents matched by filters in update and replace
	// operations.
	MatchedCount int64

	// The number of documents modified by update and replace operations.
	ModifiedCount int64

	// The number of documents deleted.
	DeletedCount int64

	// The number of documents upserted by update and replace operations.
	UpsertedCount int64

	// A map of operation index to the _id of each upserted document.
	UpsertedIDs map[int64]interface{}

	// A map of operation index to the _id of each inserted document.
	InsertedIDs map[int64]interface{}

	// InsertResults, UpdateResults, and DeleteResults break the counts
	// down per operation. They are populated only when the
	// VerboseResults option is set.
	InsertResults map[int64]InsertOneResult
	UpdateResults map[int64]UpdateResult
	DeleteResults map[int64]DeleteResult

	// The write concern error that occurred, or nil. A write concern
	// error never halts execution; the writes it accompanies were
	// applied.
	WriteConcernError *WriteConcernError

	// Acknowledged is false when the writes ran under an unacknowledged
	// write concern. Counts and IDs are then not meaningful.
	Acknowledged bool

	// Partial is true when a fatal error halted execution. Counts reflect
	// only the writes applied before the halt.
	Partial bool
}

func newBulkWriteResult(res driver.Result) *BulkWriteResult {
	result := &BulkWriteResult{
		InsertedCount:     res.InsertedCount,
		MatchedCount:      res.MatchedCount,
		ModifiedCount:     res.ModifiedCount,
		DeletedCount:      res.DeletedCount,
		UpsertedCount:     res.UpsertedCount,
		UpsertedIDs:       res.UpsertedIDs,
		InsertedIDs:       res.InsertedIDs,
		WriteConcernError: convertWriteConcernError(res.WriteConcernError),
		Acknowledged:      res.Acknowledged,
		Partial:           res.Partial,
	}

	if res.InsertResults != nil {
		result.InsertResults = make(map[int64]InsertOneResult, len(res.InsertResults))
		for i, ir := range res.InsertResults {
			result.InsertResults[i] = InsertOneResult{InsertedID: ir.InsertedID}
		}
	}
	if res.UpdateResults != nil {
		result.UpdateResults = make(map[int64]UpdateResult, len(res.UpdateResults))
		for i, ur := range res.UpdateResults {
			result.UpdateResults[i] = UpdateResult{
				MatchedCount:  ur.MatchedCount,
				ModifiedCount: ur.ModifiedCount,
				UpsertedID:    ur.UpsertedID,
			}
		}
	}
	if res.DeleteResults != nil {
		result.DeleteResults = make(map[int64]DeleteResult, len(res.DeleteResults))
		for i, dr := range res.DeleteResults {
			result.DeleteResults[i] = DeleteResult{DeletedCount: dr.DeletedCount}
		}
	}

	return result
}
