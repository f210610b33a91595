// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package bulkwrite is the public API for executing batches of mixed write
// operations against a WriteExecutor.
//
// Writes are described by models (InsertOneModel, UpdateOneModel, and so
// on), accumulated into a Batch, and executed in one call. Ordered batches
// stop at the first rejected write; unordered batches attempt every write
// and report all rejections together. Either way the per-write failures are
// collected into a BulkWriteException alongside a result accounting for the
// writes that were applied.
package bulkwrite // import "github.com/ewall-cauc/mongo-cxx-driver/bulkwrite"

import (
	"context"

	"github.com/ewall-cauc/mongo-cxx-driver/bulkwrite/options"
	"github.com/ewall-cauc/mongo-cxx-driver/x/driver"
)

// BulkWrite appends the given models to a fresh batch and executes it
// against the given executor. It is shorthand for building the batch by
// hand; see Batch for the semantics.
func BulkWrite(ctx context.Context, exec driver.WriteExecutor, models []WriteModel, opts ...*options.BulkWriteOptions) (*BulkWriteResult, error) {
	batch := NewBatch(opts...)
	for _, model := range models {
		if err := batch.Append(model); err != nil {
			return nil, err
		}
	}
	return batch.ExecuteWith(ctx, exec)
}
