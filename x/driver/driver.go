// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package driver // import "github.com/ewall-cauc/mongo-cxx-driver/x/driver"

import (
	"context"

	"github.com/ewall-cauc/mongo-cxx-driver/bulkwrite/writeconcern"
)

// WriteExecutor is implemented by types that can apply a single write
// operation to a document store. Perform applies the operation and reports
// its Outcome, rejects it with a WriteError, or fails with a fatal error
// such as a transport fault. Each call is atomic: the operation is either
// fully applied or not applied at all.
type WriteExecutor interface {
	Perform(ctx context.Context, op Operation, opts PerformOptions) (Outcome, error)
}

// BatchWriteExecutor is an optional fast path for executors that can apply a
// group of same-kind operations in one call. The semantics must match
// issuing Perform once per operation in order. Indices reported in the
// BatchResult are relative to the ops slice.
type BatchWriteExecutor interface {
	WriteExecutor
	PerformBatch(ctx context.Context, ops []Operation, opts PerformOptions) (BatchResult, error)
}

// PerformOptions carries the execution options an executor may honor for a
// single call.
type PerformOptions struct {
	WriteConcern             *writeconcern.WriteConcern
	BypassDocumentValidation *bool
	Ordered                  *bool

	// Comment is opaque caller metadata. Executors may attach it to their
	// own telemetry but must not let it influence the write.
	Comment interface{}
}
