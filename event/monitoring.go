// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package event // import "github.com/ewall-cauc/mongo-cxx-driver/event"

import (
	"context"

	"github.com/ewall-cauc/mongo-cxx-driver/document"
)

// BulkStartedEvent represents an event generated when a bulk write begins executing.
type BulkStartedEvent struct {
	ExecutionID    int64
	Ordered        bool
	OperationCount int
	BatchCount     int

	// Comment is the caller-supplied comment attached to the bulk write,
	// or nil.
	Comment interface{}
}

// BulkFinishedEvent represents a generic bulk write finishing.
type BulkFinishedEvent struct {
	DurationNanos int64
	ExecutionID   int64
}

// BulkSucceededEvent represents an event generated when a bulk write completes
// without a fatal error. Individual operations may still have failed; the
// counts reflect only the writes that were applied.
type BulkSucceededEvent struct {
	BulkFinishedEvent
	InsertedCount int64
	MatchedCount  int64
	ModifiedCount int64
	DeletedCount  int64
	UpsertedCount int64
}

// BulkFailedEvent represents an event generated when a bulk write halts with a
// fatal error.
type BulkFailedEvent struct {
	BulkFinishedEvent
	Failure string
}

// OperationStartedEvent represents an event generated when a single write is
// handed to the executor. Index is the operation's position in the original
// batch.
type OperationStartedEvent struct {
	ExecutionID int64
	Index       int
	Kind        string
	Document    document.D
}

// OperationFinishedEvent represents a generic single write finishing.
type OperationFinishedEvent struct {
	DurationNanos int64
	ExecutionID   int64
	Index         int
	Kind          string
}

// OperationSucceededEvent represents an event generated when a single write is
// acknowledged by the executor.
type OperationSucceededEvent struct {
	OperationFinishedEvent
}

// OperationFailedEvent represents an event generated when a single write is
// rejected or lost.
type OperationFailedEvent struct {
	OperationFinishedEvent
	Code    int32
	Reason  string
	Failure string
}

// WriteMonitor represents a monitor that is triggered for bulk write events.
type WriteMonitor struct {
	BulkStarted        func(context.Context, *BulkStartedEvent)
	BulkSucceeded      func(context.Context, *BulkSucceededEvent)
	BulkFailed         func(context.Context, *BulkFailedEvent)
	OperationStarted   func(context.Context, *OperationStartedEvent)
	OperationSucceeded func(context.Context, *OperationSucceededEvent)
	OperationFailed    func(context.Context, *OperationFailedEvent)
}

// strings for operation failure reasons
const (
	ReasonWriteError    = "writeError"
	ReasonNetworkError  = "networkError"
	ReasonCancelled     = "cancelled"
	ReasonExecutorError = "executorError"
)
