// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package logger

const (
	KeyMessage        = "message"
	KeyTimestamp      = "timestamp"
	KeyOrdered        = "ordered"
	KeyOperationCount = "operationCount"
	KeyBatchCount     = "batchCount"
	KeyIndex          = "index"
	KeyKind           = "kind"
	KeyCode           = "code"
	KeyFailure        = "failure"
	KeyDurationMS     = "durationMS"
	KeyWriteErrors    = "writeErrors"
)

// BulkStartedMessage is emitted when a bulk write begins execution.
type BulkStartedMessage struct {
	Ordered        bool
	OperationCount int
	BatchCount     int
}

func (*BulkStartedMessage) Component() Component { return ComponentBatch }
func (*BulkStartedMessage) Message() string      { return "Bulk write started" }

func (msg *BulkStartedMessage) KeysAndValues() []interface{} {
	return []interface{}{
		KeyOrdered, msg.Ordered,
		KeyOperationCount, msg.OperationCount,
		KeyBatchCount, msg.BatchCount,
	}
}

// BulkFinishedMessage is emitted when a bulk write finishes execution,
// successfully or not.
type BulkFinishedMessage struct {
	DurationMS  int64
	WriteErrors int
	Failure     string
}

func (*BulkFinishedMessage) Component() Component { return ComponentBatch }

func (msg *BulkFinishedMessage) Message() string {
	if msg.Failure != "" {
		return "Bulk write failed"
	}
	return "Bulk write finished"
}

func (msg *BulkFinishedMessage) KeysAndValues() []interface{} {
	kv := []interface{}{
		KeyDurationMS, msg.DurationMS,
		KeyWriteErrors, msg.WriteErrors,
	}
	if msg.Failure != "" {
		kv = append(kv, KeyFailure, msg.Failure)
	}
	return kv
}

// OperationStartedMessage is emitted at debug level before an operation is
// handed to the write executor.
type OperationStartedMessage struct {
	Index int64
	Kind  string
}

func (*OperationStartedMessage) Component() Component { return ComponentOperation }
func (*OperationStartedMessage) Message() string      { return "Operation started" }

func (msg *OperationStartedMessage) KeysAndValues() []interface{} {
	return []interface{}{
		KeyIndex, msg.Index,
		KeyKind, msg.Kind,
	}
}

// OperationFailedMessage is emitted at debug level when the executor reports
// a write error for an operation.
type OperationFailedMessage struct {
	Index   int64
	Kind    string
	Code    int64
	Failure string
}

func (*OperationFailedMessage) Component() Component { return ComponentOperation }
func (*OperationFailedMessage) Message() string      { return "Operation failed" }

func (msg *OperationFailedMessage) KeysAndValues() []interface{} {
	return []interface{}{
		KeyIndex, msg.Index,
		KeyKind, msg.Kind,
		KeyCode, msg.Code,
		KeyFailure, msg.Failure,
	}
}
