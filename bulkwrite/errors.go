// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bulkwrite

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ewall-cauc/mongo-cxx-driver/document"
	"github.com/ewall-cauc/mongo-cxx-driver/x/driver"
)

var (
	// ErrBatchFrozen is returned by Append once execution of the batch has
	// begun.
	ErrBatchFrozen = errors.New("cannot append to a batch whose execution has begun")

	// ErrBatchExecuted is returned when a batch is executed a second time.
	ErrBatchExecuted = errors.New("batch has already been executed")

	// ErrNoExecutor is returned when a batch without an executor is
	// executed. Construct the batch through a Collection or use
	// ExecuteWith.
	ErrNoExecutor = errors.New("batch has no executor")

	// ErrEmptyBatch is returned when a batch with no write models is
	// executed.
	ErrEmptyBatch = driver.ErrEmptyBatch
)

// WriteError is a non-write concern failure that occurred as a result of a
// single write operation. Index is the operation's position in the batch as
// appended.
type WriteError struct {
	Index   int
	Code    int
	Message string
}

func (we WriteError) Error() string { return we.Message }

// WriteConcernError is a write concern failure reported alongside otherwise
// applied writes.
type WriteConcernError struct {
	Code    int
	Message string
	Details document.D
}

func (wce WriteConcernError) Error() string { return wce.Message }

// BulkWriteError is an error that occurred during the execution of one write
// in a bulk write operation. This error type is only returned as part of a
// BulkWriteException.
type BulkWriteError struct {
	WriteError            // The WriteError that occurred.
	Request    WriteModel // The WriteModel that caused this error.
}

func (bwe BulkWriteError) Error() string { return bwe.WriteError.Error() }

// BulkWriteException is the error type returned when some writes in a batch
// were rejected. The result returned alongside it accounts for the writes
// that were applied.
type BulkWriteException struct {
	// The write errors that occurred during the execution of the batch.
	WriteErrors []BulkWriteError

	// The write concern error that occurred, or nil.
	WriteConcernError *WriteConcernError

	// The categories to which the exception belongs.
	Labels []string
}

func (bwe BulkWriteException) Error() string {
	var buf bytes.Buffer
	fmt.Fprint(&buf, "bulk write exception: write errors: [")
	for idx, err := range bwe.WriteErrors {
		if idx != 0 {
			fmt.Fprint(&buf, ", ")
		}
		fmt.Fprintf(&buf, "{%s}", err)
	}
	fmt.Fprint(&buf, "]")
	if bwe.WriteConcernError != nil {
		fmt.Fprintf(&buf, ", write concern error: {%s}", bwe.WriteConcernError)
	}
	return buf.String()
}

// HasErrorCode returns true if any of the write errors have the specified
// code.
func (bwe BulkWriteException) HasErrorCode(code int) bool {
	for _, we := range bwe.WriteErrors {
		if we.Code == code {
			return true
		}
	}
	return false
}

// HasErrorLabel returns true if the exception contains the specified label.
func (bwe BulkWriteException) HasErrorLabel(label string) bool {
	for _, l := range bwe.Labels {
		if l == label {
			return true
		}
	}
	return false
}

func convertWriteConcernError(wce *driver.WriteConcernError) *WriteConcernError {
	if wce == nil {
		return nil
	}
	return &WriteConcernError{Code: wce.Code, Message: wce.Message, Details: wce.Details}
}

// newBulkWriteException pairs each collected write error with the model that
// produced it. requests is the batch's models in append order.
func newBulkWriteException(res driver.Result, requests []WriteModel) BulkWriteException {
	exception := BulkWriteException{
		WriteErrors:       make([]BulkWriteError, 0, len(res.WriteErrors)),
		WriteConcernError: convertWriteConcernError(res.WriteConcernError),
	}
	for _, we := range res.WriteErrors {
		bwe := BulkWriteError{
			WriteError: WriteError{Index: we.Index, Code: we.Code, Message: we.Message},
		}
		if we.Index < len(requests) {
			bwe.Request = requests[we.Index]
		}
		exception.WriteErrors = append(exception.WriteErrors, bwe)
	}
	return exception
}
