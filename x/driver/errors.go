// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package driver

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ewall-cauc/mongo-cxx-driver/document"
)

// Error labels attached to fatal executor errors.
const (
	// NetworkError is the label attached to transport faults.
	NetworkError = "NetworkError"
	// RetryableWriteError labels faults that are safe to retry.
	RetryableWriteError = "RetryableWriteError"
	// NoWritesPerformed labels faults raised before any write was applied.
	NoWritesPerformed = "NoWritesPerformed"
)

// retryableCodes are the executor error codes that indicate a retryable
// failure.
var retryableCodes = []int32{11600, 11602, 10107, 13435, 13436, 189, 91, 7, 6, 89, 9001}

var (
	// ErrEmptyBatch occurs when a batch with no operations is executed.
	ErrEmptyBatch = errors.New("batch contains no operations")

	// ErrUnacknowledgedWrite is returned by executors running with an
	// unacknowledged write concern. The write may have been applied but no
	// outcome is reportable.
	ErrUnacknowledgedWrite = errors.New("unacknowledged write")

	// ErrNilExecutor occurs when a bulk write is executed without an
	// executor.
	ErrNilExecutor = errors.New("write executor is nil")

	// ErrNilDocument occurs when a required document payload is nil.
	ErrNilDocument = errors.New("document is nil")

	// ErrNilFilter occurs when a filtered operation has no filter.
	ErrNilFilter = errors.New("filter is nil")

	// ErrEmptyUpdate occurs when an update modifier has no elements.
	ErrEmptyUpdate = errors.New("update document must contain at least one element")

	// ErrDollarKeyRequired occurs when an update modifier does not begin
	// with a $ operator key.
	ErrDollarKeyRequired = errors.New("update document must contain key beginning with '$'")

	// ErrDollarKeyForbidden occurs when an insert or replacement payload
	// begins with a $ operator key.
	ErrDollarKeyForbidden = errors.New("document cannot contain keys beginning with '$'")

	// ErrInvalidKind occurs when an operation carries an unknown kind.
	ErrInvalidKind = errors.New("invalid write operation kind")
)

// Error is a fatal execution error reported by an executor. It halts both
// ordered and unordered execution.
type Error struct {
	Code    int32
	Message string
	Labels  []string
	Name    string
	Wrapped error
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("(%v) %v", e.Name, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e Error) Unwrap() error { return e.Wrapped }

// HasErrorLabel returns true if the error contains the specified label.
func (e Error) HasErrorLabel(label string) bool {
	for _, l := range e.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// Retryable returns true if the error is retryable.
func (e Error) Retryable() bool {
	for _, label := range e.Labels {
		if label == NetworkError || label == RetryableWriteError {
			return true
		}
	}
	for _, code := range retryableCodes {
		if e.Code == code {
			return true
		}
	}
	return false
}

// IsNetworkError reports whether err carries the NetworkError label.
func IsNetworkError(err error) bool {
	var de Error
	return errors.As(err, &de) && de.HasErrorLabel(NetworkError)
}

// WriteError is a non-write concern failure that occurred as a result of a
// single write operation. Index is the operation's position in the batch as
// appended; the engine fills it in, executors leave it zero.
type WriteError struct {
	Index   int
	Code    int
	Message string
}

func (we WriteError) Error() string { return we.Message }

// WriteErrors is a group of non-write concern failures that occurred as a
// result of a bulk write, ordered by original operation index.
type WriteErrors []WriteError

func (we WriteErrors) Error() string {
	var buf bytes.Buffer
	fmt.Fprint(&buf, "write errors: [")
	for idx, err := range we {
		if idx != 0 {
			fmt.Fprintf(&buf, ", ")
		}
		fmt.Fprintf(&buf, "{%s}", err)
	}
	fmt.Fprint(&buf, "]")
	return buf.String()
}

// WriteConcernError is a write concern failure reported alongside otherwise
// applied writes. It never halts execution.
type WriteConcernError struct {
	Code    int
	Message string
	Details document.D
}

func (wce WriteConcernError) Error() string { return wce.Message }

// InvalidOperationError occurs when an operation field is set for a kind
// that does not support it.
type InvalidOperationError struct {
	Kind Kind
	Opt  string
}

func (e InvalidOperationError) Error() string {
	return fmt.Sprintf("cannot set %q for %s operations", e.Opt, e.Kind)
}

// extractWriteError pulls a WriteError out of an executor failure, whether
// it was returned as a value or a pointer.
func extractWriteError(err error) (WriteError, bool) {
	var we WriteError
	if errors.As(err, &we) {
		return we, true
	}
	var wep *WriteError
	if errors.As(err, &wep) && wep != nil {
		return *wep, true
	}
	return WriteError{}, false
}
