// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package journal

import (
	"context"
	"errors"
	"fmt"

	"github.com/ewall-cauc/mongo-cxx-driver/x/driver"
)

// Recorder wraps a WriteExecutor and journals every performed operation
// with its outcome. It intentionally implements only the per-operation
// interface: hiding the wrapped executor's batch fast path means each
// journaled operation carries an outcome attributable to it alone.
type Recorder struct {
	exec driver.WriteExecutor
	w    *Writer
}

// NewRecorder returns a Recorder journaling exec's calls to w.
func NewRecorder(exec driver.WriteExecutor, w *Writer) *Recorder {
	return &Recorder{exec: exec, w: w}
}

// Perform submits the operation to the wrapped executor and journals the
// call. A journal write failure is returned as the call's error when the
// operation itself succeeded; when both fail, the operation's error wins.
func (r *Recorder) Perform(ctx context.Context, op driver.Operation, opts driver.PerformOptions) (driver.Outcome, error) {
	out, err := r.exec.Perform(ctx, op, opts)

	if werr := r.w.WriteEntry(newEntry(op, out, err)); werr != nil && err == nil {
		return out, fmt.Errorf("journal: %w", werr)
	}
	return out, err
}

func newEntry(op driver.Operation, out driver.Outcome, err error) Entry {
	e := Entry{Op: newOp(op)}

	switch {
	case err == nil:
		e.Outcome = &Outcome{N: out.N, NModified: out.NModified, UpsertedID: out.UpsertedID}
	case errors.Is(err, driver.ErrUnacknowledgedWrite):
		e.Unacknowledged = true
	default:
		if we, ok := asWriteError(err); ok {
			e.WriteError = &WriteError{Code: we.Code, Message: we.Message}
		} else {
			e.Fault = err.Error()
		}
	}
	return e
}

func asWriteError(err error) (driver.WriteError, bool) {
	var wep *driver.WriteError
	if errors.As(err, &wep) && wep != nil {
		return *wep, true
	}
	var we driver.WriteError
	if errors.As(err, &we) {
		return we, true
	}
	return driver.WriteError{}, false
}
