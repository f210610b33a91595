// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package driver

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff"
)

// RetryMode specifies the way retries are handled for retryable failures.
type RetryMode uint

// These are the modes available for retrying.
const (
	// RetryNone disables retrying.
	RetryNone RetryMode = iota
	// RetryOnce will enable retrying a failed call once.
	RetryOnce
	// RetryContext will enable retrying until the context's deadline is
	// exceeded or it is cancelled.
	RetryContext
)

// Enabled returns if this RetryMode enables retrying.
func (rm RetryMode) Enabled() bool {
	return rm == RetryOnce || rm == RetryContext
}

// BackOffFactory builds the wait schedule for one retried call.
type BackOffFactory func() backoff.BackOff

// NewRetryExecutor wraps exec so that calls failing with a retryable error
// are resubmitted according to mode. Only fatal errors whose Retryable
// method reports true are retried; write errors and unacknowledged writes
// are returned immediately. Multi operations are never retried, and a batch
// containing one is resubmitted as a whole or not at all.
//
// The returned executor implements BatchWriteExecutor only when exec does.
// Retrying a batch re-submits every operation in it, so batch executors
// combined with retrying must apply batches atomically or tolerate
// re-submission.
//
// factory overrides the default exponential wait schedule; nil uses the
// default.
func NewRetryExecutor(exec WriteExecutor, mode RetryMode, factory BackOffFactory) WriteExecutor {
	re := retryExecutor{exec: exec, mode: mode, factory: factory}
	if be, ok := exec.(BatchWriteExecutor); ok {
		return retryBatchExecutor{retryExecutor: re, batch: be}
	}
	return re
}

type retryExecutor struct {
	exec    WriteExecutor
	mode    RetryMode
	factory BackOffFactory
}

func (re retryExecutor) Perform(ctx context.Context, op Operation, opts PerformOptions) (Outcome, error) {
	if !re.mode.Enabled() || op.Kind.Multi() {
		return re.exec.Perform(ctx, op, opts)
	}

	var out Outcome
	attempt := func() error {
		var err error
		out, err = re.exec.Perform(ctx, op, opts)
		if err != nil && !retryableError(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	err := backoff.Retry(attempt, re.newBackOff(ctx))
	return out, err
}

func (re retryExecutor) newBackOff(ctx context.Context) backoff.BackOff {
	var b backoff.BackOff
	if re.factory != nil {
		b = re.factory()
	} else {
		b = backoff.NewExponentialBackOff()
	}
	if re.mode == RetryOnce {
		b = backoff.WithMaxRetries(b, 1)
	}
	return backoff.WithContext(b, ctx)
}

type retryBatchExecutor struct {
	retryExecutor
	batch BatchWriteExecutor
}

func (re retryBatchExecutor) PerformBatch(ctx context.Context, ops []Operation, opts PerformOptions) (BatchResult, error) {
	if !re.mode.Enabled() || !canRetryBatch(ops) {
		return re.batch.PerformBatch(ctx, ops, opts)
	}

	var br BatchResult
	attempt := func() error {
		var err error
		br, err = re.batch.PerformBatch(ctx, ops, opts)
		if err != nil && !retryableError(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	err := backoff.Retry(attempt, re.newBackOff(ctx))
	return br, err
}

// canRetryBatch reports whether every operation in the batch is safely
// repeatable.
func canRetryBatch(ops []Operation) bool {
	for _, op := range ops {
		if op.Kind.Multi() {
			return false
		}
	}
	return true
}

func retryableError(err error) bool {
	var de Error
	if errors.As(err, &de) {
		return de.Retryable()
	}
	return false
}
