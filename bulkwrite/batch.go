// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bulkwrite

import (
	"context"
	"sync"

	"github.com/ewall-cauc/mongo-cxx-driver/bulkwrite/options"
	"github.com/ewall-cauc/mongo-cxx-driver/event"
	"github.com/ewall-cauc/mongo-cxx-driver/internal/logger"
	"github.com/ewall-cauc/mongo-cxx-driver/x/driver"
)

type batchState int8

const (
	stateBuilding batchState = iota
	stateExecuting
	stateExecuted
)

// Batch accumulates write models and executes them as one bulk write. A
// batch is built up with Append, executed exactly once, and cannot be
// modified after execution has begun.
type Batch struct {
	mu    sync.Mutex
	state batchState

	requests []WriteModel
	ops      []driver.Operation
	opts     *options.BulkWriteOptions

	exec    driver.WriteExecutor
	monitor *event.WriteMonitor
	logger  *logger.Logger
}

// NewBatch creates an empty batch with no executor bound. The batch must be
// executed with ExecuteWith, or constructed through Collection.NewBatch
// instead.
func NewBatch(opts ...*options.BulkWriteOptions) *Batch {
	return &Batch{opts: options.MergeBulkWriteOptions(opts...)}
}

// Append validates the model and adds it to the batch. The model is
// converted to its operation form immediately, so validation failures are
// reported here rather than at execution time.
func (b *Batch) Append(model WriteModel) error {
	if model == nil {
		return driver.ErrNilDocument
	}

	op, err := model.toOperation()
	if err != nil {
		return err
	}
	if err := op.Validate(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != stateBuilding {
		return ErrBatchFrozen
	}
	b.requests = append(b.requests, model)
	b.ops = append(b.ops, op)
	return nil
}

// Len returns the number of models appended so far.
func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

// Execute runs the batch against its bound executor. See ExecuteWith.
func (b *Batch) Execute(ctx context.Context) (*BulkWriteResult, error) {
	return b.execute(ctx, b.exec)
}

// ExecuteWith runs the batch against the given executor. The batch is
// consumed: Append fails afterwards and executing again returns
// ErrBatchExecuted.
//
// Rejected writes are collected into a BulkWriteException returned alongside
// the result for the writes that were applied. A fatal executor failure is
// returned as is, with the partial result flagged by Partial.
func (b *Batch) ExecuteWith(ctx context.Context, exec driver.WriteExecutor) (*BulkWriteResult, error) {
	return b.execute(ctx, exec)
}

func (b *Batch) execute(ctx context.Context, exec driver.WriteExecutor) (*BulkWriteResult, error) {
	b.mu.Lock()
	if b.state != stateBuilding {
		b.mu.Unlock()
		return nil, ErrBatchExecuted
	}
	if exec == nil {
		b.mu.Unlock()
		return nil, ErrNoExecutor
	}
	b.state = stateExecuting
	ops, requests, opts := b.ops, b.requests, b.opts
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.state = stateExecuted
		b.mu.Unlock()
	}()

	verbose := opts.VerboseResults != nil && *opts.VerboseResults
	res, err := driver.BulkWrite{
		Executor:                 exec,
		Operations:               ops,
		Ordered:                  opts.Ordered,
		WriteConcern:             opts.WriteConcern,
		BypassDocumentValidation: opts.BypassDocumentValidation,
		Comment:                  opts.Comment,
		VerboseResults:           verbose,
		Monitor:                  b.monitor,
		Logger:                   b.logger,
	}.Execute(ctx)

	result := newBulkWriteResult(res)
	if err != nil {
		if res.Partial {
			return result, err
		}
		return nil, err
	}
	if len(res.WriteErrors) > 0 {
		return result, newBulkWriteException(res, requests)
	}
	return result, nil
}
