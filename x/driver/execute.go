// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package driver

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/ewall-cauc/mongo-cxx-driver/bulkwrite/writeconcern"
	"github.com/ewall-cauc/mongo-cxx-driver/document"
	"github.com/ewall-cauc/mongo-cxx-driver/event"
	"github.com/ewall-cauc/mongo-cxx-driver/internal/logger"
)

// defaultMaxConcurrency bounds in-flight executor calls during unordered
// execution when BulkWrite.MaxConcurrency is unset.
const defaultMaxConcurrency = 100

var globalExecutionID int64

func nextExecutionID() int64 {
	return atomic.AddInt64(&globalExecutionID, 1)
}

// BulkWrite handles the full execution cycle for a batch of mixed write
// operations against a WriteExecutor.
type BulkWrite struct {
	// Executor applies individual operations. If it also implements
	// BatchWriteExecutor, whole same-command batches are handed over in
	// one call.
	Executor WriteExecutor

	// Operations is the batch in append order.
	Operations []Operation

	// Ordered preserves operation order and stops at the first write
	// error. Defaults to true.
	Ordered *bool

	WriteConcern             *writeconcern.WriteConcern
	BypassDocumentValidation *bool

	// Comment is opaque caller metadata passed through to the executor and
	// the monitoring events.
	Comment interface{}

	// MaxConcurrency bounds in-flight executor calls in unordered mode.
	// Defaults to defaultMaxConcurrency.
	MaxConcurrency int64

	// VerboseResults breaks the result down per operation. Every
	// operation then needs an individually attributable outcome, so the
	// executor's batch fast path is not used.
	VerboseResults bool

	Monitor *event.WriteMonitor
	Logger  *logger.Logger
}

// Execute runs the batch. Write errors and write concern errors are
// collected on the Result; only fatal failures, transport faults, invalid
// operations, and context cancellation, are returned as errors. When a fatal
// failure interrupts execution the partial Result is returned alongside the
// error with Partial set.
func (bw BulkWrite) Execute(ctx context.Context) (Result, error) {
	if bw.Executor == nil {
		return Result{}, ErrNilExecutor
	}
	if len(bw.Operations) == 0 {
		return Result{}, ErrEmptyBatch
	}

	ops := make([]Operation, len(bw.Operations))
	copy(ops, bw.Operations)

	newIDs := make(map[int]interface{})
	for i, op := range ops {
		if err := op.Validate(); err != nil {
			return Result{}, fmt.Errorf("invalid operation at index %d: %w", i, err)
		}
		if op.Kind == InsertOne {
			doc, id := document.EnsureID(op.Document)
			ops[i].Document = doc
			newIDs[i] = id
		}
	}

	ordered := true
	if bw.Ordered != nil {
		ordered = *bw.Ordered
	}

	var batches []batch
	if ordered {
		batches = createOrderedBatches(ops)
	} else {
		batches = createBatches(ops)
	}

	execID := nextExecutionID()
	agg := newAggregator(ordered, bw.WriteConcern.Acknowledged(), bw.VerboseResults, newIDs)
	opts := PerformOptions{
		WriteConcern:             bw.WriteConcern,
		BypassDocumentValidation: bw.BypassDocumentValidation,
		Ordered:                  &ordered,
		Comment:                  bw.Comment,
	}

	bw.publishBulkStarted(ctx, execID, ordered, len(ops), len(batches))
	start := time.Now()

	var err error
	if ordered {
		err = bw.executeOrdered(ctx, execID, batches, opts, agg)
	} else {
		err = bw.executeUnordered(ctx, execID, batches, opts, agg)
	}

	res := agg.result()
	if err != nil {
		res.Partial = true
	}
	bw.publishBulkFinished(ctx, execID, time.Since(start), res, err)

	return res, err
}

func (bw BulkWrite) executeOrdered(ctx context.Context, execID int64, batches []batch, opts PerformOptions, agg *aggregator) error {
	for _, b := range batches {
		if err := ctx.Err(); err != nil {
			return err
		}

		halt, err := bw.runBatch(ctx, execID, b, opts, agg)
		if err != nil {
			return err
		}
		if halt {
			break
		}
	}
	return nil
}

// runBatch dispatches one batch sequentially. halt is true when a write
// error must stop an ordered execution.
func (bw BulkWrite) runBatch(ctx context.Context, execID int64, b batch, opts PerformOptions, agg *aggregator) (bool, error) {
	if be, ok := bw.Executor.(BatchWriteExecutor); ok && !bw.VerboseResults {
		br, err := be.PerformBatch(ctx, b.ops, opts)
		switch {
		case errors.Is(err, ErrUnacknowledgedWrite):
			agg.setUnacknowledged()
			return false, nil
		case err != nil:
			return false, err
		}
		agg.addBatchResult(b, br)
		return len(br.WriteErrors) > 0, nil
	}

	for i := range b.ops {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		out, err := bw.performOne(ctx, execID, b.indexes[i], b.ops[i], opts)
		switch {
		case err == nil:
			agg.addOutcome(b.ops[i].Kind, b.indexes[i], out)
		case errors.Is(err, ErrUnacknowledgedWrite):
			agg.setUnacknowledged()
		default:
			we, ok := extractWriteError(err)
			if !ok {
				return false, err
			}
			agg.addWriteError(b.indexes[i], we)
			return true, nil
		}
	}
	return false, nil
}

func (bw BulkWrite) executeUnordered(ctx context.Context, execID int64, batches []batch, opts PerformOptions, agg *aggregator) error {
	maxc := bw.MaxConcurrency
	if maxc <= 0 {
		maxc = defaultMaxConcurrency
	}
	sem := semaphore.NewWeighted(maxc)
	group, gctx := errgroup.WithContext(ctx)

	be, batchable := bw.Executor.(BatchWriteExecutor)
	if bw.VerboseResults {
		batchable = false
	}
	for _, b := range batches {
		b := b
		if batchable {
			group.Go(func() error {
				if err := sem.Acquire(gctx, 1); err != nil {
					return err
				}
				defer sem.Release(1)

				br, err := be.PerformBatch(gctx, b.ops, opts)
				switch {
				case errors.Is(err, ErrUnacknowledgedWrite):
					agg.setUnacknowledged()
					return nil
				case err != nil:
					return err
				}
				agg.addBatchResult(b, br)
				return nil
			})
			continue
		}

		for i := range b.ops {
			i := i
			group.Go(func() error {
				if err := sem.Acquire(gctx, 1); err != nil {
					return err
				}
				defer sem.Release(1)

				out, err := bw.performOne(gctx, execID, b.indexes[i], b.ops[i], opts)
				switch {
				case err == nil:
					agg.addOutcome(b.ops[i].Kind, b.indexes[i], out)
				case errors.Is(err, ErrUnacknowledgedWrite):
					agg.setUnacknowledged()
				default:
					we, ok := extractWriteError(err)
					if !ok {
						return err
					}
					agg.addWriteError(b.indexes[i], we)
				}
				return nil
			})
		}
	}

	return group.Wait()
}

// performOne submits a single operation and publishes its lifecycle events.
func (bw BulkWrite) performOne(ctx context.Context, execID int64, index int, op Operation, opts PerformOptions) (Outcome, error) {
	bw.publishOperationStarted(ctx, execID, index, op)
	start := time.Now()

	out, err := bw.Executor.Perform(ctx, op, opts)

	duration := time.Since(start)
	if err != nil && !errors.Is(err, ErrUnacknowledgedWrite) {
		bw.publishOperationFailed(ctx, execID, index, op, duration, err)
	} else {
		bw.publishOperationSucceeded(ctx, execID, index, op, duration)
	}
	return out, err
}

func (bw BulkWrite) publishBulkStarted(ctx context.Context, execID int64, ordered bool, opCount, batchCount int) {
	if bw.Monitor != nil && bw.Monitor.BulkStarted != nil {
		bw.Monitor.BulkStarted(ctx, &event.BulkStartedEvent{
			ExecutionID:    execID,
			Ordered:        ordered,
			OperationCount: opCount,
			BatchCount:     batchCount,
			Comment:        bw.Comment,
		})
	}
	if bw.Logger.Is(logger.DebugLevel, logger.ComponentBatch) {
		bw.Logger.Print(logger.DebugLevel, &logger.BulkStartedMessage{
			Ordered:        ordered,
			OperationCount: opCount,
			BatchCount:     batchCount,
		})
	}
}

func (bw BulkWrite) publishBulkFinished(ctx context.Context, execID int64, duration time.Duration, res Result, err error) {
	if bw.Monitor != nil {
		finished := event.BulkFinishedEvent{
			DurationNanos: duration.Nanoseconds(),
			ExecutionID:   execID,
		}
		if err != nil {
			if bw.Monitor.BulkFailed != nil {
				bw.Monitor.BulkFailed(ctx, &event.BulkFailedEvent{
					BulkFinishedEvent: finished,
					Failure:           err.Error(),
				})
			}
		} else if bw.Monitor.BulkSucceeded != nil {
			bw.Monitor.BulkSucceeded(ctx, &event.BulkSucceededEvent{
				BulkFinishedEvent: finished,
				InsertedCount:     res.InsertedCount,
				MatchedCount:      res.MatchedCount,
				ModifiedCount:     res.ModifiedCount,
				DeletedCount:      res.DeletedCount,
				UpsertedCount:     res.UpsertedCount,
			})
		}
	}
	if bw.Logger.Is(logger.DebugLevel, logger.ComponentBatch) {
		msg := &logger.BulkFinishedMessage{
			DurationMS:  duration.Milliseconds(),
			WriteErrors: len(res.WriteErrors),
		}
		if err != nil {
			msg.Failure = err.Error()
		}
		bw.Logger.Print(logger.DebugLevel, msg)
	}
}

func (bw BulkWrite) publishOperationStarted(ctx context.Context, execID int64, index int, op Operation) {
	if bw.Monitor != nil && bw.Monitor.OperationStarted != nil {
		bw.Monitor.OperationStarted(ctx, &event.OperationStartedEvent{
			ExecutionID: execID,
			Index:       index,
			Kind:        op.Kind.String(),
			Document:    op.Document,
		})
	}
	if bw.Logger.Is(logger.DebugLevel, logger.ComponentOperation) {
		bw.Logger.Print(logger.DebugLevel, &logger.OperationStartedMessage{
			Index: int64(index),
			Kind:  op.Kind.String(),
		})
	}
}

func (bw BulkWrite) publishOperationSucceeded(ctx context.Context, execID int64, index int, op Operation, duration time.Duration) {
	if bw.Monitor != nil && bw.Monitor.OperationSucceeded != nil {
		bw.Monitor.OperationSucceeded(ctx, &event.OperationSucceededEvent{
			OperationFinishedEvent: event.OperationFinishedEvent{
				DurationNanos: duration.Nanoseconds(),
				ExecutionID:   execID,
				Index:         index,
				Kind:          op.Kind.String(),
			},
		})
	}
}

func (bw BulkWrite) publishOperationFailed(ctx context.Context, execID int64, index int, op Operation, duration time.Duration, err error) {
	we, isWriteErr := extractWriteError(err)

	if bw.Monitor != nil && bw.Monitor.OperationFailed != nil {
		evt := &event.OperationFailedEvent{
			OperationFinishedEvent: event.OperationFinishedEvent{
				DurationNanos: duration.Nanoseconds(),
				ExecutionID:   execID,
				Index:         index,
				Kind:          op.Kind.String(),
			},
			Reason:  failureReason(err),
			Failure: err.Error(),
		}
		if isWriteErr {
			evt.Code = int32(we.Code)
		}
		bw.Monitor.OperationFailed(ctx, evt)
	}
	if bw.Logger.Is(logger.DebugLevel, logger.ComponentOperation) {
		msg := &logger.OperationFailedMessage{
			Index:   int64(index),
			Kind:    op.Kind.String(),
			Failure: err.Error(),
		}
		if isWriteErr {
			msg.Code = int64(we.Code)
		}
		bw.Logger.Print(logger.DebugLevel, msg)
	}
}

// failureReason classifies an executor failure for monitoring.
func failureReason(err error) string {
	if _, ok := extractWriteError(err); ok {
		return event.ReasonWriteError
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return event.ReasonCancelled
	}
	if IsNetworkError(err) {
		return event.ReasonNetworkError
	}
	return event.ReasonExecutorError
}
