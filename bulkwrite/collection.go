// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bulkwrite

import (
	"context"

	"github.com/ewall-cauc/mongo-cxx-driver/bulkwrite/options"
	"github.com/ewall-cauc/mongo-cxx-driver/bulkwrite/writeconcern"
	"github.com/ewall-cauc/mongo-cxx-driver/event"
	"github.com/ewall-cauc/mongo-cxx-driver/internal/logger"
	"github.com/ewall-cauc/mongo-cxx-driver/x/driver"
)

// Collection is a named write target. It binds an executor together with a
// default write concern, an event monitor, and a logger, so batches can be
// created against it repeatedly.
type Collection struct {
	name    string
	exec    driver.WriteExecutor
	wc      *writeconcern.WriteConcern
	monitor *event.WriteMonitor
	logger  *logger.Logger
}

// NewCollection creates a Collection bound to the given executor.
func NewCollection(name string, exec driver.WriteExecutor, opts ...*options.CollectionOptions) *Collection {
	merged := options.MergeCollectionOptions(opts...)
	return &Collection{
		name:    name,
		exec:    exec,
		wc:      merged.WriteConcern,
		monitor: merged.Monitor,
		logger:  newLogger(merged.LoggerOptions),
	}
}

// Name returns the name of the collection.
func (coll *Collection) Name() string {
	return coll.name
}

// NewBatch creates an empty batch bound to the collection's executor. The
// batch inherits the collection's write concern unless the options carry
// their own.
func (coll *Collection) NewBatch(opts ...*options.BulkWriteOptions) *Batch {
	merged := options.MergeBulkWriteOptions(opts...)
	if merged.WriteConcern == nil {
		merged.WriteConcern = coll.wc
	}
	return &Batch{
		opts:    merged,
		exec:    coll.exec,
		monitor: coll.monitor,
		logger:  coll.logger,
	}
}

// BulkWrite appends the given models to a fresh batch and executes it. Model
// validation failures are returned before anything executes.
func (coll *Collection) BulkWrite(ctx context.Context, models []WriteModel, opts ...*options.BulkWriteOptions) (*BulkWriteResult, error) {
	batch := coll.NewBatch(opts...)
	for _, model := range models {
		if err := batch.Append(model); err != nil {
			return nil, err
		}
	}
	return batch.Execute(ctx)
}

// Close stops the collection's logger. Messages queued before Close are
// still printed. The collection and its batches must not be used afterwards.
func (coll *Collection) Close() {
	if coll.logger != nil {
		coll.logger.Close()
	}
}

// newLogger builds the internal logger from user-facing options. A nil
// options value disables logging.
func newLogger(opts *options.LoggerOptions) *logger.Logger {
	if opts == nil {
		return nil
	}

	levels := make(map[logger.Component]logger.Level, len(opts.ComponentLevels))
	for component, level := range opts.ComponentLevels {
		levels[logger.Component(component)] = logger.Level(level)
	}

	if opts.Sink != nil {
		return logger.New(opts.Sink, levels)
	}
	return logger.NewWithWriter(opts.Output, levels)
}
