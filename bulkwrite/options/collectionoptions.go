// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package options

import (
	"github.com/ewall-cauc/mongo-cxx-driver/bulkwrite/writeconcern"
	"github.com/ewall-cauc/mongo-cxx-driver/event"
)

// CollectionOptions contains options to configure a Collection instance.
type CollectionOptions struct {
	// WriteConcern is the write concern to use for operations executed on
	// the Collection. The default value is nil, which means acknowledged
	// behavior without an explicit concern attached.
	WriteConcern *writeconcern.WriteConcern

	// Monitor receives callbacks for bulk write lifecycle events on the
	// Collection. The default value is nil, which means no events are
	// published.
	Monitor *event.WriteMonitor

	// LoggerOptions configures structured logging for operations executed
	// on the Collection.
	LoggerOptions *LoggerOptions
}

// Collection creates a new CollectionOptions instance.
func Collection() *CollectionOptions {
	return &CollectionOptions{}
}

// SetWriteConcern sets the value for the WriteConcern field.
func (c *CollectionOptions) SetWriteConcern(wc *writeconcern.WriteConcern) *CollectionOptions {
	c.WriteConcern = wc
	return c
}

// SetMonitor sets the value for the Monitor field.
func (c *CollectionOptions) SetMonitor(monitor *event.WriteMonitor) *CollectionOptions {
	c.Monitor = monitor
	return c
}

// SetLoggerOptions sets the value for the LoggerOptions field.
func (c *CollectionOptions) SetLoggerOptions(opts *LoggerOptions) *CollectionOptions {
	c.LoggerOptions = opts
	return c
}

// MergeCollectionOptions combines the given CollectionOptions instances into
// a single CollectionOptions in a last-one-wins fashion.
func MergeCollectionOptions(opts ...*CollectionOptions) *CollectionOptions {
	c := Collection()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if opt.WriteConcern != nil {
			c.WriteConcern = opt.WriteConcern
		}
		if opt.Monitor != nil {
			c.Monitor = opt.Monitor
		}
		if opt.LoggerOptions != nil {
			c.LoggerOptions = opt.LoggerOptions
		}
	}
	return c
}
