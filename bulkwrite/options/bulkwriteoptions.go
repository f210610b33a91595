// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package options defines the optional configuration for bulk write batches,
// collections, and logging.
package options // import "github.com/ewall-cauc/mongo-cxx-driver/bulkwrite/options"

import (
	"github.com/ewall-cauc/mongo-cxx-driver/bulkwrite/writeconcern"
)

// DefaultOrdered is the default value for the Ordered option in
// BulkWriteOptions.
var DefaultOrdered = true

// BulkWriteOptions represents options that can be used to configure a bulk
// write operation.
type BulkWriteOptions struct {
	// If true, writes executed as part of the operation will opt out of
	// document-level validation on the executor side. The default value is
	// false.
	BypassDocumentValidation *bool

	// If true, no writes will be executed after one fails. The default
	// value is true.
	Ordered *bool

	// If true, detailed results for each successful operation will be
	// included in the result. The default value is false, which means that
	// only the summary counts are reported.
	VerboseResults *bool

	// A string or document that will be included in executor logs and
	// journals to help trace the operation. The default value is nil,
	// which means that no comment will be attached.
	Comment interface{}

	// The write concern to use for the operation. The default value is
	// nil, which means the target's write concern will be used.
	WriteConcern *writeconcern.WriteConcern
}

// BulkWrite creates a new *BulkWriteOptions instance.
func BulkWrite() *BulkWriteOptions {
	return &BulkWriteOptions{
		Ordered: &DefaultOrdered,
	}
}

// SetBypassDocumentValidation sets the value for the BypassDocumentValidation field.
func (b *BulkWriteOptions) SetBypassDocumentValidation(bypass bool) *BulkWriteOptions {
	b.BypassDocumentValidation = &bypass
	return b
}

// SetOrdered sets the value for the Ordered field.
func (b *BulkWriteOptions) SetOrdered(ordered bool) *BulkWriteOptions {
	b.Ordered = &ordered
	return b
}

// SetVerboseResults sets the value for the VerboseResults field.
func (b *BulkWriteOptions) SetVerboseResults(verbose bool) *BulkWriteOptions {
	b.VerboseResults = &verbose
	return b
}

// SetComment sets the value for the Comment field.
func (b *BulkWriteOptions) SetComment(comment interface{}) *BulkWriteOptions {
	b.Comment = comment
	return b
}

// SetWriteConcern sets the value for the WriteConcern field.
func (b *BulkWriteOptions) SetWriteConcern(wc *writeconcern.WriteConcern) *BulkWriteOptions {
	b.WriteConcern = wc
	return b
}

// MergeBulkWriteOptions combines the given BulkWriteOptions instances into a
// single BulkWriteOptions in a last-one-wins fashion.
func MergeBulkWriteOptions(opts ...*BulkWriteOptions) *BulkWriteOptions {
	b := BulkWrite()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if opt.BypassDocumentValidation != nil {
			b.BypassDocumentValidation = opt.BypassDocumentValidation
		}
		if opt.Ordered != nil {
			b.Ordered = opt.Ordered
		}
		if opt.VerboseResults != nil {
			b.VerboseResults = opt.VerboseResults
		}
		if opt.Comment != nil {
			b.Comment = opt.Comment
		}
		if opt.WriteConcern != nil {
			b.WriteConcern = opt.WriteConcern
		}
	}
	return b
}
