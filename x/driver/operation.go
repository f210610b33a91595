// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package driver

import (
	"strings"

	"github.com/ewall-cauc/mongo-cxx-driver/document"
)

// Kind identifies one of the six supported write operation kinds.
type Kind int8

// The supported write operation kinds.
const (
	InsertOne Kind = iota
	UpdateOne
	UpdateMany
	DeleteOne
	DeleteMany
	ReplaceOne
)

// String returns the camelCase name of the kind as it appears in logs and
// monitoring events.
func (k Kind) String() string {
	switch k {
	case InsertOne:
		return "insertOne"
	case UpdateOne:
		return "updateOne"
	case UpdateMany:
		return "updateMany"
	case DeleteOne:
		return "deleteOne"
	case DeleteMany:
		return "deleteMany"
	case ReplaceOne:
		return "replaceOne"
	default:
		return "unknown"
	}
}

// Multi reports whether the kind may affect more than one document. Multi
// kinds are not safely repeatable, so batches containing them are never
// retried.
func (k Kind) Multi() bool {
	return k == UpdateMany || k == DeleteMany
}

// writeCommand buckets a kind into the command family used for batch
// grouping: inserts, updates (including replaces), and deletes.
type writeCommand int8

const (
	insertCommand writeCommand = iota
	updateCommand
	deleteCommand
)

func (k Kind) command() writeCommand {
	switch k {
	case UpdateOne, UpdateMany, ReplaceOne:
		return updateCommand
	case DeleteOne, DeleteMany:
		return deleteCommand
	default:
		return insertCommand
	}
}

// Operation is a single write in a batch. The meaning of each field depends
// on Kind; Validate enforces the combinations.
type Operation struct {
	Kind Kind

	// Document is the payload for InsertOne and the replacement document
	// for ReplaceOne.
	Document document.D

	// Filter selects the documents the operation applies to. Required for
	// every kind except InsertOne.
	Filter document.D

	// Update is the modifier document for UpdateOne and UpdateMany. Its
	// first key must be a $ operator.
	Update document.D

	// Collation specifies language-specific comparison rules used when
	// matching Filter. Valid for every filtered kind.
	Collation document.D

	// ArrayFilters restricts which array elements an update modifies.
	// Updates only.
	ArrayFilters []document.D

	// Upsert inserts a document derived from the operation when Filter
	// matches nothing. Updates and replaces only.
	Upsert *bool
}

// Validate reports whether the operation is well formed. The rules are
// conservative: a field that has no meaning for the operation's kind is
// rejected rather than ignored.
func (op Operation) Validate() error {
	switch op.Kind {
	case InsertOne:
		if op.Document == nil {
			return ErrNilDocument
		}
		if err := requireNoDollarKey(op.Document); err != nil {
			return err
		}
		if op.Filter != nil {
			return InvalidOperationError{op.Kind, "filter"}
		}
		if op.Update != nil {
			return InvalidOperationError{op.Kind, "update"}
		}
		if op.Collation != nil {
			return InvalidOperationError{op.Kind, "collation"}
		}
		if op.ArrayFilters != nil {
			return InvalidOperationError{op.Kind, "arrayFilters"}
		}
		if op.Upsert != nil {
			return InvalidOperationError{op.Kind, "upsert"}
		}
	case UpdateOne, UpdateMany:
		if op.Filter == nil {
			return ErrNilFilter
		}
		if len(op.Update) == 0 {
			return ErrEmptyUpdate
		}
		if err := requireDollarKey(op.Update); err != nil {
			return err
		}
		if op.Document != nil {
			return InvalidOperationError{op.Kind, "document"}
		}
	case ReplaceOne:
		if op.Filter == nil {
			return ErrNilFilter
		}
		if op.Document == nil {
			return ErrNilDocument
		}
		if err := requireNoDollarKey(op.Document); err != nil {
			return err
		}
		if op.Update != nil {
			return InvalidOperationError{op.Kind, "update"}
		}
		if op.ArrayFilters != nil {
			return InvalidOperationError{op.Kind, "arrayFilters"}
		}
	case DeleteOne, DeleteMany:
		if op.Filter == nil {
			return ErrNilFilter
		}
		if op.Document != nil {
			return InvalidOperationError{op.Kind, "document"}
		}
		if op.Update != nil {
			return InvalidOperationError{op.Kind, "update"}
		}
		if op.Upsert != nil {
			return InvalidOperationError{op.Kind, "upsert"}
		}
		if op.ArrayFilters != nil {
			return InvalidOperationError{op.Kind, "arrayFilters"}
		}
	default:
		return ErrInvalidKind
	}

	return nil
}

// requireDollarKey enforces that an update modifier starts with a $ operator
// key. Callers guarantee the document is non-empty.
func requireDollarKey(update document.D) error {
	if !strings.HasPrefix(update[0].Key, "$") {
		return ErrDollarKeyRequired
	}
	return nil
}

// requireNoDollarKey enforces that an insert or replacement payload is a
// plain document, not a modifier.
func requireNoDollarKey(doc document.D) error {
	if len(doc) > 0 && strings.HasPrefix(doc[0].Key, "$") {
		return ErrDollarKeyForbidden
	}
	return nil
}
