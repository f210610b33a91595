// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package driver

import "fmt"

// batch is a group of same-command operations dispatched together. indexes
// maps each operation back to its original append position. canRetry is
// false when the batch contains a multi operation.
type batch struct {
	kind     writeCommand
	ops      []Operation
	indexes  []int
	canRetry bool
}

// position translates a batch-relative index to the original append
// position. Executors reporting an index outside the batch violate the
// BatchWriteExecutor contract.
func (b batch) position(rel int) int {
	if rel < 0 || rel >= len(b.indexes) {
		panic(fmt.Sprintf("driver: executor reported index %d for a batch of %d operations", rel, len(b.indexes)))
	}
	return b.indexes[rel]
}

// createBatches groups operations into at most one batch per write command
// family. Relative order between families is not preserved, so this grouping
// is only valid for unordered execution.
func createBatches(ops []Operation) []batch {
	var batches []batch

	insertInd := -1
	updateInd := -1
	deleteInd := -1

	for i, op := range ops {
		var ind *int
		switch op.Kind.command() {
		case insertCommand:
			ind = &insertInd
		case updateCommand:
			ind = &updateInd
		case deleteCommand:
			ind = &deleteInd
		}

		if *ind == -1 {
			*ind = len(batches)
			batches = append(batches, batch{kind: op.Kind.command(), canRetry: true})
		}

		batches[*ind].ops = append(batches[*ind].ops, op)
		batches[*ind].indexes = append(batches[*ind].indexes, i)
		if op.Kind.Multi() {
			batches[*ind].canRetry = false
		}
	}

	return batches
}

// createOrderedBatches splits operations into runs of consecutive
// same-command operations, preserving execution order across batches.
func createOrderedBatches(ops []Operation) []batch {
	var batches []batch
	prevKind := writeCommand(-1)

	for i, op := range ops {
		kind := op.Kind.command()
		if kind != prevKind {
			batches = append(batches, batch{kind: kind, canRetry: true})
		}

		cur := &batches[len(batches)-1]
		cur.ops = append(cur.ops, op)
		cur.indexes = append(cur.indexes, i)
		if op.Kind.Multi() {
			cur.canRetry = false
		}

		prevKind = kind
	}

	return batches
}
