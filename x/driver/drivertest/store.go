// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package drivertest

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/ewall-cauc/mongo-cxx-driver/document"
	"github.com/ewall-cauc/mongo-cxx-driver/x/driver"
)

// idKey is the identifier element of every stored document.
const idKey = "_id"

// Server error codes the store mirrors so its rejections look like real
// write errors.
const (
	codeDuplicateKey   = 11000
	codeFailedToParse  = 9
	codeTypeMismatch   = 14
	codeImmutableField = 66
)

// Store is an in-memory document collection implementing both
// driver.WriteExecutor and driver.BatchWriteExecutor. It supports equality
// filters on top-level fields, the $set, $inc, and $unset update operators,
// upsert synthesis, and duplicate key detection on _id, which is enough to
// execute the full write surface with real semantics in tests.
//
// An operation is applied atomically: a rejected write leaves the store
// unchanged. Store is safe for concurrent use.
type Store struct {
	// Validator, when set, is consulted with every document about to be
	// stored by an insert, replace, or upsert. A non-nil return rejects
	// the write. Setting BypassDocumentValidation on the call skips the
	// check.
	Validator func(document.D) *driver.WriteError

	// WriteConcernError, when set, is attached to every acknowledged
	// outcome so concern failures can be simulated alongside applied
	// writes.
	WriteConcernError *driver.WriteConcernError

	mu   sync.Mutex
	docs []document.D
}

// NewStore returns a Store holding copies of the seed documents.
func NewStore(seed ...document.D) *Store {
	s := &Store{docs: make([]document.D, 0, len(seed))}
	for _, doc := range seed {
		s.docs = append(s.docs, doc.Copy())
	}
	return s
}

// Documents returns a snapshot of the stored documents in insertion order.
func (s *Store) Documents() []document.D {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := make([]document.D, len(s.docs))
	for i, doc := range s.docs {
		docs[i] = doc.Copy()
	}
	return docs
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.docs)
}

// Perform applies a single operation to the store.
func (s *Store) Perform(ctx context.Context, op driver.Operation, opts driver.PerformOptions) (driver.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return driver.Outcome{}, err
	}
	if !validKind(op.Kind) {
		return driver.Outcome{}, driver.ErrInvalidKind
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out, werr := s.applyLocked(op, opts)
	if !opts.WriteConcern.Acknowledged() {
		return driver.Outcome{}, driver.ErrUnacknowledgedWrite
	}
	if werr != nil {
		return driver.Outcome{}, werr
	}
	if s.WriteConcernError != nil {
		out.WriteConcernError = s.WriteConcernError
	}
	return out, nil
}

// PerformBatch applies a group of operations in order. With Ordered set
// (the default) application stops at the first write error; otherwise the
// remaining operations still run. Indices in the returned BatchResult are
// relative to ops.
func (s *Store) PerformBatch(ctx context.Context, ops []driver.Operation, opts driver.PerformOptions) (driver.BatchResult, error) {
	if err := ctx.Err(); err != nil {
		return driver.BatchResult{}, err
	}
	if len(ops) == 0 {
		return driver.BatchResult{}, driver.ErrEmptyBatch
	}
	for _, op := range ops {
		if !validKind(op.Kind) {
			return driver.BatchResult{}, driver.ErrInvalidKind
		}
	}

	ordered := true
	if opts.Ordered != nil {
		ordered = *opts.Ordered
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var br driver.BatchResult
	for i, op := range ops {
		out, werr := s.applyLocked(op, opts)
		if werr != nil {
			werr.Index = i
			br.WriteErrors = append(br.WriteErrors, *werr)
			if ordered {
				break
			}
			continue
		}
		br.N += out.N
		br.NModified += out.NModified
		if out.UpsertedID != nil {
			br.Upserted = append(br.Upserted, driver.Upsert{Index: int64(i), ID: out.UpsertedID})
		}
	}

	if !opts.WriteConcern.Acknowledged() {
		return driver.BatchResult{}, driver.ErrUnacknowledgedWrite
	}
	if s.WriteConcernError != nil {
		br.WriteConcernError = s.WriteConcernError
	}
	return br, nil
}

func validKind(k driver.Kind) bool {
	switch k {
	case driver.InsertOne, driver.UpdateOne, driver.UpdateMany,
		driver.DeleteOne, driver.DeleteMany, driver.ReplaceOne:
		return true
	}
	return false
}

func (s *Store) applyLocked(op driver.Operation, opts driver.PerformOptions) (driver.Outcome, *driver.WriteError) {
	switch op.Kind {
	case driver.InsertOne:
		return s.applyInsert(op, opts)
	case driver.UpdateOne, driver.UpdateMany:
		return s.applyUpdate(op, opts)
	case driver.ReplaceOne:
		return s.applyReplace(op, opts)
	default:
		return s.applyDelete(op)
	}
}

func (s *Store) applyInsert(op driver.Operation, opts driver.PerformOptions) (driver.Outcome, *driver.WriteError) {
	doc := op.Document.Copy()
	if werr := s.checkDocument(doc, opts); werr != nil {
		return driver.Outcome{}, werr
	}
	if id, ok := doc.Lookup(idKey); ok {
		if s.findByID(id) >= 0 {
			return driver.Outcome{}, duplicateKeyError(id)
		}
	}
	s.docs = append(s.docs, doc)
	return driver.Outcome{N: 1}, nil
}

func (s *Store) applyUpdate(op driver.Operation, opts driver.PerformOptions) (driver.Outcome, *driver.WriteError) {
	matched := s.matchIndexes(op.Filter, op.Kind.Multi())
	if len(matched) == 0 {
		if op.Upsert != nil && *op.Upsert {
			base := equalityFields(op.Filter)
			doc, _, werr := applyUpdateDocument(base, op.Update)
			if werr != nil {
				return driver.Outcome{}, werr
			}
			return s.insertUpserted(doc, opts)
		}
		return driver.Outcome{}, nil
	}

	// Stage every updated document before committing so a modifier error
	// on a later match leaves the store untouched.
	type staged struct {
		index   int
		doc     document.D
		changed bool
	}
	updates := make([]staged, 0, len(matched))
	for _, i := range matched {
		updated, changed, werr := applyUpdateDocument(s.docs[i], op.Update)
		if werr != nil {
			return driver.Outcome{}, werr
		}
		updates = append(updates, staged{index: i, doc: updated, changed: changed})
	}

	var out driver.Outcome
	for _, u := range updates {
		out.N++
		if u.changed {
			out.NModified++
			s.docs[u.index] = u.doc
		}
	}
	return out, nil
}

func (s *Store) applyReplace(op driver.Operation, opts driver.PerformOptions) (driver.Outcome, *driver.WriteError) {
	matched := s.matchIndexes(op.Filter, false)
	if len(matched) == 0 {
		if op.Upsert != nil && *op.Upsert {
			return s.insertUpserted(replacementBase(op), opts)
		}
		return driver.Outcome{}, nil
	}

	i := matched[0]
	existingID, hasID := s.docs[i].Lookup(idKey)
	replacement := op.Document.Copy()
	if newID, ok := replacement.Lookup(idKey); ok && hasID && !valuesEqual(existingID, newID) {
		return driver.Outcome{}, &driver.WriteError{
			Code:    codeImmutableField,
			Message: "after applying the update, the (immutable) field '_id' was found to have been altered",
		}
	}
	if _, ok := replacement.Lookup(idKey); !ok && hasID {
		replacement = prependID(replacement, existingID)
	}
	if werr := s.checkDocument(replacement, opts); werr != nil {
		return driver.Outcome{}, werr
	}

	out := driver.Outcome{N: 1}
	if !docsEqual(s.docs[i], replacement) {
		out.NModified = 1
		s.docs[i] = replacement
	}
	return out, nil
}

func (s *Store) applyDelete(op driver.Operation) (driver.Outcome, *driver.WriteError) {
	matched := s.matchIndexes(op.Filter, op.Kind.Multi())
	for n := len(matched) - 1; n >= 0; n-- {
		i := matched[n]
		s.docs = append(s.docs[:i], s.docs[i+1:]...)
	}
	return driver.Outcome{N: int64(len(matched))}, nil
}

// insertUpserted stores a document synthesized for an upsert and reports
// its identifier.
func (s *Store) insertUpserted(doc document.D, opts driver.PerformOptions) (driver.Outcome, *driver.WriteError) {
	doc, id := document.EnsureID(doc)
	if werr := s.checkDocument(doc, opts); werr != nil {
		return driver.Outcome{}, werr
	}
	if s.findByID(id) >= 0 {
		return driver.Outcome{}, duplicateKeyError(id)
	}
	s.docs = append(s.docs, doc)
	return driver.Outcome{UpsertedID: id}, nil
}

func (s *Store) checkDocument(doc document.D, opts driver.PerformOptions) *driver.WriteError {
	if s.Validator == nil {
		return nil
	}
	if opts.BypassDocumentValidation != nil && *opts.BypassDocumentValidation {
		return nil
	}
	return s.Validator(doc)
}

// findByID returns the position of the document with the given _id, or -1.
func (s *Store) findByID(id interface{}) int {
	for i, doc := range s.docs {
		if existing, ok := doc.Lookup(idKey); ok && valuesEqual(existing, id) {
			return i
		}
	}
	return -1
}

// matchIndexes returns the positions of the documents matching filter in
// store order. Without multi only the first match is returned.
func (s *Store) matchIndexes(filter document.D, multi bool) []int {
	var matched []int
	for i, doc := range s.docs {
		if matchesFilter(doc, filter) {
			matched = append(matched, i)
			if !multi {
				break
			}
		}
	}
	return matched
}

// matchesFilter reports whether every filter element equals the document's
// value for that field. An empty filter matches every document; a field
// absent from the document never matches.
func matchesFilter(doc document.D, filter document.D) bool {
	for _, cond := range filter {
		val, ok := doc.Lookup(cond.Key)
		if !ok || !valuesEqual(val, cond.Value) {
			return false
		}
	}
	return true
}

// equalityFields extracts the plain equality elements of a filter for
// upsert synthesis, skipping operator keys and operator-valued conditions.
func equalityFields(filter document.D) document.D {
	base := make(document.D, 0, len(filter))
	for _, e := range filter {
		if strings.HasPrefix(e.Key, "$") {
			continue
		}
		if d, ok := toDocument(e.Value); ok && len(d) > 0 && strings.HasPrefix(d[0].Key, "$") {
			continue
		}
		base = append(base, document.E{Key: e.Key, Value: e.Value})
	}
	return base
}

// replacementBase builds the document stored by a replace upsert: the
// replacement payload, taking the filter's _id when the payload has none.
func replacementBase(op driver.Operation) document.D {
	doc := op.Document.Copy()
	if _, ok := doc.Lookup(idKey); ok {
		return doc
	}
	if id, ok := equalityFields(op.Filter).Lookup(idKey); ok {
		return prependID(doc, id)
	}
	return doc
}

func prependID(doc document.D, id interface{}) document.D {
	out := make(document.D, 0, len(doc)+1)
	out = append(out, document.E{Key: idKey, Value: id})
	return append(out, doc...)
}

// applyUpdateDocument returns a copy of doc with the update modifiers
// applied, reporting whether anything changed.
func applyUpdateDocument(doc document.D, update document.D) (document.D, bool, *driver.WriteError) {
	updated := doc.Copy()
	changed := false
	for _, mod := range update {
		fields, ok := toDocument(mod.Value)
		if !ok {
			return nil, false, &driver.WriteError{
				Code:    codeFailedToParse,
				Message: fmt.Sprintf("Modifiers operate on fields but we found type %T instead", mod.Value),
			}
		}

		switch mod.Key {
		case "$set":
			for _, f := range fields {
				var c bool
				updated, c = setField(updated, f.Key, f.Value)
				changed = changed || c
			}
		case "$unset":
			for _, f := range fields {
				var c bool
				updated, c = removeField(updated, f.Key)
				changed = changed || c
			}
		case "$inc":
			for _, f := range fields {
				next, werr := incrementField(updated, f.Key, f.Value)
				if werr != nil {
					return nil, false, werr
				}
				var c bool
				updated, c = setField(updated, f.Key, next)
				changed = changed || c
			}
		default:
			return nil, false, &driver.WriteError{
				Code:    codeFailedToParse,
				Message: fmt.Sprintf("Unknown modifier: %s", mod.Key),
			}
		}
	}
	return updated, changed, nil
}

// incrementField computes the new value for a $inc on the given field.
func incrementField(doc document.D, key string, delta interface{}) (interface{}, *driver.WriteError) {
	if _, ok := toFloat(delta); !ok {
		return nil, &driver.WriteError{
			Code:    codeTypeMismatch,
			Message: fmt.Sprintf("Cannot increment with non-numeric argument: {%s: %v}", key, delta),
		}
	}
	cur, present := doc.Lookup(key)
	if !present {
		return delta, nil
	}
	if _, ok := toFloat(cur); !ok {
		return nil, &driver.WriteError{
			Code:    codeTypeMismatch,
			Message: fmt.Sprintf("Cannot apply $inc to a value of non-numeric type: field %q", key),
		}
	}
	return addNumbers(cur, delta), nil
}

// addNumbers sums two numeric values, keeping integer arithmetic when both
// sides are integers.
func addNumbers(a, b interface{}) interface{} {
	ai, aInt := toInt(a)
	bi, bInt := toInt(b)
	if aInt && bInt {
		return ai + bi
	}
	af, _ := toFloat(a)
	bf, _ := toFloat(b)
	return af + bf
}

func setField(doc document.D, key string, value interface{}) (document.D, bool) {
	for i, e := range doc {
		if e.Key == key {
			if valuesEqual(e.Value, value) {
				return doc, false
			}
			doc[i].Value = value
			return doc, true
		}
	}
	return append(doc, document.E{Key: key, Value: value}), true
}

func removeField(doc document.D, key string) (document.D, bool) {
	for i, e := range doc {
		if e.Key == key {
			return append(doc[:i], doc[i+1:]...), true
		}
	}
	return doc, false
}

func duplicateKeyError(id interface{}) *driver.WriteError {
	return &driver.WriteError{
		Code:    codeDuplicateKey,
		Message: fmt.Sprintf("E11000 duplicate key error: _id %v", id),
	}
}

// valuesEqual compares two document values, normalizing numeric types so
// an int64 1 equals a float64 1 the way JSON-decoded corpora expect.
// Embedded documents compare without regard to element order.
func valuesEqual(a, b interface{}) bool {
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && af == bf
	}
	if ad, ok := toDocument(a); ok {
		bd, ok := toDocument(b)
		return ok && docsEqual(ad, bd)
	}
	if as, ok := a.([]interface{}); ok {
		bs, ok := b.([]interface{})
		if !ok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !valuesEqual(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func docsEqual(a, b document.D) bool {
	if len(a) != len(b) {
		return false
	}
	bm := b.Map()
	for _, e := range a {
		bv, ok := bm[e.Key]
		if !ok || !valuesEqual(e.Value, bv) {
			return false
		}
	}
	return true
}

func toDocument(v interface{}) (document.D, bool) {
	switch t := v.(type) {
	case document.D:
		return t, true
	case document.M:
		d, err := document.Transform(t)
		return d, err == nil
	case map[string]interface{}:
		d, err := document.Transform(t)
		return d, err == nil
	default:
		return nil, false
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}

func toInt(v interface{}) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	default:
		return 0, false
	}
}
