// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package document defines the document values accepted by the write
// executor: an ordered representation (D), an unordered representation (M),
// and helpers to normalize arbitrary user input into the ordered form.
//
// D should be used when the order of elements matters, such as update
// modifier documents where the first element decides how the document is
// interpreted. M is a shorthand for cases where ordering is irrelevant,
// for example equality filters.
package document

import (
	"encoding/json"
	"fmt"
	"sort"
)

// E represents a single element of a D document.
type E struct {
	Key   string
	Value interface{}
}

// D is an ordered representation of a document. The order of elements is
// preserved through transformation, serialization, and journaling.
//
// Example usage:
//
//	document.D{{"foo", "bar"}, {"hello", "world"}}
type D []E

// M is an unordered representation of a document. Transform converts an M
// into a D with its keys sorted so downstream processing is deterministic.
//
// Example usage:
//
//	document.M{"foo": "bar", "hello": "world"}
type M map[string]interface{}

// ErrNilDocument is returned when a nil document is provided where a value
// is required.
var ErrNilDocument = fmt.Errorf("document is nil")

// Lookup returns the value for the first element with the given key and
// whether the key was present at the top level of the document.
func (d D) Lookup(key string) (interface{}, bool) {
	for _, e := range d {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Map converts the document into an M, discarding element order. Nested
// documents are not converted.
func (d D) Map() M {
	m := make(M, len(d))
	for _, e := range d {
		m[e.Key] = e.Value
	}
	return m
}

// Copy returns a copy of the document. Nested D, M, and slice values are
// copied recursively; all other values are shared.
func (d D) Copy() D {
	if d == nil {
		return nil
	}
	dst := make(D, len(d))
	for i, e := range d {
		dst[i] = E{Key: e.Key, Value: copyValue(e.Value)}
	}
	return dst
}

func copyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case D:
		return t.Copy()
	case M:
		m := make(M, len(t))
		for k, mv := range t {
			m[k] = copyValue(mv)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(t))
		for i, sv := range t {
			s[i] = copyValue(sv)
		}
		return s
	case []D:
		s := make([]D, len(t))
		for i, sv := range t {
			s[i] = sv.Copy()
		}
		return s
	default:
		return v
	}
}

// String returns the document rendered as JSON. It is intended for logging
// and debugging; errors during rendering are reported inline.
func (d D) String() string {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Sprintf("document.D<marshal error: %v>", err)
	}
	return string(b)
}

// Transform normalizes a user-provided document value into a D. It accepts
// D, *D, M, map[string]interface{}, and nil pointers thereof. Map inputs are
// sorted by key so the resulting order is deterministic. A nil or empty
// input produces an error because every call site requires a concrete
// document.
func Transform(val interface{}) (D, error) {
	switch t := val.(type) {
	case nil:
		return nil, ErrNilDocument
	case D:
		if t == nil {
			return nil, ErrNilDocument
		}
		return t, nil
	case *D:
		if t == nil || *t == nil {
			return nil, ErrNilDocument
		}
		return *t, nil
	case M:
		return mapToD(t), nil
	case map[string]interface{}:
		return mapToD(t), nil
	default:
		return nil, fmt.Errorf("cannot transform type %T to a document.D", val)
	}
}

func mapToD(m map[string]interface{}) D {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	d := make(D, 0, len(m))
	for _, k := range keys {
		d = append(d, E{Key: k, Value: m[k]})
	}
	return d
}
