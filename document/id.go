// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package document

import "github.com/google/uuid"

// idKey is the reserved identifier element of every stored document.
const idKey = "_id"

// NewID returns a new unique document identifier.
func NewID() string {
	return uuid.NewString()
}

// EnsureID returns the document with an "_id" element guaranteed to be
// present, along with the identifier value. If the document has no "_id",
// a generated one is prepended so the identifier is the first element of
// the stored document.
func EnsureID(d D) (D, interface{}) {
	if id, ok := d.Lookup(idKey); ok {
		return d, id
	}
	id := NewID()
	out := make(D, 0, len(d)+1)
	out = append(out, E{Key: idKey, Value: id})
	out = append(out, d...)
	return out, id
}
