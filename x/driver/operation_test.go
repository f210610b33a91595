// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ewall-cauc/mongo-cxx-driver/document"
	"github.com/ewall-cauc/mongo-cxx-driver/internal/ptrutil"
)

func TestKindString(t *testing.T) {
	testCases := []struct {
		kind     Kind
		expected string
	}{
		{InsertOne, "insertOne"},
		{UpdateOne, "updateOne"},
		{UpdateMany, "updateMany"},
		{DeleteOne, "deleteOne"},
		{DeleteMany, "deleteMany"},
		{ReplaceOne, "replaceOne"},
		{Kind(42), "unknown"},
	}
	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.kind.String())
		})
	}
}

func TestKindMulti(t *testing.T) {
	assert.True(t, UpdateMany.Multi())
	assert.True(t, DeleteMany.Multi())
	assert.False(t, InsertOne.Multi())
	assert.False(t, UpdateOne.Multi())
	assert.False(t, DeleteOne.Multi())
	assert.False(t, ReplaceOne.Multi())
}

func TestKindCommand(t *testing.T) {
	assert.Equal(t, insertCommand, InsertOne.command())
	assert.Equal(t, updateCommand, UpdateOne.command())
	assert.Equal(t, updateCommand, UpdateMany.command())
	assert.Equal(t, updateCommand, ReplaceOne.command())
	assert.Equal(t, deleteCommand, DeleteOne.command())
	assert.Equal(t, deleteCommand, DeleteMany.command())
}

func TestOperationValidate(t *testing.T) {
	doc := document.D{{Key: "x", Value: 1}}
	filter := document.D{{Key: "x", Value: 1}}
	set := document.D{{Key: "$set", Value: document.D{{Key: "x", Value: 2}}}}

	testCases := []struct {
		name string
		op   Operation
		err  error
	}{
		{"insert valid", Operation{Kind: InsertOne, Document: doc}, nil},
		{"insert nil document", Operation{Kind: InsertOne}, ErrNilDocument},
		{"insert empty document", Operation{Kind: InsertOne, Document: document.D{}}, nil},
		{"insert dollar key", Operation{Kind: InsertOne, Document: set}, ErrDollarKeyForbidden},
		{"insert with filter", Operation{Kind: InsertOne, Document: doc, Filter: filter}, InvalidOperationError{InsertOne, "filter"}},
		{"insert with update", Operation{Kind: InsertOne, Document: doc, Update: set}, InvalidOperationError{InsertOne, "update"}},
		{"insert with collation", Operation{Kind: InsertOne, Document: doc, Collation: document.D{{Key: "locale", Value: "fr"}}}, InvalidOperationError{InsertOne, "collation"}},
		{"insert with upsert", Operation{Kind: InsertOne, Document: doc, Upsert: ptrutil.Ptr(true)}, InvalidOperationError{InsertOne, "upsert"}},
		{"insert with arrayFilters", Operation{Kind: InsertOne, Document: doc, ArrayFilters: []document.D{filter}}, InvalidOperationError{InsertOne, "arrayFilters"}},

		{"updateOne valid", Operation{Kind: UpdateOne, Filter: filter, Update: set}, nil},
		{"updateOne with upsert and arrayFilters", Operation{Kind: UpdateOne, Filter: filter, Update: set, Upsert: ptrutil.Ptr(true), ArrayFilters: []document.D{filter}}, nil},
		{"updateOne nil filter", Operation{Kind: UpdateOne, Update: set}, ErrNilFilter},
		{"updateOne empty filter", Operation{Kind: UpdateOne, Filter: document.D{}, Update: set}, nil},
		{"updateOne empty update", Operation{Kind: UpdateOne, Filter: filter, Update: document.D{}}, ErrEmptyUpdate},
		{"updateOne non-dollar update", Operation{Kind: UpdateOne, Filter: filter, Update: doc}, ErrDollarKeyRequired},
		{"updateOne with document", Operation{Kind: UpdateOne, Filter: filter, Update: set, Document: doc}, InvalidOperationError{UpdateOne, "document"}},
		{"updateMany valid", Operation{Kind: UpdateMany, Filter: filter, Update: set}, nil},
		{"updateMany nil filter", Operation{Kind: UpdateMany, Update: set}, ErrNilFilter},

		{"replace valid", Operation{Kind: ReplaceOne, Filter: filter, Document: doc}, nil},
		{"replace with upsert", Operation{Kind: ReplaceOne, Filter: filter, Document: doc, Upsert: ptrutil.Ptr(false)}, nil},
		{"replace nil filter", Operation{Kind: ReplaceOne, Document: doc}, ErrNilFilter},
		{"replace nil document", Operation{Kind: ReplaceOne, Filter: filter}, ErrNilDocument},
		{"replace dollar key", Operation{Kind: ReplaceOne, Filter: filter, Document: set}, ErrDollarKeyForbidden},
		{"replace with update", Operation{Kind: ReplaceOne, Filter: filter, Document: doc, Update: set}, InvalidOperationError{ReplaceOne, "update"}},
		{"replace with arrayFilters", Operation{Kind: ReplaceOne, Filter: filter, Document: doc, ArrayFilters: []document.D{filter}}, InvalidOperationError{ReplaceOne, "arrayFilters"}},

		{"deleteOne valid", Operation{Kind: DeleteOne, Filter: filter}, nil},
		{"deleteOne with collation", Operation{Kind: DeleteOne, Filter: filter, Collation: document.D{{Key: "locale", Value: "fr"}}}, nil},
		{"deleteOne nil filter", Operation{Kind: DeleteOne}, ErrNilFilter},
		{"deleteOne with document", Operation{Kind: DeleteOne, Filter: filter, Document: doc}, InvalidOperationError{DeleteOne, "document"}},
		{"deleteOne with update", Operation{Kind: DeleteOne, Filter: filter, Update: set}, InvalidOperationError{DeleteOne, "update"}},
		{"deleteOne with upsert", Operation{Kind: DeleteOne, Filter: filter, Upsert: ptrutil.Ptr(true)}, InvalidOperationError{DeleteOne, "upsert"}},
		{"deleteMany with arrayFilters", Operation{Kind: DeleteMany, Filter: filter, ArrayFilters: []document.D{filter}}, InvalidOperationError{DeleteMany, "arrayFilters"}},
		{"deleteMany valid", Operation{Kind: DeleteMany, Filter: filter}, nil},

		{"unknown kind", Operation{Kind: Kind(9)}, ErrInvalidKind},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.op.Validate()
			if tc.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tc.err, err)
		})
	}
}
