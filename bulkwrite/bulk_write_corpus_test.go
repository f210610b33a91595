// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bulkwrite

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/pretty"

	"github.com/ewall-cauc/mongo-cxx-driver/bulkwrite/options"
	"github.com/ewall-cauc/mongo-cxx-driver/document"
	testhelpers "github.com/ewall-cauc/mongo-cxx-driver/internal/testutil/helpers"
	"github.com/ewall-cauc/mongo-cxx-driver/x/driver/drivertest"
)

const bulkWriteTestsDir = "../data/bulk-write"

type testFile struct {
	Data  json.RawMessage
	Tests []testCase
}

type testCase struct {
	Description string
	Operation   operation
	Outcome     outcome
}

type operation struct {
	Name      string
	Arguments arguments
}

type arguments struct {
	Requests []document.D
	Options  *executeOptions
}

type executeOptions struct {
	Ordered *bool
}

type outcome struct {
	Result     expectedResult
	Collection *collection
}

type collection struct {
	Data json.RawMessage
}

type expectedResult struct {
	InsertedCount int64
	MatchedCount  int64
	ModifiedCount int64
	DeletedCount  int64
	UpsertedCount int64
	InsertedIDs   map[string]interface{}
	UpsertedIDs   map[string]interface{}
	WriteErrors   []expectedWriteError
}

type expectedWriteError struct {
	Index int
	Code  int
}

func TestBulkWriteCorpus(t *testing.T) {
	for _, file := range testhelpers.FindJSONFilesInDir(t, bulkWriteTestsDir) {
		t.Run(file, func(t *testing.T) {
			runBulkWriteTestFile(t, path.Join(bulkWriteTestsDir, file))
		})
	}
}

func runBulkWriteTestFile(t *testing.T, filepath string) {
	content, err := os.ReadFile(filepath)
	require.NoError(t, err)

	var testfile testFile
	require.NoError(t, json.Unmarshal(content, &testfile))

	seed := testhelpers.DecodeDocuments(t, testfile.Data)

	for _, test := range testfile.Tests {
		t.Run(test.Description, func(t *testing.T) {
			runBulkWriteTestCase(t, seed, test)
		})
	}
}

func runBulkWriteTestCase(t *testing.T, seed []document.D, test testCase) {
	require.Equal(t, "bulkWrite", test.Operation.Name)

	// NewStore copies the seed documents, so every case starts clean.
	store := drivertest.NewStore(seed...)

	models, err := createBulkWriteModels(test.Operation.Arguments.Requests)
	require.NoError(t, err)

	var opts []*options.BulkWriteOptions
	if o := test.Operation.Arguments.Options; o != nil && o.Ordered != nil {
		opts = append(opts, options.BulkWrite().SetOrdered(*o.Ordered))
	}

	res, err := BulkWrite(bg, store, models, opts...)

	expected := test.Outcome.Result
	if len(expected.WriteErrors) > 0 {
		var exception BulkWriteException
		require.ErrorAs(t, err, &exception)
		require.Len(t, exception.WriteErrors, len(expected.WriteErrors))
		for i, want := range expected.WriteErrors {
			assert.Equal(t, want.Index, exception.WriteErrors[i].Index)
			assert.Equal(t, want.Code, exception.WriteErrors[i].Code)
			assert.Same(t, models[want.Index], exception.WriteErrors[i].Request)
		}
	} else {
		require.NoError(t, err)
	}

	require.NotNil(t, res)
	assert.Equal(t, expected.InsertedCount, res.InsertedCount)
	assert.Equal(t, expected.MatchedCount, res.MatchedCount)
	assert.Equal(t, expected.ModifiedCount, res.ModifiedCount)
	assert.Equal(t, expected.DeletedCount, res.DeletedCount)
	assert.Equal(t, expected.UpsertedCount, res.UpsertedCount)

	verifyIDMap(t, "insertedIds", expected.InsertedIDs, res.InsertedIDs)
	verifyIDMap(t, "upsertedIds", expected.UpsertedIDs, res.UpsertedIDs)

	if test.Outcome.Collection != nil {
		verifyCollectionData(t, test.Outcome.Collection.Data, store)
	}
}

// verifyIDMap checks an _id map from the result against the expected map,
// which uses decimal string keys for the request indexes. An absent expected
// map means the actual map must be empty.
func verifyIDMap(t *testing.T, name string, expected map[string]interface{}, actual map[int64]interface{}) {
	t.Helper()

	require.Len(t, actual, len(expected), "%s has the wrong number of entries", name)
	for key, want := range expected {
		idx, err := strconv.ParseInt(key, 10, 64)
		require.NoError(t, err)

		got, ok := actual[idx]
		require.True(t, ok, "%s is missing an entry for index %s", name, key)
		assert.EqualValues(t, want, got, "%s[%s]", name, key)
	}
}

func verifyCollectionData(t *testing.T, expected json.RawMessage, store *drivertest.Store) {
	t.Helper()

	actual, err := json.Marshal(store.Documents())
	require.NoError(t, err)
	assert.Equal(t, string(pretty.Ugly(expected)), string(actual))
}

// createBulkWriteModels converts decoded request documents to a slice of
// WriteModel. Each request must be a document in the form
// { requestType: { argKey1: argValue1, ... } }. For example, the document
// { insertOne: { document: { x: 1 } } } would be translated to an
// InsertOneModel to insert the document { x: 1 }.
func createBulkWriteModels(requests []document.D) ([]WriteModel, error) {
	models := make([]WriteModel, 0, len(requests))

	for idx, request := range requests {
		model, err := createBulkWriteModel(request)
		if err != nil {
			return nil, fmt.Errorf("error creating model at index %d: %w", idx, err)
		}
		models = append(models, model)
	}
	return models, nil
}

// createBulkWriteModel converts the provided request document to a WriteModel.
func createBulkWriteModel(request document.D) (WriteModel, error) {
	if len(request) != 1 {
		return nil, fmt.Errorf("expected a single request type, got %d keys", len(request))
	}
	requestType := request[0].Key
	args, ok := request[0].Value.(document.D)
	if !ok {
		return nil, fmt.Errorf("arguments for %q are not a document", requestType)
	}

	switch requestType {
	case "insertOne":
		var doc interface{}
		for _, elem := range args {
			switch elem.Key {
			case "document":
				doc = elem.Value
			default:
				return nil, fmt.Errorf("unrecognized insertOne option %q", elem.Key)
			}
		}
		if doc == nil {
			return nil, fmt.Errorf("missing required argument %q", "document")
		}

		return NewInsertOneModel().SetDocument(doc), nil
	case "updateOne":
		uom := NewUpdateOneModel()
		var filter, update interface{}

		for _, elem := range args {
			switch elem.Key {
			case "arrayFilters":
				uom.SetArrayFilters(elem.Value.([]interface{}))
			case "filter":
				filter = elem.Value
			case "update":
				update = elem.Value
			case "upsert":
				uom.SetUpsert(elem.Value.(bool))
			default:
				return nil, fmt.Errorf("unrecognized updateOne option %q", elem.Key)
			}
		}
		if filter == nil {
			return nil, fmt.Errorf("missing required argument %q", "filter")
		}
		if update == nil {
			return nil, fmt.Errorf("missing required argument %q", "update")
		}

		return uom.SetFilter(filter).SetUpdate(update), nil
	case "updateMany":
		umm := NewUpdateManyModel()
		var filter, update interface{}

		for _, elem := range args {
			switch elem.Key {
			case "arrayFilters":
				umm.SetArrayFilters(elem.Value.([]interface{}))
			case "filter":
				filter = elem.Value
			case "update":
				update = elem.Value
			case "upsert":
				umm.SetUpsert(elem.Value.(bool))
			default:
				return nil, fmt.Errorf("unrecognized updateMany option %q", elem.Key)
			}
		}
		if filter == nil {
			return nil, fmt.Errorf("missing required argument %q", "filter")
		}
		if update == nil {
			return nil, fmt.Errorf("missing required argument %q", "update")
		}

		return umm.SetFilter(filter).SetUpdate(update), nil
	case "replaceOne":
		rom := NewReplaceOneModel()
		var filter, replacement interface{}

		for _, elem := range args {
			switch elem.Key {
			case "filter":
				filter = elem.Value
			case "replacement":
				replacement = elem.Value
			case "upsert":
				rom.SetUpsert(elem.Value.(bool))
			default:
				return nil, fmt.Errorf("unrecognized replaceOne option %q", elem.Key)
			}
		}
		if filter == nil {
			return nil, fmt.Errorf("missing required argument %q", "filter")
		}
		if replacement == nil {
			return nil, fmt.Errorf("missing required argument %q", "replacement")
		}

		return rom.SetFilter(filter).SetReplacement(replacement), nil
	case "deleteOne":
		var filter interface{}
		for _, elem := range args {
			switch elem.Key {
			case "filter":
				filter = elem.Value
			default:
				return nil, fmt.Errorf("unrecognized deleteOne option %q", elem.Key)
			}
		}
		if filter == nil {
			return nil, fmt.Errorf("missing required argument %q", "filter")
		}

		return NewDeleteOneModel().SetFilter(filter), nil
	case "deleteMany":
		var filter interface{}
		for _, elem := range args {
			switch elem.Key {
			case "filter":
				filter = elem.Value
			default:
				return nil, fmt.Errorf("unrecognized deleteMany option %q", elem.Key)
			}
		}
		if filter == nil {
			return nil, fmt.Errorf("missing required argument %q", "filter")
		}

		return NewDeleteManyModel().SetFilter(filter), nil
	default:
		return nil, fmt.Errorf("unrecognized request type %q", requestType)
	}
}
