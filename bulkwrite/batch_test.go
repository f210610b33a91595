// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bulkwrite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewall-cauc/mongo-cxx-driver/bulkwrite/options"
	"github.com/ewall-cauc/mongo-cxx-driver/bulkwrite/writeconcern"
	"github.com/ewall-cauc/mongo-cxx-driver/document"
	"github.com/ewall-cauc/mongo-cxx-driver/x/driver"
	"github.com/ewall-cauc/mongo-cxx-driver/x/driver/drivertest"
)

var bg = context.Background()

func insertModel(id interface{}) *InsertOneModel {
	return NewInsertOneModel().SetDocument(document.D{{Key: "_id", Value: id}})
}

func TestBatchAppend(t *testing.T) {
	t.Run("rejects invalid models", func(t *testing.T) {
		update := document.D{{Key: "$set", Value: document.M{"x": 1}}}

		testCases := []struct {
			name    string
			model   WriteModel
			wantErr error
		}{
			{"nil model", nil, driver.ErrNilDocument},
			{"insert without document", NewInsertOneModel(), driver.ErrNilDocument},
			{
				"insert with modifier document",
				NewInsertOneModel().SetDocument(document.D{{Key: "$set", Value: 1}}),
				driver.ErrDollarKeyForbidden,
			},
			{"update without filter", NewUpdateOneModel().SetUpdate(update), driver.ErrNilFilter},
			{
				"update without modifier key",
				NewUpdateManyModel().SetFilter(document.M{}).SetUpdate(document.M{"x": 1}),
				driver.ErrDollarKeyRequired,
			},
			{
				"update with empty modifier",
				NewUpdateOneModel().SetFilter(document.M{}).SetUpdate(document.M{}),
				driver.ErrEmptyUpdate,
			},
			{
				"replace without replacement",
				NewReplaceOneModel().SetFilter(document.M{}),
				driver.ErrNilDocument,
			},
			{"delete without filter", NewDeleteOneModel(), driver.ErrNilFilter},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				batch := NewBatch()
				err := batch.Append(tc.model)
				require.ErrorIs(t, err, tc.wantErr)
				assert.Zero(t, batch.Len(), "a rejected model must not be appended")
			})
		}
	})

	t.Run("keeps append order", func(t *testing.T) {
		batch := NewBatch()
		require.NoError(t, batch.Append(insertModel("a")))
		require.NoError(t, batch.Append(NewDeleteOneModel().SetFilter(document.M{"_id": "a"})))
		require.NoError(t, batch.Append(insertModel("b")))

		assert.Equal(t, 3, batch.Len())
		assert.Equal(t, driver.InsertOne, batch.ops[0].Kind)
		assert.Equal(t, driver.DeleteOne, batch.ops[1].Kind)
		assert.Equal(t, driver.InsertOne, batch.ops[2].Kind)
	})

	t.Run("frozen once execution has begun", func(t *testing.T) {
		batch := NewBatch()
		require.NoError(t, batch.Append(insertModel("a")))

		_, err := batch.ExecuteWith(bg, drivertest.NewStore())
		require.NoError(t, err)

		assert.ErrorIs(t, batch.Append(insertModel("b")), ErrBatchFrozen)
		assert.Equal(t, 1, batch.Len())
	})
}

func TestBatchExecuteLifecycle(t *testing.T) {
	t.Run("consumed exactly once", func(t *testing.T) {
		batch := NewBatch()
		require.NoError(t, batch.Append(insertModel("a")))

		_, err := batch.ExecuteWith(bg, drivertest.NewStore())
		require.NoError(t, err)

		_, err = batch.ExecuteWith(bg, drivertest.NewStore())
		assert.ErrorIs(t, err, ErrBatchExecuted)
	})

	t.Run("no executor bound", func(t *testing.T) {
		batch := NewBatch()
		require.NoError(t, batch.Append(insertModel("a")))

		_, err := batch.Execute(bg)
		assert.ErrorIs(t, err, ErrNoExecutor)

		// The failure does not consume the batch.
		_, err = batch.ExecuteWith(bg, drivertest.NewStore())
		assert.NoError(t, err)
	})

	t.Run("nil executor", func(t *testing.T) {
		batch := NewBatch()
		require.NoError(t, batch.Append(insertModel("a")))

		_, err := batch.ExecuteWith(bg, nil)
		assert.ErrorIs(t, err, ErrNoExecutor)
	})

	t.Run("empty batch", func(t *testing.T) {
		batch := NewBatch()

		_, err := batch.ExecuteWith(bg, drivertest.NewStore())
		require.ErrorIs(t, err, ErrEmptyBatch)
		require.ErrorIs(t, err, driver.ErrEmptyBatch)

		// Execution began, so the batch is consumed even though nothing
		// ran.
		_, err = batch.ExecuteWith(bg, drivertest.NewStore())
		assert.ErrorIs(t, err, ErrBatchExecuted)
	})
}

func TestBatchExecute(t *testing.T) {
	t.Run("mixed operations", func(t *testing.T) {
		store := drivertest.NewStore(
			document.D{{Key: "_id", Value: "a"}, {Key: "qty", Value: 1}},
			document.D{{Key: "_id", Value: "b"}, {Key: "qty", Value: 2}},
		)

		batch := NewBatch()
		require.NoError(t, batch.Append(insertModel("c")))
		require.NoError(t, batch.Append(NewUpdateOneModel().
			SetFilter(document.M{"_id": "a"}).
			SetUpdate(document.D{{Key: "$set", Value: document.M{"qty": 5}}})))
		require.NoError(t, batch.Append(NewDeleteOneModel().SetFilter(document.M{"_id": "b"})))

		res, err := batch.ExecuteWith(bg, store)
		require.NoError(t, err)

		assert.Equal(t, int64(1), res.InsertedCount)
		assert.Equal(t, int64(1), res.MatchedCount)
		assert.Equal(t, int64(1), res.ModifiedCount)
		assert.Equal(t, int64(1), res.DeletedCount)
		assert.Equal(t, "c", res.InsertedIDs[0])
		assert.True(t, res.Acknowledged)
		assert.False(t, res.Partial)
		assert.Equal(t, 2, store.Len())
	})

	t.Run("ordered halts at the first rejection", func(t *testing.T) {
		store := drivertest.NewStore(document.D{{Key: "_id", Value: "dup"}})

		duplicate := insertModel("dup")
		batch := NewBatch()
		require.NoError(t, batch.Append(insertModel("a")))
		require.NoError(t, batch.Append(duplicate))
		require.NoError(t, batch.Append(insertModel("b")))

		res, err := batch.ExecuteWith(bg, store)

		var exception BulkWriteException
		require.ErrorAs(t, err, &exception)
		require.Len(t, exception.WriteErrors, 1)
		assert.Equal(t, 1, exception.WriteErrors[0].Index)
		assert.Equal(t, 11000, exception.WriteErrors[0].Code)
		assert.Same(t, duplicate, exception.WriteErrors[0].Request)
		assert.True(t, exception.HasErrorCode(11000))

		require.NotNil(t, res)
		assert.Equal(t, int64(1), res.InsertedCount)
		assert.False(t, res.Partial)
		assert.Equal(t, 2, store.Len(), `only "dup" and "a" may be present`)
	})

	t.Run("unordered collects every rejection", func(t *testing.T) {
		store := drivertest.NewStore(
			document.D{{Key: "_id", Value: "dup1"}},
			document.D{{Key: "_id", Value: "dup2"}},
		)

		batch := NewBatch(options.BulkWrite().SetOrdered(false))
		require.NoError(t, batch.Append(insertModel("dup1")))
		require.NoError(t, batch.Append(insertModel("fresh")))
		require.NoError(t, batch.Append(insertModel("dup2")))

		res, err := batch.ExecuteWith(bg, store)

		var exception BulkWriteException
		require.ErrorAs(t, err, &exception)
		require.Len(t, exception.WriteErrors, 2)
		assert.Equal(t, 0, exception.WriteErrors[0].Index)
		assert.Equal(t, 2, exception.WriteErrors[1].Index)

		require.NotNil(t, res)
		assert.Equal(t, int64(1), res.InsertedCount)
		assert.Equal(t, 3, store.Len())
	})

	t.Run("verbose results", func(t *testing.T) {
		store := drivertest.NewStore(document.D{{Key: "_id", Value: "a"}, {Key: "qty", Value: 1}})

		batch := NewBatch(options.BulkWrite().SetVerboseResults(true))
		require.NoError(t, batch.Append(insertModel("b")))
		require.NoError(t, batch.Append(NewUpdateOneModel().
			SetFilter(document.M{"_id": "a"}).
			SetUpdate(document.D{{Key: "$inc", Value: document.M{"qty": 1}}})))
		require.NoError(t, batch.Append(NewDeleteOneModel().SetFilter(document.M{"_id": "a"})))

		res, err := batch.ExecuteWith(bg, store)
		require.NoError(t, err)

		require.NotNil(t, res.InsertResults)
		assert.Equal(t, InsertOneResult{InsertedID: "b"}, res.InsertResults[0])
		require.NotNil(t, res.UpdateResults)
		assert.Equal(t, UpdateResult{MatchedCount: 1, ModifiedCount: 1}, res.UpdateResults[1])
		require.NotNil(t, res.DeleteResults)
		assert.Equal(t, DeleteResult{DeletedCount: 1}, res.DeleteResults[2])
	})

	t.Run("write concern error rides on the result", func(t *testing.T) {
		store := drivertest.NewStore()
		store.WriteConcernError = &driver.WriteConcernError{
			Code:    64,
			Message: "waiting for replication timed out",
		}

		batch := NewBatch()
		require.NoError(t, batch.Append(insertModel("a")))

		res, err := batch.ExecuteWith(bg, store)
		require.NoError(t, err, "a write concern error alone must not fail the batch")
		require.NotNil(t, res.WriteConcernError)
		assert.Equal(t, 64, res.WriteConcernError.Code)
		assert.Equal(t, int64(1), res.InsertedCount)
	})

	t.Run("write concern error joins the exception", func(t *testing.T) {
		store := drivertest.NewStore(document.D{{Key: "_id", Value: "dup"}})
		store.WriteConcernError = &driver.WriteConcernError{Code: 64, Message: "timed out"}

		batch := NewBatch()
		require.NoError(t, batch.Append(insertModel("dup")))

		_, err := batch.ExecuteWith(bg, store)

		var exception BulkWriteException
		require.ErrorAs(t, err, &exception)
		require.NotNil(t, exception.WriteConcernError)
		assert.Equal(t, 64, exception.WriteConcernError.Code)
	})

	t.Run("fatal failure returns the partial result", func(t *testing.T) {
		fault := driver.Error{
			Code:    6,
			Message: "connection reset",
			Labels:  []string{driver.NetworkError},
		}
		exec := drivertest.NewScriptedExecutor(
			drivertest.Response{Outcome: driver.Outcome{N: 1}},
			drivertest.Response{Err: fault},
		)

		batch := NewBatch()
		require.NoError(t, batch.Append(insertModel("a")))
		require.NoError(t, batch.Append(insertModel("b")))
		require.NoError(t, batch.Append(insertModel("c")))

		res, err := batch.ExecuteWith(bg, exec)
		require.Error(t, err)
		assert.True(t, driver.IsNetworkError(err))

		var exception BulkWriteException
		assert.False(t, errors.As(err, &exception), "transport faults are not write errors")

		require.NotNil(t, res)
		assert.True(t, res.Partial)
		assert.Equal(t, int64(1), res.InsertedCount)
		assert.Equal(t, 2, len(exec.Calls()))
	})

	t.Run("unacknowledged", func(t *testing.T) {
		store := drivertest.NewStore()

		batch := NewBatch(options.BulkWrite().
			SetWriteConcern(writeconcern.New(writeconcern.W(0))))
		require.NoError(t, batch.Append(insertModel("a")))

		res, err := batch.ExecuteWith(bg, store)
		require.NoError(t, err)
		assert.False(t, res.Acknowledged)
		assert.Zero(t, res.InsertedCount)
		assert.Equal(t, 1, store.Len(), "the write is applied even though it is not reported")
	})
}
