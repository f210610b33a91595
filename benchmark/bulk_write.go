// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package benchmark

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ewall-cauc/mongo-cxx-driver/bulkwrite"
	"github.com/ewall-cauc/mongo-cxx-driver/bulkwrite/options"
	"github.com/ewall-cauc/mongo-cxx-driver/document"
	"github.com/ewall-cauc/mongo-cxx-driver/x/driver/drivertest"
)

// seededStore builds a store holding iters copies of doc, each with a
// distinct integer _id so the write cases can target them directly.
func seededStore(doc document.D, iters int) *drivertest.Store {
	seed := make([]document.D, 0, iters)
	for i := 0; i < iters; i++ {
		idDoc := make(document.D, 0, len(doc)+1)
		idDoc = append(idDoc, document.E{Key: "_id", Value: i})
		idDoc = append(idDoc, doc...)
		seed = append(seed, idDoc)
	}
	return drivertest.NewStore(seed...)
}

func singleInsertCase(ctx context.Context, tm TimerManager, iters int, data string) error {
	doc, err := loadSourceDocument(getProjectRoot(), dataDir, perfDataDir, data)
	if err != nil {
		return err
	}
	store := drivertest.NewStore()

	tm.ResetTimer()

	for i := 0; i < iters; i++ {
		res, err := bulkwrite.BulkWrite(ctx, store, []bulkwrite.WriteModel{
			bulkwrite.NewInsertOneModel().SetDocument(doc),
		})
		if err != nil {
			return err
		}
		if res.InsertedCount != 1 {
			return errors.New("insert was not applied")
		}
	}

	tm.StopTimer()

	return nil
}

func SingleInsertSmallDocument(ctx context.Context, tm TimerManager, iters int) error {
	return singleInsertCase(ctx, tm, iters, smallDocData)
}

func SingleInsertLargeDocument(ctx context.Context, tm TimerManager, iters int) error {
	return singleInsertCase(ctx, tm, iters, largeDocData)
}

func SingleUpdateOneByID(ctx context.Context, tm TimerManager, iters int) error {
	doc, err := loadSourceDocument(getProjectRoot(), dataDir, perfDataDir, smallDocData)
	if err != nil {
		return err
	}
	store := seededStore(doc, iters)

	tm.ResetTimer()

	for i := 0; i < iters; i++ {
		res, err := bulkwrite.BulkWrite(ctx, store, []bulkwrite.WriteModel{
			bulkwrite.NewUpdateOneModel().
				SetFilter(document.D{{Key: "_id", Value: i}}).
				SetUpdate(document.D{{Key: "$inc", Value: document.D{{Key: "qty", Value: 1}}}}),
		})
		if err != nil {
			return err
		}
		if res.MatchedCount != 1 {
			return errors.New("update did not match")
		}
	}

	tm.StopTimer()

	return nil
}

func multiInsertCase(ctx context.Context, tm TimerManager, iters int, data string) error {
	doc, err := loadSourceDocument(getProjectRoot(), dataDir, perfDataDir, data)
	if err != nil {
		return err
	}
	store := drivertest.NewStore()

	models := make([]bulkwrite.WriteModel, 0, iters)
	for i := 0; i < iters; i++ {
		models = append(models, bulkwrite.NewInsertOneModel().SetDocument(doc))
	}

	tm.ResetTimer()

	res, err := bulkwrite.BulkWrite(ctx, store, models)
	if err != nil {
		return err
	}

	tm.StopTimer()

	if res.InsertedCount != int64(iters) {
		return errors.New("bulk operation did not complete")
	}

	return nil
}

func MultiInsertSmallDocument(ctx context.Context, tm TimerManager, iters int) error {
	return multiInsertCase(ctx, tm, iters, smallDocData)
}

func MultiInsertLargeDocument(ctx context.Context, tm TimerManager, iters int) error {
	return multiInsertCase(ctx, tm, iters, largeDocData)
}

func MultiDeleteMany(ctx context.Context, tm TimerManager, iters int) error {
	doc, err := loadSourceDocument(getProjectRoot(), dataDir, perfDataDir, smallDocData)
	if err != nil {
		return err
	}
	store := seededStore(doc, iters)

	tm.ResetTimer()

	res, err := bulkwrite.BulkWrite(ctx, store, []bulkwrite.WriteModel{
		bulkwrite.NewDeleteManyModel().SetFilter(document.D{}),
	})
	if err != nil {
		return err
	}

	tm.StopTimer()

	if res.DeletedCount != int64(iters) {
		return errors.New("delete did not clear the collection")
	}

	return nil
}

// multiMixedCase exercises all three write families in one batch. The
// inserts, updates, and deletes target disjoint _id ranges so the counts
// are the same whether the batch runs ordered or unordered.
func multiMixedCase(ctx context.Context, tm TimerManager, iters int, ordered bool) error {
	doc, err := loadSourceDocument(getProjectRoot(), dataDir, perfDataDir, smallDocData)
	if err != nil {
		return err
	}
	store := seededStore(doc, iters)
	half := iters / 2

	models := make([]bulkwrite.WriteModel, 0, 2*iters)
	for i := 0; i < iters; i++ {
		idDoc := make(document.D, 0, len(doc)+1)
		idDoc = append(idDoc, document.E{Key: "_id", Value: iters + i})
		idDoc = append(idDoc, doc...)
		models = append(models, bulkwrite.NewInsertOneModel().SetDocument(idDoc))
	}
	for i := 0; i < half; i++ {
		models = append(models, bulkwrite.NewUpdateOneModel().
			SetFilter(document.D{{Key: "_id", Value: i}}).
			SetUpdate(document.D{{Key: "$inc", Value: document.D{{Key: "qty", Value: 1}}}}))
	}
	for i := half; i < iters; i++ {
		models = append(models, bulkwrite.NewDeleteOneModel().
			SetFilter(document.D{{Key: "_id", Value: i}}))
	}

	tm.ResetTimer()

	res, err := bulkwrite.BulkWrite(ctx, store, models, options.BulkWrite().SetOrdered(ordered))
	if err != nil {
		return err
	}

	tm.StopTimer()

	if res.InsertedCount != int64(iters) || res.MatchedCount != int64(half) || res.DeletedCount != int64(iters-half) {
		return errors.Errorf("mixed bulk write incomplete: %d inserted, %d matched, %d deleted",
			res.InsertedCount, res.MatchedCount, res.DeletedCount)
	}

	return nil
}

func MultiMixedOrderedWrites(ctx context.Context, tm TimerManager, iters int) error {
	return multiMixedCase(ctx, tm, iters, true)
}

func MultiMixedUnorderedWrites(ctx context.Context, tm TimerManager, iters int) error {
	return multiMixedCase(ctx, tm, iters, false)
}
