// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bulkwrite

import (
	"github.com/ewall-cauc/mongo-cxx-driver/bulkwrite/options"
	"github.com/ewall-cauc/mongo-cxx-driver/document"
	"github.com/ewall-cauc/mongo-cxx-driver/x/driver"
)

// WriteModel is the interface satisfied by all models for bulk writes.
type WriteModel interface {
	// toOperation converts the model into the operation handed to the
	// execution engine. Field requiredness is checked by the engine's
	// Validate, not here.
	toOperation() (driver.Operation, error)
}

// InsertOneModel is used to insert a single document in a bulk write
// operation.
//
// See corresponding setter methods for documentation.
type InsertOneModel struct {
	Document interface{}
}

// NewInsertOneModel creates a new InsertOneModel.
func NewInsertOneModel() *InsertOneModel {
	return &InsertOneModel{}
}

// SetDocument specifies the document to be inserted. The document cannot be
// nil. If it does not have an _id field, one will be generated client-side
// before submission. The original document will not be modified.
func (iom *InsertOneModel) SetDocument(doc interface{}) *InsertOneModel {
	iom.Document = doc
	return iom
}

func (iom *InsertOneModel) toOperation() (driver.Operation, error) {
	doc, err := transformOptional(iom.Document)
	if err != nil {
		return driver.Operation{}, err
	}
	return driver.Operation{Kind: driver.InsertOne, Document: doc}, nil
}

// UpdateOneModel is used to update at most one document in a bulk write
// operation.
//
// See corresponding setter methods for documentation.
type UpdateOneModel struct {
	Collation    *options.Collation
	Upsert       *bool
	Filter       interface{}
	Update       interface{}
	ArrayFilters []interface{}
}

// NewUpdateOneModel creates a new UpdateOneModel.
func NewUpdateOneModel() *UpdateOneModel {
	return &UpdateOneModel{}
}

// SetFilter specifies a filter to use to select the document to update. The
// filter cannot be nil. If the filter matches multiple documents, one will be
// selected from the matching documents.
func (uom *UpdateOneModel) SetFilter(filter interface{}) *UpdateOneModel {
	uom.Filter = filter
	return uom
}

// SetUpdate specifies the modifications to be made to the selected document.
// The value must be a document containing update operators. It cannot be nil
// or empty.
func (uom *UpdateOneModel) SetUpdate(update interface{}) *UpdateOneModel {
	uom.Update = update
	return uom
}

// SetArrayFilters specifies a set of filters to determine which elements
// should be modified when updating an array field.
func (uom *UpdateOneModel) SetArrayFilters(filters []interface{}) *UpdateOneModel {
	uom.ArrayFilters = filters
	return uom
}

// SetCollation specifies a collation to use for string comparisons. The
// default is nil, meaning no collation will be used.
func (uom *UpdateOneModel) SetCollation(collation *options.Collation) *UpdateOneModel {
	uom.Collation = collation
	return uom
}

// SetUpsert specifies whether or not a new document should be inserted if no
// document matching the filter is found. If an upsert is performed, the _id
// of the new document can be retrieved from the UpsertedIDs field of the
// BulkWriteResult.
func (uom *UpdateOneModel) SetUpsert(upsert bool) *UpdateOneModel {
	uom.Upsert = &upsert
	return uom
}

func (uom *UpdateOneModel) toOperation() (driver.Operation, error) {
	return updateOperation(driver.UpdateOne, uom.Filter, uom.Update, uom.ArrayFilters, uom.Collation, uom.Upsert)
}

// UpdateManyModel is used to update multiple documents in a bulk write
// operation.
//
// See corresponding setter methods for documentation.
type UpdateManyModel struct {
	Collation    *options.Collation
	Upsert       *bool
	Filter       interface{}
	Update       interface{}
	ArrayFilters []interface{}
}

// NewUpdateManyModel creates a new UpdateManyModel.
func NewUpdateManyModel() *UpdateManyModel {
	return &UpdateManyModel{}
}

// SetFilter specifies a filter to use to select documents to update. The
// filter cannot be nil.
func (umm *UpdateManyModel) SetFilter(filter interface{}) *UpdateManyModel {
	umm.Filter = filter
	return umm
}

// SetUpdate specifies the modifications to be made to the selected documents.
// The value must be a document containing update operators. It cannot be nil
// or empty.
func (umm *UpdateManyModel) SetUpdate(update interface{}) *UpdateManyModel {
	umm.Update = update
	return umm
}

// SetArrayFilters specifies a set of filters to determine which elements
// should be modified when updating an array field.
func (umm *UpdateManyModel) SetArrayFilters(filters []interface{}) *UpdateManyModel {
	umm.ArrayFilters = filters
	return umm
}

// SetCollation specifies a collation to use for string comparisons. The
// default is nil, meaning no collation will be used.
func (umm *UpdateManyModel) SetCollation(collation *options.Collation) *UpdateManyModel {
	umm.Collation = collation
	return umm
}

// SetUpsert specifies whether or not a new document should be inserted if no
// document matching the filter is found. If an upsert is performed, the _id
// of the new document can be retrieved from the UpsertedIDs field of the
// BulkWriteResult.
func (umm *UpdateManyModel) SetUpsert(upsert bool) *UpdateManyModel {
	umm.Upsert = &upsert
	return umm
}

func (umm *UpdateManyModel) toOperation() (driver.Operation, error) {
	return updateOperation(driver.UpdateMany, umm.Filter, umm.Update, umm.ArrayFilters, umm.Collation, umm.Upsert)
}

// ReplaceOneModel is used to replace at most one document in a bulk write
// operation.
//
// See corresponding setter methods for documentation.
type ReplaceOneModel struct {
	Collation   *options.Collation
	Upsert      *bool
	Filter      interface{}
	Replacement interface{}
}

// NewReplaceOneModel creates a new ReplaceOneModel.
func NewReplaceOneModel() *ReplaceOneModel {
	return &ReplaceOneModel{}
}

// SetFilter specifies a filter to use to select the document to replace. The
// filter cannot be nil. If the filter matches multiple documents, one will be
// selected from the matching documents.
func (rom *ReplaceOneModel) SetFilter(filter interface{}) *ReplaceOneModel {
	rom.Filter = filter
	return rom
}

// SetReplacement specifies a document that will be used to replace the
// selected document. It cannot be nil and cannot contain any update
// operators.
func (rom *ReplaceOneModel) SetReplacement(rep interface{}) *ReplaceOneModel {
	rom.Replacement = rep
	return rom
}

// SetCollation specifies a collation to use for string comparisons. The
// default is nil, meaning no collation will be used.
func (rom *ReplaceOneModel) SetCollation(collation *options.Collation) *ReplaceOneModel {
	rom.Collation = collation
	return rom
}

// SetUpsert specifies whether or not the replacement document should be
// inserted if no document matching the filter is found. If an upsert is
// performed, the _id of the new document can be retrieved from the
// UpsertedIDs field of the BulkWriteResult.
func (rom *ReplaceOneModel) SetUpsert(upsert bool) *ReplaceOneModel {
	rom.Upsert = &upsert
	return rom
}

func (rom *ReplaceOneModel) toOperation() (driver.Operation, error) {
	filter, err := transformOptional(rom.Filter)
	if err != nil {
		return driver.Operation{}, err
	}
	rep, err := transformOptional(rom.Replacement)
	if err != nil {
		return driver.Operation{}, err
	}
	return driver.Operation{
		Kind:      driver.ReplaceOne,
		Filter:    filter,
		Document:  rep,
		Collation: collationDocument(rom.Collation),
		Upsert:    rom.Upsert,
	}, nil
}

// DeleteOneModel is used to delete at most one document in a bulk write
// operation.
//
// See corresponding setter methods for documentation.
type DeleteOneModel struct {
	Filter    interface{}
	Collation *options.Collation
}

// NewDeleteOneModel creates a new DeleteOneModel.
func NewDeleteOneModel() *DeleteOneModel {
	return &DeleteOneModel{}
}

// SetFilter specifies a filter to use to select the document to delete. The
// filter cannot be nil. If the filter matches multiple documents, one will be
// selected from the matching documents.
func (dom *DeleteOneModel) SetFilter(filter interface{}) *DeleteOneModel {
	dom.Filter = filter
	return dom
}

// SetCollation specifies a collation to use for string comparisons. The
// default is nil, meaning no collation will be used.
func (dom *DeleteOneModel) SetCollation(collation *options.Collation) *DeleteOneModel {
	dom.Collation = collation
	return dom
}

func (dom *DeleteOneModel) toOperation() (driver.Operation, error) {
	return deleteOperation(driver.DeleteOne, dom.Filter, dom.Collation)
}

// DeleteManyModel is used to delete multiple documents in a bulk write
// operation.
//
// See corresponding setter methods for documentation.
type DeleteManyModel struct {
	Filter    interface{}
	Collation *options.Collation
}

// NewDeleteManyModel creates a new DeleteManyModel.
func NewDeleteManyModel() *DeleteManyModel {
	return &DeleteManyModel{}
}

// SetFilter specifies a filter to use to select documents to delete. The
// filter cannot be nil.
func (dmm *DeleteManyModel) SetFilter(filter interface{}) *DeleteManyModel {
	dmm.Filter = filter
	return dmm
}

// SetCollation specifies a collation to use for string comparisons. The
// default is nil, meaning no collation will be used.
func (dmm *DeleteManyModel) SetCollation(collation *options.Collation) *DeleteManyModel {
	dmm.Collation = collation
	return dmm
}

func (dmm *DeleteManyModel) toOperation() (driver.Operation, error) {
	return deleteOperation(driver.DeleteMany, dmm.Filter, dmm.Collation)
}

func updateOperation(kind driver.Kind, filter, update interface{}, arrayFilters []interface{}, collation *options.Collation, upsert *bool) (driver.Operation, error) {
	f, err := transformOptional(filter)
	if err != nil {
		return driver.Operation{}, err
	}
	u, err := transformOptional(update)
	if err != nil {
		return driver.Operation{}, err
	}
	af, err := transformArrayFilters(arrayFilters)
	if err != nil {
		return driver.Operation{}, err
	}
	return driver.Operation{
		Kind:         kind,
		Filter:       f,
		Update:       u,
		ArrayFilters: af,
		Collation:    collationDocument(collation),
		Upsert:       upsert,
	}, nil
}

func deleteOperation(kind driver.Kind, filter interface{}, collation *options.Collation) (driver.Operation, error) {
	f, err := transformOptional(filter)
	if err != nil {
		return driver.Operation{}, err
	}
	return driver.Operation{
		Kind:      kind,
		Filter:    f,
		Collation: collationDocument(collation),
	}, nil
}

// transformOptional normalizes a model field into a document.D, mapping an
// unset field to a nil document so Validate can report the missing-field
// sentinel for the operation's kind.
func transformOptional(val interface{}) (document.D, error) {
	if val == nil {
		return nil, nil
	}
	return document.Transform(val)
}

func transformArrayFilters(filters []interface{}) ([]document.D, error) {
	if filters == nil {
		return nil, nil
	}
	docs := make([]document.D, len(filters))
	for i, f := range filters {
		d, err := document.Transform(f)
		if err != nil {
			return nil, err
		}
		docs[i] = d
	}
	return docs, nil
}

func collationDocument(collation *options.Collation) document.D {
	if collation == nil {
		return nil
	}
	return collation.Document()
}
