// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package benchmark

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/ewall-cauc/mongo-cxx-driver/document"
)

const (
	dataDir     = "data"
	perfDataDir = "perf"

	flatDocData  = "flat_document.json"
	deepDocData  = "deep_document.json"
	smallDocData = "small_doc.json"
	largeDocData = "large_doc.json"

	flatDocKeys = 36
	deepDocKeys = 5
)

// utility functions for the codec benchmarks

func loadSourceDocument(pathParts ...string) (document.D, error) {
	data, err := os.ReadFile(filepath.Join(pathParts...))
	if err != nil {
		return nil, err
	}
	var doc document.D
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc) == 0 {
		return nil, errors.New("empty source document")
	}

	return doc, nil
}

func loadSourceRaw(pathParts ...string) ([]byte, error) {
	doc, err := loadSourceDocument(pathParts...)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	return raw, nil
}

func jsonDocumentEncoding(ctx context.Context, tm TimerManager, iters int, dataSet string) error {
	doc, err := loadSourceDocument(getProjectRoot(), dataDir, perfDataDir, dataSet)
	if err != nil {
		return err
	}

	tm.ResetTimer()

	for i := 0; i < iters; i++ {
		out, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		if len(out) == 0 {
			return errors.New("marshaling error")
		}
	}

	return nil
}

func jsonDocumentDecoding(ctx context.Context, tm TimerManager, iters int, dataSet string, keys int) error {
	raw, err := loadSourceRaw(getProjectRoot(), dataDir, perfDataDir, dataSet)
	if err != nil {
		return err
	}

	tm.ResetTimer()

	for i := 0; i < iters; i++ {
		var out document.D
		if err := json.Unmarshal(raw, &out); err != nil {
			return err
		}
		if len(out) != keys {
			return errors.New("document parsing error")
		}
	}
	return nil
}

func JSONFlatDocumentEncoding(ctx context.Context, tm TimerManager, iters int) error {
	return jsonDocumentEncoding(ctx, tm, iters, flatDocData)
}

func JSONFlatDocumentDecoding(ctx context.Context, tm TimerManager, iters int) error {
	return jsonDocumentDecoding(ctx, tm, iters, flatDocData, flatDocKeys)
}

func JSONDeepDocumentEncoding(ctx context.Context, tm TimerManager, iters int) error {
	return jsonDocumentEncoding(ctx, tm, iters, deepDocData)
}

func JSONDeepDocumentDecoding(ctx context.Context, tm TimerManager, iters int) error {
	return jsonDocumentDecoding(ctx, tm, iters, deepDocData, deepDocKeys)
}

func jsonMapDecoding(ctx context.Context, tm TimerManager, iters int, dataSet string) error {
	raw, err := loadSourceRaw(getProjectRoot(), dataDir, perfDataDir, dataSet)
	if err != nil {
		return err
	}

	tm.ResetTimer()

	for i := 0; i < iters; i++ {
		out := make(map[string]interface{})
		if err := json.Unmarshal(raw, &out); err != nil {
			return err
		}
		if len(out) == 0 {
			return errors.New("decoding failed")
		}
	}
	return nil
}

func jsonMapEncoding(ctx context.Context, tm TimerManager, iters int, dataSet string) error {
	raw, err := loadSourceRaw(getProjectRoot(), dataDir, perfDataDir, dataSet)
	if err != nil {
		return err
	}

	doc := make(map[string]interface{})
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}

	tm.ResetTimer()

	for i := 0; i < iters; i++ {
		buf, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		if len(buf) == 0 {
			return errors.New("encoding failed")
		}
	}

	return nil
}

func JSONFlatMapDecoding(ctx context.Context, tm TimerManager, iters int) error {
	return jsonMapDecoding(ctx, tm, iters, flatDocData)
}

func JSONFlatMapEncoding(ctx context.Context, tm TimerManager, iters int) error {
	return jsonMapEncoding(ctx, tm, iters, flatDocData)
}

func JSONDeepMapDecoding(ctx context.Context, tm TimerManager, iters int) error {
	return jsonMapDecoding(ctx, tm, iters, deepDocData)
}

func JSONDeepMapEncoding(ctx context.Context, tm TimerManager, iters int) error {
	return jsonMapEncoding(ctx, tm, iters, deepDocData)
}

// FlatMapTransform measures normalizing a plain map into a document, the
// path every map-typed filter and update takes before execution.
func FlatMapTransform(ctx context.Context, tm TimerManager, iters int) error {
	raw, err := loadSourceRaw(getProjectRoot(), dataDir, perfDataDir, flatDocData)
	if err != nil {
		return err
	}

	src := make(map[string]interface{})
	if err := json.Unmarshal(raw, &src); err != nil {
		return err
	}

	tm.ResetTimer()

	for i := 0; i < iters; i++ {
		doc, err := document.Transform(src)
		if err != nil {
			return err
		}
		if len(doc) != flatDocKeys {
			return errors.New("transform dropped fields")
		}
	}
	return nil
}
