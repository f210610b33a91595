// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package helpers

import (
	"encoding/json"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ewall-cauc/mongo-cxx-driver/document"
)

// FindJSONFilesInDir finds the JSON files in a directory.
func FindJSONFilesInDir(t *testing.T, dir string) []string {
	t.Helper()

	files := make([]string, 0)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}

		files = append(files, entry.Name())
	}

	return files
}

// DecodeDocuments decodes a JSON array into a slice of ordered documents.
// A nil or empty payload decodes to nil.
func DecodeDocuments(t *testing.T, data []byte) []document.D {
	t.Helper()

	if len(data) == 0 {
		return nil
	}

	var docs []document.D
	require.NoError(t, json.Unmarshal(data, &docs))

	return docs
}
