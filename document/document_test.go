// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package document

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform(t *testing.T) {
	testCases := []struct {
		name     string
		input    interface{}
		expected D
		err      bool
	}{
		{"D passthrough", D{{"x", 1}}, D{{"x", 1}}, false},
		{"pointer to D", &D{{"x", 1}}, D{{"x", 1}}, false},
		{"M sorted", M{"b": 2, "a": 1}, D{{"a", 1}, {"b", 2}}, false},
		{"plain map sorted", map[string]interface{}{"b": 2, "a": 1}, D{{"a", 1}, {"b", 2}}, false},
		{"nil", nil, nil, true},
		{"nil D", D(nil), nil, true},
		{"typed nil pointer", (*D)(nil), nil, true},
		{"unsupported type", 42, nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Transform(tc.input)
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}

func TestLookup(t *testing.T) {
	doc := D{{"_id", "one"}, {"x", 1}, {"x", 2}}

	val, ok := doc.Lookup("_id")
	assert.True(t, ok)
	assert.Equal(t, "one", val)

	// The first matching element wins.
	val, ok = doc.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, 1, val)

	_, ok = doc.Lookup("missing")
	assert.False(t, ok)
}

func TestCopy(t *testing.T) {
	orig := D{
		{"nested", D{{"a", 1}}},
		{"map", M{"b": 2}},
		{"arr", []interface{}{1, D{{"c", 3}}}},
	}
	dup := orig.Copy()
	require.Equal(t, orig, dup)

	dup[0].Value.(D)[0].Value = 99
	dup[1].Value.(M)["b"] = 99
	dup[2].Value.([]interface{})[0] = 99

	assert.Equal(t, 1, orig[0].Value.(D)[0].Value)
	assert.Equal(t, 2, orig[1].Value.(M)["b"])
	assert.Equal(t, 1, orig[2].Value.([]interface{})[0])
}

func TestJSONRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		doc  D
		json string
	}{
		{"flat", D{{"b", int64(2)}, {"a", int64(1)}}, `{"b":2,"a":1}`},
		{"nested", D{{"outer", D{{"inner", "v"}}}}, `{"outer":{"inner":"v"}}`},
		{"array", D{{"xs", []interface{}{int64(1), int64(2)}}}, `{"xs":[1,2]}`},
		{"float", D{{"f", 1.5}}, `{"f":1.5}`},
		{"null value", D{{"n", nil}}, `{"n":null}`},
		{"empty", D{}, `{}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.doc)
			require.NoError(t, err)
			require.Equal(t, tc.json, string(b))

			var decoded D
			require.NoError(t, json.Unmarshal(b, &decoded))
			if diff := cmp.Diff(tc.doc, decoded); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnmarshalJSONOrderPreserved(t *testing.T) {
	var doc D
	require.NoError(t, json.Unmarshal([]byte(`{"z":1,"a":2,"m":3}`), &doc))
	require.Equal(t, D{{"z", int64(1)}, {"a", int64(2)}, {"m", int64(3)}}, doc)
}

func TestUnmarshalJSONRejectsNonObject(t *testing.T) {
	var doc D
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &doc))
	assert.Error(t, json.Unmarshal([]byte(`"str"`), &doc))
}

func TestEnsureID(t *testing.T) {
	t.Run("generates missing id", func(t *testing.T) {
		doc, id := EnsureID(D{{"x", 1}})
		require.Len(t, doc, 2)
		assert.Equal(t, "_id", doc[0].Key)
		assert.Equal(t, id, doc[0].Value)
		assert.NotEmpty(t, id)
	})
	t.Run("keeps existing id", func(t *testing.T) {
		orig := D{{"x", 1}, {"_id", "given"}}
		doc, id := EnsureID(orig)
		assert.Equal(t, "given", id)
		assert.Equal(t, orig, doc)
	})
}
