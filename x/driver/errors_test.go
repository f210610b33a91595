// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package driver

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	assert.Equal(t, "(HostUnreachable) no route to host", Error{Code: 6, Message: "no route to host", Name: "HostUnreachable"}.Error())
	assert.Equal(t, "connection reset", Error{Message: "connection reset"}.Error())
}

func TestErrorLabels(t *testing.T) {
	err := Error{Message: "fault", Labels: []string{NetworkError}}
	assert.True(t, err.HasErrorLabel(NetworkError))
	assert.False(t, err.HasErrorLabel(RetryableWriteError))
}

func TestErrorRetryable(t *testing.T) {
	testCases := []struct {
		name      string
		err       Error
		retryable bool
	}{
		{"network label", Error{Labels: []string{NetworkError}}, true},
		{"retryable write label", Error{Labels: []string{RetryableWriteError}}, true},
		{"no writes performed label only", Error{Labels: []string{NoWritesPerformed}}, false},
		{"retryable code", Error{Code: 11600}, true},
		{"shutdown code", Error{Code: 91}, true},
		{"plain code", Error{Code: 8000}, false},
		{"empty", Error{}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.retryable, tc.err.Retryable())
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	err := Error{Message: "socket closed", Labels: []string{NetworkError}, Wrapped: io.ErrUnexpectedEOF}
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestIsNetworkError(t *testing.T) {
	fault := Error{Message: "reset", Labels: []string{NetworkError}}
	assert.True(t, IsNetworkError(fault))
	assert.True(t, IsNetworkError(fmt.Errorf("dispatch: %w", fault)))
	assert.False(t, IsNetworkError(Error{Message: "plain"}))
	assert.False(t, IsNetworkError(errors.New("not a driver error")))
	assert.False(t, IsNetworkError(nil))
}

func TestWriteErrorsFormatting(t *testing.T) {
	errs := WriteErrors{
		{Index: 0, Code: 11000, Message: "dup"},
		{Index: 2, Code: 121, Message: "validation"},
	}
	assert.Equal(t, "write errors: [{dup}, {validation}]", errs.Error())
	assert.Equal(t, "write errors: []", WriteErrors{}.Error())
}

func TestInvalidOperationError(t *testing.T) {
	err := InvalidOperationError{Kind: DeleteMany, Opt: "upsert"}
	assert.Equal(t, `cannot set "upsert" for deleteMany operations`, err.Error())
}

func TestExtractWriteError(t *testing.T) {
	t.Run("value", func(t *testing.T) {
		we, ok := extractWriteError(WriteError{Code: 11000, Message: "dup"})
		require.True(t, ok)
		assert.Equal(t, 11000, we.Code)
	})

	t.Run("pointer", func(t *testing.T) {
		we, ok := extractWriteError(&WriteError{Code: 121, Message: "validation"})
		require.True(t, ok)
		assert.Equal(t, 121, we.Code)
	})

	t.Run("wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("perform: %w", &WriteError{Code: 66, Message: "immutable"})
		we, ok := extractWriteError(wrapped)
		require.True(t, ok)
		assert.Equal(t, 66, we.Code)
	})

	t.Run("not a write error", func(t *testing.T) {
		_, ok := extractWriteError(errors.New("plain"))
		assert.False(t, ok)
		_, ok = extractWriteError(Error{Message: "fatal"})
		assert.False(t, ok)
	})
}
