// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package drivertest

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/ewall-cauc/mongo-cxx-driver/x/driver"
)

// Response is one scripted reply to a Perform call.
type Response struct {
	Outcome driver.Outcome
	Err     error
}

// ScriptedExecutor replays a fixed sequence of responses to Perform calls
// and records every operation it receives. It deliberately does not
// implement the batch fast path so each scripted response maps to exactly
// one operation. An exhausted script fails the call, which surfaces tests
// that perform more writes than they queued responses for.
type ScriptedExecutor struct {
	mu        sync.Mutex
	responses []Response
	calls     []driver.Operation
}

// NewScriptedExecutor returns an executor that replays the given responses
// in order.
func NewScriptedExecutor(responses ...Response) *ScriptedExecutor {
	return &ScriptedExecutor{responses: responses}
}

// Queue appends responses to the script.
func (se *ScriptedExecutor) Queue(responses ...Response) {
	se.mu.Lock()
	defer se.mu.Unlock()

	se.responses = append(se.responses, responses...)
}

// Perform consumes and returns the next scripted response.
func (se *ScriptedExecutor) Perform(ctx context.Context, op driver.Operation, opts driver.PerformOptions) (driver.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return driver.Outcome{}, err
	}

	se.mu.Lock()
	defer se.mu.Unlock()

	se.calls = append(se.calls, op)
	if len(se.responses) == 0 {
		return driver.Outcome{}, errors.Errorf("script exhausted after %d calls", len(se.calls))
	}
	r := se.responses[0]
	se.responses = se.responses[1:]
	return r.Outcome, r.Err
}

// Calls returns the operations received so far in call order.
func (se *ScriptedExecutor) Calls() []driver.Operation {
	se.mu.Lock()
	defer se.mu.Unlock()

	calls := make([]driver.Operation, len(se.calls))
	copy(calls, se.calls)
	return calls
}

// Remaining returns the number of unconsumed responses.
func (se *ScriptedExecutor) Remaining() int {
	se.mu.Lock()
	defer se.mu.Unlock()

	return len(se.responses)
}
