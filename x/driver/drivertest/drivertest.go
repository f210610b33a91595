// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package drivertest provides executor implementations for testing code
// built on the driver package without a live document store. Store applies
// writes to an in-memory collection with real match, update, and upsert
// semantics. ScriptedExecutor replays a fixed sequence of outcomes and
// faults for failure-path tests.
package drivertest // import "github.com/ewall-cauc/mongo-cxx-driver/x/driver/drivertest"

import (
	"context"

	"github.com/ewall-cauc/mongo-cxx-driver/x/driver"
)

// ExecutorFunc adapts a function to the driver.WriteExecutor interface.
type ExecutorFunc func(ctx context.Context, op driver.Operation, opts driver.PerformOptions) (driver.Outcome, error)

// Perform calls f.
func (f ExecutorFunc) Perform(ctx context.Context, op driver.Operation, opts driver.PerformOptions) (driver.Outcome, error) {
	return f(ctx, op, opts)
}
