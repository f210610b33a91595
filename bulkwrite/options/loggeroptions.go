// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package options

import (
	"io"

	"github.com/ewall-cauc/mongo-cxx-driver/internal/logger"
)

// LogLevel is an enumeration representing the supported log severity levels.
type LogLevel int

const (
	// InfoLogLevel enables logging of informational messages. These logs
	// are high-level information about normal behavior.
	InfoLogLevel LogLevel = LogLevel(logger.InfoLevel)

	// DebugLogLevel enables logging of debug messages. These logs can be
	// voluminous and are intended for detailed information that may be
	// helpful when debugging an application. Example: an operation
	// starting.
	DebugLogLevel LogLevel = LogLevel(logger.DebugLevel)
)

// LogComponent is an enumeration representing the "components" which can be
// logged against. A LogLevel can be configured on a per-component basis.
type LogComponent int

const (
	// AllLogComponents enables logging for all components.
	AllLogComponents LogComponent = LogComponent(logger.ComponentAll)

	// BatchLogComponent enables batch lifecycle logging.
	BatchLogComponent LogComponent = LogComponent(logger.ComponentBatch)

	// OperationLogComponent enables per-operation logging.
	OperationLogComponent LogComponent = LogComponent(logger.ComponentOperation)
)

// LogSink is an interface that can be implemented to provide a custom sink
// for log messages.
type LogSink interface {
	Info(int, string, ...interface{})
}

// ComponentLevels maps LogComponents to LogLevels.
type ComponentLevels map[LogComponent]LogLevel

// LoggerOptions represent options used to configure logging.
type LoggerOptions struct {
	ComponentLevels ComponentLevels

	// Sink is the LogSink that will be used to log messages. If this is
	// nil, the standard logging library is used.
	Sink LogSink

	// Output is the writer to write logs to. If nil, the default is
	// os.Stderr. Output is ignored if Sink is set.
	Output io.Writer
}

// Logger creates a new LoggerOptions instance.
func Logger() *LoggerOptions {
	return &LoggerOptions{
		ComponentLevels: ComponentLevels{},
	}
}

// SetComponentLevel sets the LogLevel value for a LogComponent.
func (opts *LoggerOptions) SetComponentLevel(component LogComponent, level LogLevel) *LoggerOptions {
	opts.ComponentLevels[component] = level

	return opts
}

// SetSink sets the LogSink to use for logging.
func (opts *LoggerOptions) SetSink(sink LogSink) *LoggerOptions {
	opts.Sink = sink

	return opts
}

// SetOutput sets the writer to write logs to.
func (opts *LoggerOptions) SetOutput(output io.Writer) *LoggerOptions {
	opts.Output = output

	return opts
}
