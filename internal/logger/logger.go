// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package logger

import (
	"io"
	"os"
)

// jobBufferSize is the number of log jobs that can be queued before new
// jobs are dropped.
const jobBufferSize = 100

// LogSink is an interface that can be implemented to provide a custom sink
// for log messages.
type LogSink interface {
	Info(int, string, ...interface{})
}

type job struct {
	level Level
	msg   ComponentMessage
}

// Logger is used to emit messages either to an IOSink or to a custom
// LogSink. Messages are printed asynchronously; Print never blocks the
// caller and drops messages when the queue is full.
type Logger struct {
	componentLevels map[Component]Level
	sink            LogSink
	jobs            chan job
}

// New constructs a new logger with the given LogSink. If the sink is nil,
// messages are written to os.Stderr using the standard library.
//
// componentLevels is variadic with the latest value taking precedence.
// Levels configured through the environment act as defaults and are
// overridden by explicit configuration.
func New(sink LogSink, componentLevels ...map[Component]Level) *Logger {
	logger := &Logger{
		componentLevels: mergeComponentLevels(
			getEnvComponentLevels(),
			mergeComponentLevels(componentLevels...),
		),
	}

	if sink != nil {
		logger.sink = sink
	} else {
		logger.sink = NewIOSink(os.Stderr)
	}

	logger.jobs = make(chan job, jobBufferSize)
	go logger.startPrinter(logger.jobs)

	return logger
}

// NewWithWriter constructs a new logger that writes to the given writer. If
// the writer is nil, output goes to os.Stderr.
func NewWithWriter(w io.Writer, componentLevels ...map[Component]Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return New(NewIOSink(w), componentLevels...)
}

// Close stops the logger's printer goroutine. Messages queued before Close
// are still printed.
func (logger *Logger) Close() {
	close(logger.jobs)
}

// Is reports whether the given level is enabled for the given component. A
// nil logger logs nothing.
func (logger *Logger) Is(level Level, component Component) bool {
	if logger == nil {
		return false
	}
	if lvl, ok := logger.componentLevels[component]; ok {
		return lvl >= level
	}
	return logger.componentLevels[ComponentAll] >= level
}

// Print enqueues the message for printing if its level is enabled. The send
// is non-blocking: when the queue is full the message is dropped rather
// than stalling execution.
func (logger *Logger) Print(level Level, msg ComponentMessage) {
	if !logger.Is(level, msg.Component()) {
		return
	}

	select {
	case logger.jobs <- job{level, msg}:
	default:
	}
}

func (logger *Logger) startPrinter(jobs <-chan job) {
	for j := range jobs {
		kv := append([]interface{}{}, j.msg.KeysAndValues()...)
		logger.sink.Info(int(j.level)-DiffToInfo, j.msg.Message(), kv...)
	}
}

func mergeComponentLevels(componentLevels ...map[Component]Level) map[Component]Level {
	merged := make(map[Component]Level)
	for _, levels := range componentLevels {
		for component, level := range levels {
			merged[component] = level
		}
	}
	return merged
}
