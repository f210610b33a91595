// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package logger

import (
	"encoding/json"
	"io"
	"log"
	"time"
)

// IOSink writes to an io.Writer using the standard library logging solution
// and is the default sink for the logger, with the default IO being
// os.Stderr.
type IOSink struct {
	log *log.Logger
}

// Compile-time check to ensure IOSink implements the LogSink interface.
var _ LogSink = &IOSink{}

// NewIOSink will create a new IOSink that writes to the provided io.Writer.
func NewIOSink(out io.Writer) *IOSink {
	return &IOSink{
		log: log.New(out, "", 0),
	}
}

// Info will write the provided message and key-value pairs to the io.Writer
// as a JSON line.
func (sink *IOSink) Info(_ int, msg string, keysAndValues ...interface{}) {
	kvMap := make(map[string]interface{}, len(keysAndValues)/2+2)
	kvMap[KeyTimestamp] = time.Now().UnixNano()
	kvMap[KeyMessage] = msg

	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		kvMap[key] = keysAndValues[i+1]
	}

	kvBytes, err := json.Marshal(kvMap)
	if err != nil {
		sink.log.Printf("log marshal failure: %v", err)
		return
	}

	sink.log.Println(string(kvBytes))
}

// Error will write the provided error and key-value pairs to the io.Writer.
func (sink *IOSink) Error(err error, msg string, kv ...interface{}) {
	kv = append(kv, KeyFailure, err.Error())
	sink.Info(0, msg, kv...)
}
