// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package logger

import "strings"

// DiffToInfo is the number of levels that come before the "Info" level. This
// ensures that "Info" is the 0th level passed to a LogSink, matching the
// convention used by logr-style sinks.
const DiffToInfo = 1

// Level is an enumeration representing the supported log severity levels.
//
// The order of the logging levels is important: sinks receive the level as
// an offset from InfoLevel, so any additions before InfoLevel must update
// DiffToInfo.
type Level int

const (
	// OffLevel suppresses logging.
	OffLevel Level = iota

	// InfoLevel enables logging of informational messages. These logs are
	// high-level information about normal behavior, for example a batch
	// finishing execution.
	InfoLevel

	// DebugLevel enables logging of debug messages. These logs can be
	// voluminous and are intended for detailed information that may be
	// helpful when debugging an application, for example an individual
	// operation being submitted.
	DebugLevel
)

// LevelLiteral is a string form of a log level, meant to be read from
// environment variables and mapped to a supported Level.
type LevelLiteral string

const (
	OffLevelLiteral    LevelLiteral = "off"
	ErrorLevelLiteral  LevelLiteral = "error"
	WarnLevelLiteral   LevelLiteral = "warn"
	NoticeLevelLiteral LevelLiteral = "notice"
	InfoLevelLiteral   LevelLiteral = "info"
	DebugLevelLiteral  LevelLiteral = "debug"
	TraceLevelLiteral  LevelLiteral = "trace"
)

// Level returns the Level associated with the level literal. Literals more
// severe than info map to InfoLevel and literals more verbose than debug map
// to DebugLevel; anything unrecognized is treated as off.
func (levell LevelLiteral) Level() Level {
	switch levell {
	case ErrorLevelLiteral, WarnLevelLiteral, NoticeLevelLiteral, InfoLevelLiteral:
		return InfoLevel
	case DebugLevelLiteral, TraceLevelLiteral:
		return DebugLevel
	default:
		return OffLevel
	}
}

// ParseLevel returns the Level for the given string, compared
// case-insensitively against the level literals.
func ParseLevel(s string) Level {
	return LevelLiteral(strings.ToLower(strings.TrimSpace(s))).Level()
}
