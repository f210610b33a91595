// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package logger

import (
	"os"
	"strings"
)

// Component is an enumeration representing the "components" which can be
// logged against. A Level can be configured on a per-component basis.
type Component int

const (
	// ComponentAll enables logging for all components.
	ComponentAll Component = iota

	// ComponentBatch enables batch lifecycle logging.
	ComponentBatch

	// ComponentOperation enables per-operation logging.
	ComponentOperation
)

// ComponentLiteral is the string form of a component, used when configuring
// levels through the environment.
type ComponentLiteral string

const (
	ComponentLiteralAll       ComponentLiteral = "all"
	ComponentLiteralBatch     ComponentLiteral = "batch"
	ComponentLiteralOperation ComponentLiteral = "operation"
)

// Component returns the Component for the given ComponentLiteral.
func (componentLiteral ComponentLiteral) Component() Component {
	switch componentLiteral {
	case ComponentLiteralBatch:
		return ComponentBatch
	case ComponentLiteralOperation:
		return ComponentOperation
	default:
		return ComponentAll
	}
}

// componentEnvVar is an enumeration representing the environment variables
// which can be used to configure a component's log level.
type componentEnvVar string

const (
	componentEnvVarAll       componentEnvVar = "BULKWRITE_LOG_ALL"
	componentEnvVarBatch     componentEnvVar = "BULKWRITE_LOG_BATCH"
	componentEnvVarOperation componentEnvVar = "BULKWRITE_LOG_OPERATION"
)

var allComponentEnvVars = []componentEnvVar{
	componentEnvVarAll,
	componentEnvVarBatch,
	componentEnvVarOperation,
}

func (env componentEnvVar) component() Component {
	switch env {
	case componentEnvVarBatch:
		return ComponentBatch
	case componentEnvVarOperation:
		return ComponentOperation
	default:
		return ComponentAll
	}
}

// getEnvComponentLevels returns the log levels configured through the
// environment. Unset variables are omitted so explicit configuration can
// take precedence.
func getEnvComponentLevels() map[Component]Level {
	levels := make(map[Component]Level)
	for _, env := range allComponentEnvVars {
		val := os.Getenv(string(env))
		if val == "" {
			continue
		}
		levels[env.component()] = LevelLiteral(strings.ToLower(val)).Level()
	}
	return levels
}

// ComponentMessage is the interface implemented by the structured messages
// emitted against a component.
type ComponentMessage interface {
	Component() Component
	Message() string
	KeysAndValues() []interface{}
}
