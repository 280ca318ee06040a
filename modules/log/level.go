// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import "strings"

// Level is the level of the logger
type Level int

const (
	// TRACE represents the lowest log level
	TRACE Level = iota
	// DEBUG is for development messages
	DEBUG
	// INFO is for normal operational messages
	INFO
	// WARN is for probably-bad conditions that do not stop the request
	WARN
	// ERROR is for failed operations
	ERROR
	// FATAL logs and then exits the process
	FATAL
	// NONE discards everything
	NONE
)

var levelNames = map[Level]string{
	TRACE: "TRACE",
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
	NONE:  "NONE",
}

// String returns the upper-cased name of the level
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "INFO"
}

// LevelFromString resolves a level by its (case-insensitive) name,
// defaulting to INFO for unknown names.
func LevelFromString(name string) Level {
	for level, levelName := range levelNames {
		if strings.EqualFold(name, levelName) {
			return level
		}
	}
	return INFO
}
