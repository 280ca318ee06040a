// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package log provides leveled logging for Quest. A Logger dispatches
// formatted events to stderr; named loggers (eg: "xorm") share the
// process-wide level but keep their own prefix.
package log

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Logger is the interface the rest of the codebase logs against
type Logger interface {
	Log(skip int, level Level, format string, v ...any) error
}

type consoleLogger struct {
	mu     sync.Mutex
	name   string
	out    io.Writer
	level  Level
	caller bool
}

func (l *consoleLogger) Log(skip int, level Level, format string, v ...any) error {
	if level < l.level {
		return nil
	}
	location := ""
	if l.caller {
		if _, file, line, ok := runtime.Caller(skip + 1); ok {
			if idx := strings.LastIndexByte(file, '/'); idx >= 0 {
				file = file[idx+1:]
			}
			location = fmt.Sprintf("%s:%d ", file, line)
		}
	}
	msg := format
	if len(v) > 0 {
		msg = fmt.Sprintf(format, v...)
	}
	prefix := ""
	if l.name != "" {
		prefix = "[" + l.name + "] "
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := fmt.Fprintf(l.out, "%s %s%-5s %s%s\n",
		time.Now().Format("2006/01/02 15:04:05"), prefix, level.String(), location, msg)
	return err
}

var (
	defaultLogger = &consoleLogger{out: os.Stderr, level: INFO, caller: true}

	namedMu      sync.Mutex
	namedLoggers = map[string]*consoleLogger{}
)

// Init sets the process-wide log level from its name
func Init(levelName string) {
	level := LevelFromString(levelName)
	defaultLogger.level = level
	namedMu.Lock()
	defer namedMu.Unlock()
	for _, l := range namedLoggers {
		l.level = level
	}
}

// GetLogger returns a named logger, creating it on first use
func GetLogger(name string) Logger {
	namedMu.Lock()
	defer namedMu.Unlock()
	if l, ok := namedLoggers[name]; ok {
		return l
	}
	l := &consoleLogger{name: name, out: os.Stderr, level: defaultLogger.level}
	namedLoggers[name] = l
	return l
}

// Trace records trace log
func Trace(format string, v ...any) {
	_ = defaultLogger.Log(1, TRACE, format, v...)
}

// Debug records debug log
func Debug(format string, v ...any) {
	_ = defaultLogger.Log(1, DEBUG, format, v...)
}

// Info records info log
func Info(format string, v ...any) {
	_ = defaultLogger.Log(1, INFO, format, v...)
}

// Warn records warning log
func Warn(format string, v ...any) {
	_ = defaultLogger.Log(1, WARN, format, v...)
}

// Error records error log
func Error(format string, v ...any) {
	_ = defaultLogger.Log(1, ERROR, format, v...)
}

// ErrorWithSkip records error log from the caller's caller
func ErrorWithSkip(skip int, format string, v ...any) {
	_ = defaultLogger.Log(skip+1, ERROR, format, v...)
}

// Fatal records fatal log and exits
func Fatal(format string, v ...any) {
	_ = defaultLogger.Log(1, FATAL, format, v...)
	os.Exit(1)
}

// Stack returns the stack trace skipping the given number of frames
func Stack(skip int) string {
	buf := make([]byte, 1<<16)
	n := runtime.Stack(buf, false)
	lines := strings.Split(string(buf[:n]), "\n")
	// first line is the goroutine header, every frame is two lines
	if dropped := 1 + 2*skip; dropped < len(lines) {
		return lines[0] + "\n" + strings.Join(lines[dropped:], "\n")
	}
	return string(buf[:n])
}
