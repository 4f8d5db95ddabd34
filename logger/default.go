package logger

import (
	"sync"

	"github.com/iqis/logthis/core"
)

var (
	defaultMu sync.RWMutex
	// The default logger starts as a no-op (full range, no sinks), so
	// importing this package has no load-time side effects. Configure
	// it explicitly with SetDefault.
	defaultLogger = New()
)

// Default returns the process-wide default logger
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide default logger. Passing nil
// restores the no-op logger.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if l == nil {
		l = New()
	}
	defaultLogger = l
}

// Package-level convenience functions using the default logger

// Log dispatches an event through the default logger
func Log(evt core.Event) (core.Event, bool) {
	return Default().Log(evt)
}

// Trace logs a TRACE message using the default logger
func Trace(msg string, fields ...core.Field) {
	Default().Trace(msg, fields...)
}

// Debug logs a DEBUG message using the default logger
func Debug(msg string, fields ...core.Field) {
	Default().Debug(msg, fields...)
}

// Info logs an INFO message using the default logger
func Info(msg string, fields ...core.Field) {
	Default().Info(msg, fields...)
}

// Success logs a SUCCESS message using the default logger
func Success(msg string, fields ...core.Field) {
	Default().Success(msg, fields...)
}

// Warning logs a WARNING message using the default logger
func Warning(msg string, fields ...core.Field) {
	Default().Warning(msg, fields...)
}

// Error logs an ERROR message using the default logger
func Error(msg string, fields ...core.Field) {
	Default().Error(msg, fields...)
}

// Critical logs a CRITICAL message using the default logger
func Critical(msg string, fields ...core.Field) {
	Default().Critical(msg, fields...)
}

// Fatal logs a FATAL message using the default logger
func Fatal(msg string, fields ...core.Field) {
	Default().Fatal(msg, fields...)
}
