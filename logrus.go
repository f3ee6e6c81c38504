// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package catalyst

import (
	"github.com/sirupsen/logrus"
)

// LogrusLogger adapts a sirupsen/logrus logger to the Logger interface.
//
// Key-value pairs are converted to logrus fields, so the output honors
// whatever formatter the logrus logger is configured with.
//
// Example:
//
//	l := logrus.New()
//	l.SetLevel(logrus.DebugLevel)
//	client, _ := catalyst.NewClient("172.16.1.1",
//	    catalyst.Username("admin"),
//	    catalyst.Password("secret"),
//	    catalyst.WithLogger(catalyst.NewLogrusLogger(l)))
type LogrusLogger struct {
	logger *logrus.Logger
}

// NewLogrusLogger creates a LogrusLogger wrapping the given logrus logger.
// Passing nil wraps logrus.StandardLogger().
func NewLogrusLogger(logger *logrus.Logger) *LogrusLogger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogrusLogger{logger: logger}
}

// Debug logs a debug message with structured key-value pairs
func (l *LogrusLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.WithFields(logrusFields(keysAndValues)).Debug(msg)
}

// Info logs an informational message with structured key-value pairs
func (l *LogrusLogger) Info(msg string, keysAndValues ...any) {
	l.logger.WithFields(logrusFields(keysAndValues)).Info(msg)
}

// Warn logs a warning message with structured key-value pairs
func (l *LogrusLogger) Warn(msg string, keysAndValues ...any) {
	l.logger.WithFields(logrusFields(keysAndValues)).Warn(msg)
}

// Error logs an error message with structured key-value pairs
func (l *LogrusLogger) Error(msg string, keysAndValues ...any) {
	l.logger.WithFields(logrusFields(keysAndValues)).Error(msg)
}

// logrusFields converts alternating key-value pairs into logrus fields.
// Values are sanitized the same way DefaultLogger sanitizes them; an odd
// trailing key is marked explicitly rather than dropped.
func logrusFields(keysAndValues []any) logrus.Fields {
	fields := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := sanitizeLogValue(keysAndValues[i])
		if i+1 < len(keysAndValues) {
			fields[key] = sanitizeLogValue(keysAndValues[i+1])
		} else {
			fields[key] = "<MISSING>"
		}
	}
	return fields
}
