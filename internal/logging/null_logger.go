package logging

import "github.com/vvka-141/tabwatch/pkg/tabwatch"

// NullLogger discards everything. Components built without a real logger,
// and most tests, use it.
type NullLogger struct{}

// NewNullLogger creates a new NullLogger.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(string, ...interface{}) {}
func (l *NullLogger) Info(string, ...interface{})    {}
func (l *NullLogger) Error(string, ...interface{})   {}

// Named returns l itself: there is no output to prefix.
func (l *NullLogger) Named(string) tabwatch.Logger {
	return l
}
