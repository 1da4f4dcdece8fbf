package logging

import "github.com/vvka-141/tabwatch/pkg/tabwatch"

// namer is implemented by loggers that build their own component-scoped copy.
type namer interface {
	Named(name string) tabwatch.Logger
}

type namedLogger struct {
	prefix string
	next   tabwatch.Logger
}

// Named returns a Logger that prefixes every message with "[name] ".
// A nil logger yields a NullLogger; a logger with its own Named method
// decides for itself.
func Named(logger tabwatch.Logger, name string) tabwatch.Logger {
	if logger == nil {
		return NewNullLogger()
	}
	if n, ok := logger.(namer); ok {
		return n.Named(name)
	}
	return &namedLogger{prefix: "[" + name + "] ", next: logger}
}

func (l *namedLogger) Verbose(format string, args ...interface{}) {
	l.next.Verbose(l.prefix+format, args...)
}

func (l *namedLogger) Info(format string, args ...interface{}) {
	l.next.Info(l.prefix+format, args...)
}

func (l *namedLogger) Error(format string, args ...interface{}) {
	l.next.Error(l.prefix+format, args...)
}

var (
	_ tabwatch.Logger = (*ConsoleLogger)(nil)
	_ tabwatch.Logger = (*NullLogger)(nil)
	_ namer           = (*NullLogger)(nil)
)
