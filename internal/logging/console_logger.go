package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// ConsoleLogger writes log messages to stderr and, when configured, to a
// second writer such as a log file. Lines sent to the extra writer carry a
// timestamp so the file stays useful after the terminal is gone.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	out     io.Writer
	extra   io.Writer
	now     func() time.Time
	mu      sync.Mutex
}

// NewConsoleLogger creates a new ConsoleLogger writing to stderr.
// If verbose is true, Verbose() calls will produce output.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return &ConsoleLogger{
		verbose: verbose,
		now:     time.Now,
	}
}

// WithFile mirrors every message to w with a timestamp prefix.
func (l *ConsoleLogger) WithFile(w io.Writer) *ConsoleLogger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.extra = w
	return l
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write("[VERBOSE] ", "VERBOSE", format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write("", "INFO", format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write("[ERROR] ", "ERROR", format, args)
}

func (l *ConsoleLogger) write(prefix, level, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	out := l.out
	if out == nil {
		// Resolved per call so tests that swap os.Stderr observe the output.
		out = os.Stderr
	}
	fmt.Fprint(out, prefix+msg+"\n")

	if l.extra != nil {
		fmt.Fprintf(l.extra, "%s - %s - %s\n", l.now().Format("2006-01-02 15:04:05"), level, msg)
	}
}
