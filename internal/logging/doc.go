// Package logging provides concrete implementations of the tabwatch.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr, optionally mirrored to a log file
//   - NullLogger: Discards all messages (useful for testing)
//   - Named: Wraps any Logger and prefixes messages with a component name
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
