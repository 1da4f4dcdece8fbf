package tabwatch

import "time"

// ErrorClassifier decides whether a failed refresh is worth repeating.
type ErrorClassifier interface {
	// IsTransient reports whether err may clear on its own, for example
	// because the file was still being written when it was read.
	IsTransient(err error) bool
}

// BackoffStrategy calculates the wait before the next attempt.
type BackoffStrategy interface {
	// NextDelay returns the wait before retry number attempt (zero-indexed).
	NextDelay(attempt int) time.Duration

	// MaxAttempts returns the number of retries allowed (0 = none, -1 = unlimited).
	MaxAttempts() int
}
