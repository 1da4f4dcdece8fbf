package tabwatch

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for every failure kind of the discovery and load pipeline.
// These enable callers to distinguish error kinds using errors.Is().
//
// Example usage:
//
//	file, err := discovery.DiscoverLatestValidFile(scope)
//	if errors.Is(err, tabwatch.ErrNoCandidates) {
//	    // Directory is readable but holds nothing to load
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDirectory indicates the data directory is missing or is not a directory.
	ErrDirectory = errors.New("data directory unavailable")

	// ErrNoCandidates indicates no file with an allowed extension was found.
	ErrNoCandidates = errors.New("no candidate files")

	// ErrUnsupportedExtension indicates the file extension is not in the allow-list.
	ErrUnsupportedExtension = errors.New("unsupported file extension")

	// ErrFileTooLarge indicates the file exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrEmptyFile indicates the file has no non-blank line.
	ErrEmptyFile = errors.New("file is empty")

	// ErrLoad indicates a decode or parse failure while loading a table.
	ErrLoad = errors.New("load failed")

	// ErrUnsupportedOperation indicates there is no reader or writer for an allowed extension.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrSave indicates writing an edited table back to disk failed.
	ErrSave = errors.New("save failed")
)

// LoadError wraps the underlying cause of a failed load.
// It matches both ErrLoad and its cause with errors.Is / errors.As.
type LoadError struct {
	Path  string // File being loaded
	Stage string // Pipeline stage that failed (e.g. "encoding", "parse")
	Err   error  // Underlying cause
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("%s: %s (%s): %v", ErrLoad, e.Path, e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrLoad, e.Path, e.Err)
}

// Unwrap exposes both the ErrLoad kind and the original cause.
func (e *LoadError) Unwrap() []error {
	return []error{ErrLoad, e.Err}
}

// NewLoadError creates a LoadError for the given path and stage.
func NewLoadError(path, stage string, err error) *LoadError {
	return &LoadError{Path: path, Stage: stage, Err: err}
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrDirectory):
		return ExitDirectoryError
	case errors.Is(err, ErrNoCandidates):
		return ExitNoCandidates
	case errors.Is(err, ErrUnsupportedExtension):
		return ExitUnsupportedExtension
	case errors.Is(err, ErrFileTooLarge):
		return ExitFileTooLarge
	case errors.Is(err, ErrEmptyFile):
		return ExitEmptyFile
	case errors.Is(err, ErrLoad):
		return ExitLoadFailed
	case errors.Is(err, ErrUnsupportedOperation):
		return ExitUnsupportedOperation
	case errors.Is(err, ErrSave):
		return ExitSaveFailed
	}

	if isUsageError(err) {
		return ExitUsageError
	}

	return ExitGeneralError
}

// isUsageError recognizes cobra's argument and flag errors, which are plain strings.
func isUsageError(err error) bool {
	msg := err.Error()
	for _, pattern := range []string{
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"accepts ",
		"requires at least",
		"requires at most",
		"required flag",
		"invalid argument",
		"flag needs an argument",
		"missing required argument",
	} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// UserMessage returns the message shown to a person for a failed request.
// Each error kind gets its own wording; unclassified errors get a generic one.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return "Configuration error: " + err.Error()
	case errors.Is(err, ErrDirectory):
		return "File access error: " + err.Error()
	case errors.Is(err, ErrNoCandidates):
		return "Nothing to load: " + err.Error()
	case errors.Is(err, ErrUnsupportedExtension):
		return "Unsupported file type: " + err.Error()
	case errors.Is(err, ErrFileTooLarge):
		return "File is too large: " + err.Error()
	case errors.Is(err, ErrEmptyFile):
		return "File has no data: " + err.Error()
	case errors.Is(err, ErrLoad):
		return "Data loading error: " + err.Error()
	case errors.Is(err, ErrUnsupportedOperation):
		return "Unsupported operation: " + err.Error()
	case errors.Is(err, ErrSave):
		return "Error saving file: " + err.Error()
	}

	return "Unexpected error: " + err.Error()
}
