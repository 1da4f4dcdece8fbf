package tabwatch

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess              = 0  // Command completed successfully
	ExitGeneralError         = 1  // Unknown or unclassified error
	ExitUsageError           = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic                = 3  // Internal panic (unexpected crash)
	ExitConfigError          = 10 // Invalid configuration
	ExitDirectoryError       = 20 // Data directory missing or not a directory
	ExitNoCandidates         = 21 // No file with an allowed extension
	ExitUnsupportedExtension = 22 // Extension outside the allow-list
	ExitFileTooLarge         = 23 // File exceeds the size limit
	ExitEmptyFile            = 24 // File has no non-blank line
	ExitLoadFailed           = 25 // Decode or parse failure
	ExitUnsupportedOperation = 26 // No reader/writer for the extension
	ExitSaveFailed           = 27 // Writing an edited table failed
)

const (
	// DefaultDataDir is the directory scanned when none is configured.
	DefaultDataDir = "/mnt/data"

	// DefaultMaxFileSizeMB is the default upper bound enforced by size validation.
	DefaultMaxFileSizeMB = 50.0

	// DefaultEncodingDetectBytes is the default sample size fed to the charset detector.
	DefaultEncodingDetectBytes = 1000

	// BytesPerMB converts byte counts into the megabytes compared against MaxFileSizeMB.
	BytesPerMB = 1024 * 1024

	// DelimiterSampleLines is the number of leading lines inspected by delimiter detection.
	DelimiterSampleLines = 5

	// DefaultEncoding is used when the charset detector has no answer.
	DefaultEncoding = "UTF-8"
)

// DefaultAllowedExtensions returns the extensions accepted when none are configured.
// A fresh slice is returned on every call.
func DefaultAllowedExtensions() []string {
	return []string{".csv", ".txt", ".xls", ".xlsx"}
}

// DelimiterCandidates returns the fixed candidate set for delimiter detection.
// Order matters: on equal counts the earlier candidate wins.
// A fresh slice is returned on every call.
func DelimiterCandidates() []rune {
	return []rune{',', '\t', ';', '|'}
}
