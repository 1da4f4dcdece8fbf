package tabwatch

// FileValidator runs the structural checks a file must pass before it is loaded.
// Checks fail fast: the first failing check returns and later checks are skipped.
type FileValidator interface {
	// ValidateExtension returns ErrUnsupportedExtension for extensions outside the allow-list.
	ValidateExtension(path string) error

	// ValidateSize returns ErrFileTooLarge when the file exceeds the size limit.
	ValidateSize(path string) error

	// ValidateNotEmpty returns ErrEmptyFile when no line has non-whitespace content.
	ValidateNotEmpty(path string) error

	// Validate runs extension, size and emptiness checks in that order.
	Validate(path string) error
}
