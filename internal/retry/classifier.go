package retry

import (
	"encoding/csv"
	"errors"
	"io"
	"io/fs"

	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

// Loader stages whose failures can be caused by a partially written file.
var transientStages = map[string]bool{
	"read":     true,
	"workbook": true,
}

// FileErrorClassifier treats the symptoms of a file that is still being
// written as transient:
//   - the file vanished between listing and reading
//   - the file is still empty
//   - the reader hit EOF early
//   - the workbook container could not be opened yet
//   - a CSV row runs into the next one, so it has more fields than the header
//
// Configuration problems, unsupported types and oversized files are fatal.
type FileErrorClassifier struct{}

// NewFileErrorClassifier creates a new FileErrorClassifier.
func NewFileErrorClassifier() *FileErrorClassifier {
	return &FileErrorClassifier{}
}

// IsTransient reports whether err may clear once the file settles.
func (c *FileErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, tabwatch.ErrInvalidConfig),
		errors.Is(err, tabwatch.ErrUnsupportedExtension),
		errors.Is(err, tabwatch.ErrUnsupportedOperation),
		errors.Is(err, tabwatch.ErrFileTooLarge):
		return false
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, tabwatch.ErrEmptyFile),
		errors.Is(err, io.ErrUnexpectedEOF):
		return true
	}

	var loadErr *tabwatch.LoadError
	if errors.As(err, &loadErr) && transientStages[loadErr.Stage] {
		return true
	}

	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return errors.Is(parseErr.Err, csv.ErrFieldCount)
	}

	return false
}

// Verify FileErrorClassifier implements the interface at compile time
var _ tabwatch.ErrorClassifier = (*FileErrorClassifier)(nil)
