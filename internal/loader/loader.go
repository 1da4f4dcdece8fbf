package loader

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/vvka-141/tabwatch/internal/detect"
	"github.com/vvka-141/tabwatch/internal/files/filesystem"
	"github.com/vvka-141/tabwatch/internal/logging"
	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

// Loader parses data files into tables.
// Loader holds no per-load state and is safe for concurrent use as long as
// the filesystem provider and detector are.
type Loader struct {
	allowed     []string
	sampleBytes int
	sampleLines int
	fsProvider  filesystem.FileSystemProvider
	detector    detect.EncodingDetector
	logger      tabwatch.Logger
}

// New creates a Loader using chardet for encoding detection.
// Panics if fsProvider or logger is nil.
func New(scope tabwatch.Scope, fsProvider filesystem.FileSystemProvider, logger tabwatch.Logger) *Loader {
	return NewWithDetector(scope, fsProvider, detect.NewCharsetDetector(), logger)
}

// NewWithDetector creates a Loader with a custom encoding detector.
// Panics if any dependency is nil.
func NewWithDetector(scope tabwatch.Scope, fsProvider filesystem.FileSystemProvider, detector detect.EncodingDetector, logger tabwatch.Logger) *Loader {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if detector == nil {
		panic("detector cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	sampleBytes := scope.EncodingDetectBytes
	if sampleBytes <= 0 {
		sampleBytes = tabwatch.DefaultEncodingDetectBytes
	}

	return &Loader{
		allowed:     tabwatch.NormalizeExtensions(scope.AllowedExtensions),
		sampleBytes: sampleBytes,
		sampleLines: tabwatch.DelimiterSampleLines,
		fsProvider:  fsProvider,
		detector:    detector,
		logger:      logging.Named(logger, "loader"),
	}
}

// Load reads the file at path into a new Table.
//
// Returns:
//   - tabwatch.ErrUnsupportedExtension if the extension is not allowed
//   - tabwatch.ErrUnsupportedOperation if no reader exists for an allowed extension
//   - *tabwatch.LoadError (matching tabwatch.ErrLoad) for read, decode and parse failures
func (l *Loader) Load(path string) (*tabwatch.Table, error) {
	name := filepath.Base(path)
	ext := tabwatch.Extension(path)

	if !tabwatch.ContainsExtension(l.allowed, ext) {
		l.logger.Error("unsupported file extension: %s", ext)
		return nil, fmt.Errorf("%w: %s (allowed: %v)", tabwatch.ErrUnsupportedExtension, name, l.allowed)
	}

	var (
		table *tabwatch.Table
		err   error
	)
	switch format := tabwatch.FormatForExtension(ext); format {
	case tabwatch.FormatDelimited:
		l.logger.Info("loading text file %s", name)
		table, err = l.loadDelimited(path)
	case tabwatch.FormatXLSX, tabwatch.FormatXLS:
		l.logger.Info("loading spreadsheet %s", name)
		table, err = l.loadSpreadsheet(path, format)
	default:
		l.logger.Error("no reader for extension %s", ext)
		return nil, fmt.Errorf("%w: no reader for %s files", tabwatch.ErrUnsupportedOperation, ext)
	}

	if err != nil {
		var loadErr *tabwatch.LoadError
		if !errors.As(err, &loadErr) && !errors.Is(err, tabwatch.ErrUnsupportedOperation) {
			err = tabwatch.NewLoadError(path, "", err)
		}
		l.logger.Error("failed to load data from %s: %v", name, err)
		return nil, err
	}

	l.logger.Info("loaded %d rows and %d columns", table.NumRows(), table.NumColumns())
	return table, nil
}

// Verify Loader implements the interface at compile time
var _ tabwatch.TableLoader = (*Loader)(nil)
