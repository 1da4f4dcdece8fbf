package validator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"unicode"

	"github.com/vvka-141/tabwatch/internal/detect"
	"github.com/vvka-141/tabwatch/internal/files/filesystem"
	"github.com/vvka-141/tabwatch/internal/logging"
	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

// Validator checks files against a scope's extension and size rules.
type Validator struct {
	allowed    []string
	maxSizeMB  float64
	fsProvider filesystem.FileSystemProvider
	logger     tabwatch.Logger
}

// New creates a Validator for the given scope.
// Panics if fsProvider or logger is nil.
func New(scope tabwatch.Scope, fsProvider filesystem.FileSystemProvider, logger tabwatch.Logger) *Validator {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Validator{
		allowed:    tabwatch.NormalizeExtensions(scope.AllowedExtensions),
		maxSizeMB:  scope.MaxFileSizeMB,
		fsProvider: fsProvider,
		logger:     logging.Named(logger, "validator"),
	}
}

// ValidateExtension fails with tabwatch.ErrUnsupportedExtension when the
// file's extension is not allowed.
func (v *Validator) ValidateExtension(path string) error {
	ext := tabwatch.Extension(path)
	if !tabwatch.ContainsExtension(v.allowed, ext) {
		v.logger.Error("unsupported file extension: %q", ext)
		return fmt.Errorf("%w: %s (allowed: %v)", tabwatch.ErrUnsupportedExtension, filepath.Base(path), v.allowed)
	}
	return nil
}

// ValidateSize fails with tabwatch.ErrFileTooLarge when the file is larger
// than the limit. A file exactly at the limit passes.
func (v *Validator) ValidateSize(path string) error {
	info, err := v.fsProvider.Stat(path)
	if err != nil {
		v.logger.Error("cannot stat %s: %v", path, err)
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	sizeMB := float64(info.Size()) / tabwatch.BytesPerMB
	if sizeMB > v.maxSizeMB {
		v.logger.Error("file size %.2f MB exceeds the limit of %g MB", sizeMB, v.maxSizeMB)
		return fmt.Errorf("%w: %s is %.2f MB, limit is %g MB", tabwatch.ErrFileTooLarge, filepath.Base(path), sizeMB, v.maxSizeMB)
	}
	return nil
}

// ValidateNotEmpty fails with tabwatch.ErrEmptyFile unless the file holds a
// non-whitespace rune, i.e. some line is non-blank. Invalid UTF-8 is dropped
// while scanning; line length is not limited.
func (v *Validator) ValidateNotEmpty(path string) error {
	f, err := v.fsProvider.Open(path)
	if err != nil {
		v.logger.Error("cannot open %s: %v", path, err)
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r, err := detect.NewLenientReader(f, tabwatch.DefaultEncoding)
	if err != nil {
		return err
	}

	br := bufio.NewReader(r)
	for {
		ch, _, err := br.ReadRune()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			v.logger.Error("failed to read %s: %v", path, err)
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if !unicode.IsSpace(ch) && ch != '\uFEFF' {
			return nil
		}
	}

	v.logger.Error("file %s contains no data", filepath.Base(path))
	return fmt.Errorf("%w: %s", tabwatch.ErrEmptyFile, filepath.Base(path))
}

// Validate runs the extension, size and emptiness checks in order and
// returns the first failure.
func (v *Validator) Validate(path string) error {
	checks := []func(string) error{
		v.ValidateExtension,
		v.ValidateSize,
		v.ValidateNotEmpty,
	}
	for _, check := range checks {
		if err := check(path); err != nil {
			return err
		}
	}
	v.logger.Verbose("%s passed validation", filepath.Base(path))
	return nil
}

// Verify Validator implements the interface at compile time
var _ tabwatch.FileValidator = (*Validator)(nil)
