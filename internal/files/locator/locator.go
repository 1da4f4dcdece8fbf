package locator

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/vvka-141/tabwatch/internal/files/filesystem"
	"github.com/vvka-141/tabwatch/internal/logging"
	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

// Locator lists candidate files and picks the newest one.
// Locator is safe for concurrent use as long as the filesystem provider is.
type Locator struct {
	fsProvider filesystem.FileSystemProvider
	logger     tabwatch.Logger
}

// New creates a Locator.
// Panics if fsProvider or logger is nil.
func New(fsProvider filesystem.FileSystemProvider, logger tabwatch.Logger) *Locator {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Locator{
		fsProvider: fsProvider,
		logger:     logging.Named(logger, "locator"),
	}
}

// ListCandidates returns the paths of regular files directly inside
// scope.DataDir whose extension is allowed. Paths are sorted; the order has
// no meaning for selection.
func (l *Locator) ListCandidates(scope tabwatch.Scope) ([]string, error) {
	dir := scope.DataDir

	info, err := l.fsProvider.Stat(dir)
	if err != nil || !info.IsDir() {
		msg := fmt.Sprintf("directory %s not found or not accessible", dir)
		l.logger.Error(msg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", tabwatch.ErrDirectory, msg, err)
		}
		return nil, fmt.Errorf("%w: %s: not a directory", tabwatch.ErrDirectory, msg)
	}

	entries, err := l.fsProvider.ReadDir(dir)
	if err != nil {
		l.logger.Error("failed to list %s: %v", dir, err)
		return nil, fmt.Errorf("%w: %v", tabwatch.ErrDirectory, err)
	}

	allowed := tabwatch.NormalizeExtensions(scope.AllowedExtensions)
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !tabwatch.ContainsExtension(allowed, filepath.Ext(entry.Name())) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	l.logger.Info("found %d files with extensions %v", len(paths), allowed)
	return paths, nil
}

// PickLatest stats every path and returns the one modified most recently.
// When several share the newest timestamp, the lexicographically smallest
// path wins. Paths that no longer exist are skipped.
func (l *Locator) PickLatest(paths []string) (tabwatch.CandidateFile, error) {
	if len(paths) == 0 {
		l.logger.Error("no files to choose from")
		return tabwatch.CandidateFile{}, tabwatch.ErrNoCandidates
	}

	var (
		latest tabwatch.CandidateFile
		found  bool
	)
	for _, p := range paths {
		info, err := l.fsProvider.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				l.logger.Verbose("skipping %s: removed since listing", p)
				continue
			}
			return tabwatch.CandidateFile{}, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if info.IsDir() {
			continue
		}

		c := tabwatch.CandidateFile{
			Path:       p,
			Extension:  tabwatch.Extension(p),
			SizeBytes:  info.Size(),
			ModifiedAt: info.ModTime(),
		}
		if !found || newer(c, latest) {
			latest = c
			found = true
		}
	}

	if !found {
		l.logger.Error("none of the %d listed files still exist", len(paths))
		return tabwatch.CandidateFile{}, fmt.Errorf("%w: all listed files disappeared", tabwatch.ErrNoCandidates)
	}

	l.logger.Info("latest file: %s, modified %s", filepath.Base(latest.Path), latest.ModifiedAt.Format("2006-01-02 15:04:05"))
	return latest, nil
}

// newer orders by modification time, then by path ascending on ties.
func newer(a, b tabwatch.CandidateFile) bool {
	if !a.ModifiedAt.Equal(b.ModifiedAt) {
		return a.ModifiedAt.After(b.ModifiedAt)
	}
	return a.Path < b.Path
}

// Verify Locator implements the interface at compile time
var _ tabwatch.FileLocator = (*Locator)(nil)
