package services

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/vvka-141/tabwatch/internal/logging"
	"github.com/vvka-141/tabwatch/internal/retry"
	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

// DiscoveryService implements the Discoverer interface.
// It holds no state between calls: every call rescans and reloads.
type DiscoveryService struct {
	scope     tabwatch.Scope
	locator   tabwatch.FileLocator
	validator tabwatch.FileValidator
	loader    tabwatch.TableLoader
	logger    tabwatch.Logger
	retrier   *retry.Executor
	now       func() time.Time
}

// NewDiscoveryService creates a DiscoveryService with all dependencies injected.
//
// Panics on nil dependencies; runtime conditions such as a missing directory
// or an unreadable file are returned as errors.
func NewDiscoveryService(
	scope tabwatch.Scope,
	locator tabwatch.FileLocator,
	validator tabwatch.FileValidator,
	loader tabwatch.TableLoader,
	logger tabwatch.Logger,
) *DiscoveryService {
	if locator == nil {
		panic("locator cannot be nil")
	}
	if validator == nil {
		panic("validator cannot be nil")
	}
	if loader == nil {
		panic("loader cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &DiscoveryService{
		scope:     scope.Normalized(),
		locator:   locator,
		validator: validator,
		loader:    loader,
		logger:    logging.Named(logger, "discovery"),
		now:       time.Now,
	}
}

// WithRetry returns a copy of the service whose watch refreshes are
// repeated by executor while they fail transiently.
func (s *DiscoveryService) WithRetry(executor *retry.Executor) *DiscoveryService {
	if executor == nil {
		panic("executor cannot be nil")
	}
	clone := *s
	clone.retrier = executor.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		s.logger.Verbose("refresh attempt %d failed, retrying in %s: %v", attempt+1, delay.Round(time.Millisecond), err)
	})
	return &clone
}

// Scope returns the scope the service was built for.
func (s *DiscoveryService) Scope() tabwatch.Scope {
	return s.scope
}

// DiscoverLatestValidFile lists the data directory, picks the newest
// candidate and validates it.
func (s *DiscoveryService) DiscoverLatestValidFile() (tabwatch.CandidateFile, error) {
	paths, err := s.locator.ListCandidates(s.scope)
	if err != nil {
		return tabwatch.CandidateFile{}, err
	}

	latest, err := s.locator.PickLatest(paths)
	if err != nil {
		return tabwatch.CandidateFile{}, err
	}

	if err := s.validator.Validate(latest.Path); err != nil {
		return tabwatch.CandidateFile{}, err
	}

	s.logger.Verbose("selected %s (%.2f MB)", latest.Path, latest.SizeMB())
	return latest, nil
}

// Load parses the file at path.
func (s *DiscoveryService) Load(path string) (*tabwatch.Table, error) {
	return s.loader.Load(path)
}

// Refresh discovers the newest valid file and loads it.
func (s *DiscoveryService) Refresh() (*tabwatch.Snapshot, error) {
	file, err := s.DiscoverLatestValidFile()
	if err != nil {
		return nil, err
	}
	return s.load(file)
}

// Open validates and loads the file at path, bypassing discovery.
func (s *DiscoveryService) Open(path string) (*tabwatch.Snapshot, error) {
	if err := s.validator.Validate(path); err != nil {
		return nil, err
	}

	// Re-pick to capture the file's current size and timestamp.
	file, err := s.locator.PickLatest([]string{path})
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", filepath.Base(path), err)
	}
	return s.load(file)
}

func (s *DiscoveryService) load(file tabwatch.CandidateFile) (*tabwatch.Snapshot, error) {
	table, err := s.loader.Load(file.Path)
	if err != nil {
		return nil, err
	}

	return &tabwatch.Snapshot{
		File:        file,
		Fingerprint: file.Fingerprint(),
		Table:       table,
		LoadedAt:    s.now(),
	}, nil
}

// Verify DiscoveryService implements the interface at compile time
var _ tabwatch.Discoverer = (*DiscoveryService)(nil)
