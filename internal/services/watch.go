package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

// WatchHandler receives the outcome of refreshes that changed something.
type WatchHandler interface {
	// OnSnapshot is called when the newest file's fingerprint changes.
	OnSnapshot(snap *tabwatch.Snapshot)

	// OnError is called when a refresh fails with an error different from the previous one.
	OnError(err error)
}

// Watch refreshes immediately and then once per interval until ctx is done.
// Unchanged snapshots and repeated errors are not reported again.
// Returns ctx.Err() when the context is cancelled.
func (s *DiscoveryService) Watch(ctx context.Context, interval time.Duration, handler WatchHandler) error {
	if handler == nil {
		panic("handler cannot be nil")
	}
	if interval <= 0 {
		interval = time.Second
	}

	var (
		lastPrint uuid.UUID
		lastErr   string
	)
	tick := func() {
		snap, err := s.refresh(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			if msg := err.Error(); msg != lastErr {
				lastErr = msg
				handler.OnError(err)
			}
			// Report the file again once the error clears.
			lastPrint = uuid.Nil
			return
		}
		lastErr = ""
		if snap.Fingerprint == lastPrint {
			s.logger.Verbose("no change in %s", snap.File.Path)
			return
		}
		lastPrint = snap.Fingerprint
		handler.OnSnapshot(snap)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("watching %s every %s", s.scope.DataDir, interval)
	tick()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stopped watching %s", s.scope.DataDir)
			return ctx.Err()
		case <-ticker.C:
			tick()
		}
	}
}

// refresh runs Refresh through the retry executor when one is configured.
func (s *DiscoveryService) refresh(ctx context.Context) (*tabwatch.Snapshot, error) {
	if s.retrier == nil {
		return s.Refresh()
	}

	var snap *tabwatch.Snapshot
	err := s.retrier.Execute(ctx, func(context.Context) error {
		var err error
		snap, err = s.Refresh()
		return err
	})
	return snap, err
}
