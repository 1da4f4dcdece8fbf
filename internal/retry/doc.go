// Package retry repeats refreshes that fail because a data file is
// caught mid-write.
//
// A file that is still being copied into the data directory can look
// empty, truncated or corrupt for a moment. The FileErrorClassifier
// recognises those conditions, and the Executor repeats the operation
// with exponential backoff until it succeeds, fails for a different
// reason, or runs out of attempts:
//
//	executor := retry.NewExecutor(retry.NewFileErrorClassifier(), retry.NewExponentialBackoff(3))
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    snap, err = service.Refresh()
//	    return err
//	})
//
// Executor instances are safe for concurrent use.
package retry
