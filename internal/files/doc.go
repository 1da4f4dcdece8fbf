// Package files groups the filesystem-facing parts of the pipeline:
//   - filesystem: filesystem abstraction with OS and in-memory implementations
//   - locator: lists candidate files in the data directory and picks the newest
//   - validator: extension, size and emptiness checks on a single file
//
// # Usage
//
//	fsProvider := filesystem.NewOSFileSystem()
//	loc := locator.New(fsProvider, logger)
//	paths, err := loc.ListCandidates(scope)
//	latest, err := loc.PickLatest(paths)
//
//	v := validator.New(scope, fsProvider, logger)
//	err = v.Validate(latest.Path)
package files
