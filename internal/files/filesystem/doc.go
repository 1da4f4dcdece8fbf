// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// This package defines the file and directory operations the discovery and
// load pipeline needs, enabling testability through an in-memory
// implementation while maintaining compatibility with the OS filesystem.
//
// Key interfaces:
//   - FileSystemProvider: Read-only access (stat, flat directory listing, reads)
//   - WritableFileSystem: Adds whole-file replacement for save-back
//   - FileInfo: File metadata similar to os.FileInfo
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
