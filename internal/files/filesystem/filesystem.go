package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// FileSystemProvider gives read-only access to files and directories.
// Errors for missing paths wrap fs.ErrNotExist.
type FileSystemProvider interface {
	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// ReadDir returns the entries directly inside the directory at path,
	// sorted by name. It never descends into sub-directories.
	ReadDir(path string) ([]FileInfo, error)

	// ReadFile reads the whole file at path
	ReadFile(path string) ([]byte, error)

	// Open opens the file at path for streaming reads
	Open(path string) (io.ReadCloser, error)
}

// WritableFileSystem is a FileSystemProvider that can also replace file contents.
type WritableFileSystem interface {
	FileSystemProvider

	// WriteFile replaces the file at path with data. Readers never observe a
	// partially written file.
	WriteFile(path string, data []byte) error
}
