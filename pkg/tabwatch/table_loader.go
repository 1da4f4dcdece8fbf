package tabwatch

// TableLoader parses a validated file into a Table.
type TableLoader interface {
	// Load dispatches on the file extension and returns a freshly built Table.
	// Decode and parse failures are returned as *LoadError (matching ErrLoad).
	Load(path string) (*Table, error)
}

// TableSaver writes an edited table back to disk in the format matching path's extension.
// Savers belong to the editing layer; the load pipeline never writes.
type TableSaver interface {
	Save(table *Table, path string) error
}
