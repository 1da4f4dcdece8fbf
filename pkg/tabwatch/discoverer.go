package tabwatch

// Discoverer runs the discovery and load pipeline for one Scope.
type Discoverer interface {
	// DiscoverLatestValidFile picks the newest candidate in the data directory
	// and validates it. The first failing stage's error is returned.
	DiscoverLatestValidFile() (CandidateFile, error)

	// Load parses the file at path into a new Table.
	Load(path string) (*Table, error)

	// Refresh discovers the newest valid file and loads it.
	Refresh() (*Snapshot, error)

	// Open validates and loads an explicitly chosen file.
	Open(path string) (*Snapshot, error)
}
