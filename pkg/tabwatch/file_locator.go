package tabwatch

// FileLocator finds the newest loadable file in a scope's data directory.
type FileLocator interface {
	// ListCandidates lists files directly inside scope.DataDir whose extension is allowed.
	// Returns ErrDirectory if the directory is missing or not a directory.
	ListCandidates(scope Scope) ([]string, error)

	// PickLatest returns the candidate with the newest modification time.
	// Returns ErrNoCandidates if paths is empty.
	PickLatest(paths []string) (CandidateFile, error)
}
