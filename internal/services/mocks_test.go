package services

import (
	"sync"

	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

type mockLocator struct {
	paths   []string
	listErr error
	latest  tabwatch.CandidateFile
	pickErr error
	calls   []string
}

func (m *mockLocator) ListCandidates(_ tabwatch.Scope) ([]string, error) {
	m.calls = append(m.calls, "list")
	return m.paths, m.listErr
}

func (m *mockLocator) PickLatest(_ []string) (tabwatch.CandidateFile, error) {
	m.calls = append(m.calls, "pick")
	return m.latest, m.pickErr
}

type mockValidator struct {
	err       error
	validated []string
}

func (m *mockValidator) ValidateExtension(_ string) error { return nil }
func (m *mockValidator) ValidateSize(_ string) error      { return nil }
func (m *mockValidator) ValidateNotEmpty(_ string) error  { return nil }

func (m *mockValidator) Validate(path string) error {
	m.validated = append(m.validated, path)
	return m.err
}

type mockLoader struct {
	table  *tabwatch.Table
	err    error
	loaded []string
}

func (m *mockLoader) Load(path string) (*tabwatch.Table, error) {
	m.loaded = append(m.loaded, path)
	return m.table, m.err
}

// recordingHandler collects watch callbacks.
type recordingHandler struct {
	mu        sync.Mutex
	snapshots []*tabwatch.Snapshot
	errs      []error
}

func (h *recordingHandler) OnSnapshot(snap *tabwatch.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snapshots = append(h.snapshots, snap)
}

func (h *recordingHandler) OnError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errs = append(h.errs, err)
}

func (h *recordingHandler) counts() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.snapshots), len(h.errs)
}
