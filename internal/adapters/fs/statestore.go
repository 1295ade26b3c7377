// Package fs implements filesystem-backed persistence adapters.
package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/siftlab/sift/internal/core/domain"
	"github.com/siftlab/sift/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FetchStateStore = (*StateStore)(nil)

// StateStore persists fetch state as JSON files under <root>/.sift/cache.
// Branch refs may contain path separators, so file names are keyed by a hash
// of the remote and branch rather than the raw ref.
type StateStore struct{}

// NewStateStore creates a new StateStore.
func NewStateStore() *StateStore {
	return &StateStore{}
}

// Get retrieves the persisted fetch state. Returns nil, nil when no state
// has been recorded for the remote and branch.
func (s *StateStore) Get(root, remote, branch string) (*domain.FetchState, error) {
	data, err := os.ReadFile(s.path(root, remote, branch))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(domain.ErrStateReadFailed, "cause", err.Error())
	}

	var state domain.FetchState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, zerr.With(domain.ErrStateReadFailed, "cause", err.Error())
	}
	return &state, nil
}

// Put stores the fetch state, creating the cache directory if needed.
func (s *StateStore) Put(root, remote, branch string, state domain.FetchState) error {
	dir := filepath.Join(root, domain.DefaultStatePath())
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(domain.ErrStateWriteFailed, "cause", err.Error())
	}

	data, err := json.Marshal(state)
	if err != nil {
		return zerr.With(domain.ErrStateWriteFailed, "cause", err.Error())
	}

	if err := os.WriteFile(s.path(root, remote, branch), data, domain.PrivateFilePerm); err != nil {
		return zerr.With(domain.ErrStateWriteFailed, "cause", err.Error())
	}
	return nil
}

func (s *StateStore) path(root, remote, branch string) string {
	key := xxhash.Sum64String(remote + "/" + branch)
	return filepath.Join(root, domain.DefaultStatePath(), fmt.Sprintf("fetch-%016x.json", key))
}
