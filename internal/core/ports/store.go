package ports

import "github.com/siftlab/sift/internal/core/domain"

// FetchStateStore persists the last successful fetch per remote and branch so
// the fetch cache survives process restarts.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type FetchStateStore interface {
	// Get retrieves the persisted fetch state for the given suite root,
	// remote and branch. Returns nil, nil when nothing is recorded.
	Get(root, remote, branch string) (*domain.FetchState, error)

	// Put stores the fetch state.
	Put(root, remote, branch string, state domain.FetchState) error
}
