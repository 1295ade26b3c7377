package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/siftlab/sift/internal/core/ports"
)

// StateStoreNodeID is the unique identifier for the fetch state store Graft node.
const StateStoreNodeID graft.ID = "adapter.fetch_state_store"

func init() {
	graft.Register(graft.Node[ports.FetchStateStore]{
		ID:        StateStoreNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FetchStateStore, error) {
			return NewStateStore(), nil
		},
	})
}
