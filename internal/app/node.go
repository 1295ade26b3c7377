package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/siftlab/sift/internal/adapters/clock"
	"github.com/siftlab/sift/internal/adapters/config"
	"github.com/siftlab/sift/internal/adapters/fs"
	"github.com/siftlab/sift/internal/adapters/gitcli"
	"github.com/siftlab/sift/internal/adapters/logger"
	"github.com/siftlab/sift/internal/adapters/shell"
	"github.com/siftlab/sift/internal/adapters/telemetry"
	"github.com/siftlab/sift/internal/adapters/watcher"
	"github.com/siftlab/sift/internal/core/ports"
)

// NodeID is the unique identifier for the application components Graft node.
const NodeID graft.ID = "app.components"

// Components bundles the fully wired application with the shared logger so
// the CLI entrypoint can report errors through the same output path.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			gitcli.NodeID,
			fs.StateStoreNodeID,
			shell.NodeID,
			clock.NodeID,
			watcher.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			git, err := graft.Dep[ports.GitRunner](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.FetchStateStore](ctx)
			if err != nil {
				return nil, err
			}
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			clk, err := graft.Dep[ports.Clock](ctx)
			if err != nil {
				return nil, err
			}
			w, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    New(loader, git, store, executor, clk, w, tracer, log),
				Logger: log,
			}, nil
		},
	})
}
