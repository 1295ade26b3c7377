// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/siftlab/sift/internal/adapters/clock"
	_ "github.com/siftlab/sift/internal/adapters/config"
	_ "github.com/siftlab/sift/internal/adapters/fs"
	_ "github.com/siftlab/sift/internal/adapters/gitcli"
	_ "github.com/siftlab/sift/internal/adapters/logger"
	_ "github.com/siftlab/sift/internal/adapters/shell"
	_ "github.com/siftlab/sift/internal/adapters/telemetry"
	_ "github.com/siftlab/sift/internal/adapters/watcher"
	// Register app nodes.
	_ "github.com/siftlab/sift/internal/app"
)
