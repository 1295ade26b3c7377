package ports

import (
	"context"
	"io"

	"github.com/siftlab/sift/internal/core/domain"
)

// Executor runs scenario commands.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the scenario's command and waits for it to complete.
	// Output is streamed to stdout and stderr as it is produced.
	// It returns an error when the command exits non-zero or cannot start.
	Execute(ctx context.Context, scenario *domain.Scenario, stdout, stderr io.Writer) error
}
