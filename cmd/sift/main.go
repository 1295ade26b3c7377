// Package main is the entry point for the sift test selection tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/siftlab/sift/cmd/sift/commands"
	"github.com/siftlab/sift/internal/app"
	"github.com/siftlab/sift/internal/core/domain"
	"github.com/siftlab/sift/internal/core/ports"
	_ "github.com/siftlab/sift/internal/wiring"
)

// Exit codes. Scenario failures and configuration mistakes are told apart so
// CI pipelines can distinguish "tests failed" from "invocation was wrong".
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available if initialization failed.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return exitFailed
	}
	defer cleanup()

	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	return exitCode(cli.Execute(ctx), components.Logger)
}

func exitCode(err error, logger ports.Logger) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, domain.ErrRunFailed):
		// The report already shows which scenarios failed.
		return exitFailed
	case domain.IsConfigurationError(err):
		logger.Error(err)
		return exitUsage
	default:
		logger.Error(err)
		return exitFailed
	}
}
