// Package app implements the application layer for sift.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/siftlab/sift/internal/adapters/watcher"
	"github.com/siftlab/sift/internal/core/domain"
	"github.com/siftlab/sift/internal/core/ports"
	"github.com/siftlab/sift/internal/engine/runner"
	"github.com/siftlab/sift/internal/engine/selector"
	"github.com/siftlab/sift/internal/ui/report"
	"go.trai.ch/zerr"
)

// debounceWindow coalesces editor save bursts into a single watch-mode re-run.
const debounceWindow = 300 * time.Millisecond

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	git          ports.GitRunner
	store        ports.FetchStateStore
	executor     ports.Executor
	clock        ports.Clock
	watcher      ports.Watcher
	tracer       ports.Tracer
	logger       ports.Logger
	stdout       io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	git ports.GitRunner,
	store ports.FetchStateStore,
	executor ports.Executor,
	clock ports.Clock,
	w ports.Watcher,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		git:          git,
		store:        store,
		executor:     executor,
		clock:        clock,
		watcher:      w,
		tracer:       tracer,
		logger:       log,
		stdout:       os.Stdout,
	}
}

// WithOutput redirects run output and report rendering.
// This is primarily used for testing.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Branch enables change-based selection against the named branch.
	// When empty, every candidate scenario runs.
	Branch string
	// FetchTTL bounds how stale the last fetch may be before a new one runs.
	FetchTTL time.Duration
	// NoFetch diffs against the existing remote-tracking ref without
	// touching the network.
	NoFetch bool
	// Parallelism caps concurrently executing scenarios.
	Parallelism int
	// JSON switches log output to JSON.
	JSON bool
	// Verbose surfaces debug logging, including span timings.
	Verbose bool
	// Watch re-runs selection and execution when source files change.
	Watch bool
}

// Run loads the suite, selects scenarios changed relative to the target
// branch, and executes them. With no target branch the suite runs unfiltered.
func (a *App) Run(ctx context.Context, scenarioNames []string, opts RunOptions) error {
	if opts.JSON {
		a.logger.SetJSON(true)
	}
	if opts.Verbose {
		a.logger.SetVerbose(true)
	}
	if opts.Watch {
		return a.watch(ctx, scenarioNames, opts)
	}
	return a.runOnce(ctx, scenarioNames, opts)
}

func (a *App) runOnce(ctx context.Context, scenarioNames []string, opts RunOptions) error {
	suite, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	candidates := suite.Scenarios()
	if len(scenarioNames) > 0 {
		candidates, err = suite.Select(scenarioNames)
		if err != nil {
			return err
		}
	}

	selected := candidates
	var lastFetch *domain.FetchState

	if opts.Branch != "" {
		resolution, err := a.resolve(ctx, suite, opts)
		if err != nil {
			return err
		}
		lastFetch = resolution.LastFetch
		selected = selector.Filter(candidates, resolution.Changed)

		if len(selected) == 0 {
			fmt.Fprintln(a.stdout, report.NoChangeSummary(opts.Branch, fetchTime(lastFetch)))
			return nil
		}
	}

	results := runner.New(a.executor, a.tracer, a.logger).
		Run(ctx, selected, opts.Parallelism, a.stdout)

	rep := report.Report{
		Branch:  opts.Branch,
		Skipped: skippedNames(candidates, selected),
		Results: results,
	}
	report.NewRenderer(a.stdout).Render(rep)

	if failed := rep.Failed(); failed > 0 {
		return errors.Join(domain.ErrRunFailed, zerr.With(domain.ErrScenarioExecutionFailed, "failed", failed))
	}
	return nil
}

// watch runs once, then re-runs whenever files under the suite root change.
// Scenario failures do not end watch mode; only a setup error or context
// cancellation does.
func (a *App) watch(ctx context.Context, scenarioNames []string, opts RunOptions) error {
	suite, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	if err := a.watcher.Start(ctx, suite.Root()); err != nil {
		return zerr.Wrap(err, "failed to start file watcher")
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	runs := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(debounceWindow, func(_ []string) {
		select {
		case runs <- struct{}{}:
		default:
		}
	})

	go func() {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
	}()

	for {
		if err := a.runOnce(ctx, scenarioNames, opts); err != nil {
			if !errors.Is(err, domain.ErrRunFailed) {
				return err
			}
			// Failed scenarios will be retried on the next change.
		}

		a.logger.Info("watching for changes, press ctrl+c to stop")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-runs:
		}
	}
}

func (a *App) resolve(ctx context.Context, suite *domain.Suite, opts RunOptions) (*selector.Resolution, error) {
	resolver := selector.NewResolver(a.git, a.store, a.clock, a.tracer, a.logger)
	return resolver.Resolve(ctx, selector.Options{
		Root:    suite.Root(),
		Remote:  suite.Remote(),
		Branch:  opts.Branch,
		TTL:     opts.FetchTTL,
		NoFetch: opts.NoFetch,
	})
}

// List prints the scenarios defined in the suite.
func (a *App) List(_ context.Context) error {
	suite, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	for _, sc := range suite.Scenarios() {
		fmt.Fprintf(a.stdout, "%-24s %d source(s)\n", sc.Name, len(sc.Sources))
	}
	return nil
}

// Clean removes the state directory under the suite root, discarding all
// persisted fetch state.
func (a *App) Clean(_ context.Context) error {
	suite, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	dir := filepath.Join(suite.Root(), domain.SiftDirName)
	a.logger.Info(fmt.Sprintf("removing %s...", dir))
	if err := os.RemoveAll(dir); err != nil {
		return zerr.Wrap(err, "failed to remove state directory")
	}
	return nil
}

// skippedNames returns the candidates that were not selected, preserving
// declaration order.
func skippedNames(candidates, selected []*domain.Scenario) []string {
	chosen := make(map[string]struct{}, len(selected))
	for _, sc := range selected {
		chosen[sc.Name] = struct{}{}
	}

	var skipped []string
	for _, sc := range candidates {
		if _, ok := chosen[sc.Name]; !ok {
			skipped = append(skipped, sc.Name)
		}
	}
	return skipped
}

func fetchTime(state *domain.FetchState) time.Time {
	if state == nil {
		return time.Time{}
	}
	return time.Unix(state.FetchedAt, 0)
}
