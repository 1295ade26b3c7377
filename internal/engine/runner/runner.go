// Package runner executes selected scenarios, optionally in parallel.
package runner

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/siftlab/sift/internal/core/domain"
	"github.com/siftlab/sift/internal/core/ports"
	"github.com/siftlab/sift/internal/ui/report"
	"golang.org/x/sync/errgroup"
)

// Runner executes scenarios through an executor and collects their results.
type Runner struct {
	executor ports.Executor
	tracer   ports.Tracer
	logger   ports.Logger
}

// New creates a runner from its collaborators.
func New(executor ports.Executor, tracer ports.Tracer, logger ports.Logger) *Runner {
	return &Runner{executor: executor, tracer: tracer, logger: logger}
}

// Run executes the given scenarios with at most parallelism of them in
// flight at once. Every scenario runs regardless of earlier failures, and
// results come back in input order. Scenario output is buffered per scenario
// and written to out only once that scenario finishes, so parallel runs do
// not interleave.
func (r *Runner) Run(ctx context.Context, scenarios []*domain.Scenario, parallelism int, out io.Writer) []report.Result {
	if parallelism < 1 {
		parallelism = 1
	}

	results := make([]report.Result, len(scenarios))

	var outMu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, sc := range scenarios {
		g.Go(func() error {
			results[i] = r.runOne(ctx, sc, &outMu, out)
			return nil
		})
	}

	// Workers never return errors; failures land in their result slot.
	_ = g.Wait()

	return results
}

func (r *Runner) runOne(ctx context.Context, sc *domain.Scenario, outMu *sync.Mutex, out io.Writer) report.Result {
	ctx, span := r.tracer.StartSpan(ctx, "run.scenario", map[string]string{"scenario": sc.Name})

	var buf bytes.Buffer
	start := time.Now()
	err := r.executor.Execute(ctx, sc, &buf, &buf)
	elapsed := time.Since(start)

	span.End(err)

	if out != nil && buf.Len() > 0 {
		outMu.Lock()
		_, _ = out.Write(buf.Bytes())
		outMu.Unlock()
	}

	return report.Result{Name: sc.Name, Duration: elapsed, Err: err}
}
