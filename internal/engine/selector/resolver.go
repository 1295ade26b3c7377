// Package selector resolves the set of files changed relative to a target
// branch and filters scenarios down to the ones those files back.
package selector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/siftlab/sift/internal/core/domain"
	"github.com/siftlab/sift/internal/core/ports"
	"go.trai.ch/zerr"
)

// diffFilter restricts diff output to added, copied, modified, type-changed
// and renamed files. Deletions are excluded: a removed source cannot back a
// runnable scenario.
const diffFilter = "ACMTR"

// Options configures a single resolution.
type Options struct {
	// Root is the suite root directory where git commands run.
	Root string
	// Remote is the git remote holding the target branch.
	Remote string
	// Branch is the target branch to diff against.
	Branch string
	// TTL bounds the age of a prior fetch before a new one is required.
	TTL time.Duration
	// NoFetch skips the network fetch entirely and diffs against whatever
	// the local remote-tracking ref already points at.
	NoFetch bool
}

// Resolution is the outcome of resolving changed files.
type Resolution struct {
	// Changed holds suite-root-relative paths that differ from the target
	// branch. It may be empty.
	Changed domain.ChangedFileSet
	// LastFetch is the most recent successful fetch, or nil when no fetch
	// has ever run for this branch.
	LastFetch *domain.FetchState
}

// Resolver computes changed files by fetching the target branch (subject to
// the fetch cache) and diffing the working tree against it.
type Resolver struct {
	git    ports.GitRunner
	store  ports.FetchStateStore
	clock  ports.Clock
	tracer ports.Tracer
	logger ports.Logger
}

// NewResolver creates a resolver from its collaborators.
func NewResolver(git ports.GitRunner, store ports.FetchStateStore, clock ports.Clock, tracer ports.Tracer, logger ports.Logger) *Resolver {
	return &Resolver{git: git, store: store, clock: clock, tracer: tracer, logger: logger}
}

// Resolve fetches the target branch when the cache demands it and returns
// the set of files changed relative to it. A fetch failure aborts the run
// and leaves the persisted fetch state untouched.
func (r *Resolver) Resolve(ctx context.Context, opts Options) (*Resolution, error) {
	if err := domain.ValidateBranch(opts.Branch); err != nil {
		return nil, err
	}
	if opts.TTL < 0 {
		return nil, zerr.With(domain.ErrNegativeCacheTTL, "duration", opts.TTL.String())
	}

	ctx, span := r.tracer.StartSpan(ctx, "select.changed", map[string]string{
		"remote": opts.Remote,
		"branch": opts.Branch,
	})

	resolution, err := r.resolve(ctx, opts)
	span.End(err)
	return resolution, err
}

func (r *Resolver) resolve(ctx context.Context, opts Options) (*Resolution, error) {
	cache := r.primeCache(opts)

	now := r.clock.Now()
	if !opts.NoFetch && cache.ShouldFetch(opts.Branch, now, opts.TTL) {
		if err := r.fetch(ctx, opts, cache, now); err != nil {
			return nil, err
		}
	}

	changed, err := r.diff(ctx, opts)
	if err != nil {
		return nil, err
	}

	return &Resolution{Changed: changed, LastFetch: cache.State()}, nil
}

// primeCache loads persisted fetch state. Unreadable state degrades to an
// empty cache, which simply forces the next fetch.
func (r *Resolver) primeCache(opts Options) *domain.FetchCache {
	prior, err := r.store.Get(opts.Root, opts.Remote, opts.Branch)
	if err != nil {
		r.logger.Warn(fmt.Sprintf("discarding unreadable fetch state: %v", err))
		prior = nil
	}
	return domain.NewFetchCache(prior)
}

func (r *Resolver) fetch(ctx context.Context, opts Options, cache *domain.FetchCache, now time.Time) error {
	r.logger.Info(fmt.Sprintf("fetching '%s' from '%s'", opts.Branch, opts.Remote))

	ctx, span := r.tracer.StartSpan(ctx, "git.fetch", map[string]string{
		"remote": opts.Remote,
		"branch": opts.Branch,
	})
	_, err := r.git.Run(ctx, opts.Root, "fetch", opts.Remote, opts.Branch)
	span.End(err)
	if err != nil {
		return zerr.Wrap(err, "failed to fetch target branch")
	}

	cache.Record(opts.Branch, now)
	if err := r.store.Put(opts.Root, opts.Remote, opts.Branch, *cache.State()); err != nil {
		// A stale state file only costs an extra fetch next run.
		r.logger.Warn(fmt.Sprintf("failed to persist fetch state: %v", err))
	}
	return nil
}

// diff lists files changed relative to the remote-tracking ref, rebased onto
// the suite root. Suites nested below the repository root see paths relative
// to themselves; changes outside the suite root are dropped.
func (r *Resolver) diff(ctx context.Context, opts Options) (domain.ChangedFileSet, error) {
	prefix, err := r.repoPrefix(ctx, opts.Root)
	if err != nil {
		return nil, err
	}

	ref := opts.Remote + "/" + opts.Branch
	ctx, span := r.tracer.StartSpan(ctx, "git.diff", map[string]string{"ref": ref})
	lines, err := r.git.Run(ctx, opts.Root,
		"diff", "--name-only", "--diff-filter="+diffFilter, ref+"...HEAD")
	span.End(err)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to diff against target branch")
	}

	changed := domain.NewChangedFileSet()
	for _, line := range lines {
		rel, ok := strings.CutPrefix(line, prefix)
		if !ok {
			continue
		}
		changed.Add(rel)
	}
	return changed, nil
}

// repoPrefix returns the suite root's path relative to the repository root,
// with a trailing slash, or "" when the suite sits at the repository root.
func (r *Resolver) repoPrefix(ctx context.Context, root string) (string, error) {
	lines, err := r.git.Run(ctx, root, "rev-parse", "--show-prefix")
	if err != nil {
		return "", zerr.Wrap(err, "failed to locate suite within repository")
	}
	if len(lines) == 0 {
		return "", nil
	}
	return lines[0], nil
}
