package selector_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/siftlab/sift/internal/core/domain"
	"github.com/siftlab/sift/internal/core/ports"
	"github.com/siftlab/sift/internal/core/ports/mocks"
	"github.com/siftlab/sift/internal/engine/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type nopLogger struct{}

func (nopLogger) Debug(_ string)        {}
func (nopLogger) Info(_ string)         {}
func (nopLogger) Warn(_ string)         {}
func (nopLogger) Error(_ error)         {}
func (nopLogger) SetOutput(_ io.Writer) {}
func (nopLogger) SetJSON(_ bool)        {}
func (nopLogger) SetVerbose(_ bool)     {}

type nopSpan struct{}

func (nopSpan) End(_ error) {}

type nopTracer struct{}

func (nopTracer) StartSpan(ctx context.Context, _ string, _ map[string]string) (context.Context, ports.Span) {
	return ctx, nopSpan{}
}

func newResolver(git *mocks.MockGitRunner, store *mocks.MockFetchStateStore, clock *mocks.MockClock) *selector.Resolver {
	return selector.NewResolver(git, store, clock, nopTracer{}, nopLogger{})
}

func TestResolveFetchesAndDiffs(t *testing.T) {
	ctrl := gomock.NewController(t)
	git := mocks.NewMockGitRunner(ctrl)
	store := mocks.NewMockFetchStateStore(ctrl)
	clock := mocks.NewMockClock(ctrl)

	now := time.Unix(1_700_000_000, 0)
	store.EXPECT().Get("/repo", "origin", "main").Return(nil, nil)
	clock.EXPECT().Now().Return(now)
	git.EXPECT().Run(gomock.Any(), "/repo", "fetch", "origin", "main").Return(nil, nil)
	store.EXPECT().Put("/repo", "origin", "main", domain.FetchState{Branch: "main", FetchedAt: now.Unix()}).Return(nil)
	git.EXPECT().Run(gomock.Any(), "/repo", "rev-parse", "--show-prefix").Return(nil, nil)
	git.EXPECT().Run(gomock.Any(), "/repo", "diff", "--name-only", "--diff-filter=ACMTR", "origin/main...HEAD").
		Return([]string{"api/handlers.go", "docs/readme.md"}, nil)

	res, err := newResolver(git, store, clock).Resolve(context.Background(), selector.Options{
		Root:   "/repo",
		Remote: "origin",
		Branch: "main",
		TTL:    time.Minute,
	})
	require.NoError(t, err)
	assert.True(t, res.Changed.Contains("api/handlers.go"))
	assert.True(t, res.Changed.Contains("docs/readme.md"))
	require.NotNil(t, res.LastFetch)
	assert.Equal(t, now.Unix(), res.LastFetch.FetchedAt)
}

func TestResolveSkipsFetchWithinTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	git := mocks.NewMockGitRunner(ctrl)
	store := mocks.NewMockFetchStateStore(ctrl)
	clock := mocks.NewMockClock(ctrl)

	now := time.Unix(1_700_000_000, 0)
	prior := &domain.FetchState{Branch: "main", FetchedAt: now.Add(-30 * time.Second).Unix()}
	store.EXPECT().Get("/repo", "origin", "main").Return(prior, nil)
	clock.EXPECT().Now().Return(now)
	git.EXPECT().Run(gomock.Any(), "/repo", "rev-parse", "--show-prefix").Return(nil, nil)
	git.EXPECT().Run(gomock.Any(), "/repo", "diff", "--name-only", "--diff-filter=ACMTR", "origin/main...HEAD").
		Return([]string{"api/handlers.go"}, nil)

	res, err := newResolver(git, store, clock).Resolve(context.Background(), selector.Options{
		Root:   "/repo",
		Remote: "origin",
		Branch: "main",
		TTL:    time.Minute,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Changed.Len())
	assert.Equal(t, prior, res.LastFetch)
}

func TestResolveFetchesAtTTLBoundary(t *testing.T) {
	ctrl := gomock.NewController(t)
	git := mocks.NewMockGitRunner(ctrl)
	store := mocks.NewMockFetchStateStore(ctrl)
	clock := mocks.NewMockClock(ctrl)

	now := time.Unix(1_700_000_000, 0)
	prior := &domain.FetchState{Branch: "main", FetchedAt: now.Add(-time.Minute).Unix()}
	store.EXPECT().Get("/repo", "origin", "main").Return(prior, nil)
	clock.EXPECT().Now().Return(now)
	git.EXPECT().Run(gomock.Any(), "/repo", "fetch", "origin", "main").Return(nil, nil)
	store.EXPECT().Put("/repo", "origin", "main", gomock.Any()).Return(nil)
	git.EXPECT().Run(gomock.Any(), "/repo", "rev-parse", "--show-prefix").Return(nil, nil)
	git.EXPECT().Run(gomock.Any(), "/repo", "diff", "--name-only", "--diff-filter=ACMTR", "origin/main...HEAD").
		Return(nil, nil)

	_, err := newResolver(git, store, clock).Resolve(context.Background(), selector.Options{
		Root:   "/repo",
		Remote: "origin",
		Branch: "main",
		TTL:    time.Minute,
	})
	require.NoError(t, err)
}

func TestResolveNoFetchSkipsNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	git := mocks.NewMockGitRunner(ctrl)
	store := mocks.NewMockFetchStateStore(ctrl)
	clock := mocks.NewMockClock(ctrl)

	store.EXPECT().Get("/repo", "origin", "main").Return(nil, nil)
	clock.EXPECT().Now().Return(time.Unix(1_700_000_000, 0))
	git.EXPECT().Run(gomock.Any(), "/repo", "rev-parse", "--show-prefix").Return(nil, nil)
	git.EXPECT().Run(gomock.Any(), "/repo", "diff", "--name-only", "--diff-filter=ACMTR", "origin/main...HEAD").
		Return(nil, nil)

	res, err := newResolver(git, store, clock).Resolve(context.Background(), selector.Options{
		Root:    "/repo",
		Remote:  "origin",
		Branch:  "main",
		TTL:     time.Minute,
		NoFetch: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Changed.Len())
	assert.Nil(t, res.LastFetch)
}

func TestResolveFetchFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	git := mocks.NewMockGitRunner(ctrl)
	store := mocks.NewMockFetchStateStore(ctrl)
	clock := mocks.NewMockClock(ctrl)

	store.EXPECT().Get("/repo", "origin", "main").Return(nil, nil)
	clock.EXPECT().Now().Return(time.Unix(1_700_000_000, 0))
	git.EXPECT().Run(gomock.Any(), "/repo", "fetch", "origin", "main").
		Return(nil, zerr.With(domain.ErrGitCommandFailed, "exit_code", 128))
	// No Put and no diff expectations: a failed fetch leaves no trace.

	_, err := newResolver(git, store, clock).Resolve(context.Background(), selector.Options{
		Root:   "/repo",
		Remote: "origin",
		Branch: "main",
		TTL:    time.Minute,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGitCommandFailed)
}

func TestResolveRebasesNestedSuitePaths(t *testing.T) {
	ctrl := gomock.NewController(t)
	git := mocks.NewMockGitRunner(ctrl)
	store := mocks.NewMockFetchStateStore(ctrl)
	clock := mocks.NewMockClock(ctrl)

	prior := &domain.FetchState{Branch: "main", FetchedAt: time.Unix(1_700_000_000, 0).Unix()}
	store.EXPECT().Get("/repo/services/api", "origin", "main").Return(prior, nil)
	clock.EXPECT().Now().Return(time.Unix(1_700_000_010, 0))
	git.EXPECT().Run(gomock.Any(), "/repo/services/api", "rev-parse", "--show-prefix").
		Return([]string{"services/api/"}, nil)
	git.EXPECT().Run(gomock.Any(), "/repo/services/api", "diff", "--name-only", "--diff-filter=ACMTR", "origin/main...HEAD").
		Return([]string{"services/api/handlers.go", "README.md"}, nil)

	res, err := newResolver(git, store, clock).Resolve(context.Background(), selector.Options{
		Root:   "/repo/services/api",
		Remote: "origin",
		Branch: "main",
		TTL:    time.Hour,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"handlers.go"}, res.Changed.Paths())
}

func TestResolveUnreadableStateForcesFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	git := mocks.NewMockGitRunner(ctrl)
	store := mocks.NewMockFetchStateStore(ctrl)
	clock := mocks.NewMockClock(ctrl)

	now := time.Unix(1_700_000_000, 0)
	store.EXPECT().Get("/repo", "origin", "main").Return(nil, domain.ErrStateReadFailed)
	clock.EXPECT().Now().Return(now)
	git.EXPECT().Run(gomock.Any(), "/repo", "fetch", "origin", "main").Return(nil, nil)
	store.EXPECT().Put("/repo", "origin", "main", gomock.Any()).Return(nil)
	git.EXPECT().Run(gomock.Any(), "/repo", "rev-parse", "--show-prefix").Return(nil, nil)
	git.EXPECT().Run(gomock.Any(), "/repo", "diff", "--name-only", "--diff-filter=ACMTR", "origin/main...HEAD").
		Return(nil, nil)

	_, err := newResolver(git, store, clock).Resolve(context.Background(), selector.Options{
		Root:   "/repo",
		Remote: "origin",
		Branch: "main",
		TTL:    time.Hour,
	})
	require.NoError(t, err)
}

func TestResolveRejectsBadInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newResolver(mocks.NewMockGitRunner(ctrl), mocks.NewMockFetchStateStore(ctrl), mocks.NewMockClock(ctrl))

	t.Run("empty branch", func(t *testing.T) {
		_, err := r.Resolve(context.Background(), selector.Options{Root: "/repo", Remote: "origin"})
		assert.ErrorIs(t, err, domain.ErrEmptyBranchName)
	})

	t.Run("malformed branch", func(t *testing.T) {
		_, err := r.Resolve(context.Background(), selector.Options{Root: "/repo", Remote: "origin", Branch: "-main"})
		assert.ErrorIs(t, err, domain.ErrInvalidBranchName)
	})

	t.Run("negative ttl", func(t *testing.T) {
		_, err := r.Resolve(context.Background(), selector.Options{
			Root: "/repo", Remote: "origin", Branch: "main", TTL: -time.Second,
		})
		assert.ErrorIs(t, err, domain.ErrNegativeCacheTTL)
	})
}
