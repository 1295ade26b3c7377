package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/siftlab/sift/cmd/sift/commands"
	"github.com/siftlab/sift/internal/app"
	"github.com/siftlab/sift/internal/build"
	"github.com/siftlab/sift/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockApp struct {
	runFunc   func(ctx context.Context, scenarioNames []string, opts app.RunOptions) error
	listFunc  func(ctx context.Context) error
	cleanFunc func(ctx context.Context) error
}

func (m *mockApp) Run(ctx context.Context, scenarioNames []string, opts app.RunOptions) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, scenarioNames, opts)
	}
	return nil
}

func (m *mockApp) List(ctx context.Context) error {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil
}

func (m *mockApp) Clean(ctx context.Context) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx)
	}
	return nil
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.RunOptions
		var capturedNames []string
		called := false

		mock := &mockApp{
			runFunc: func(_ context.Context, scenarioNames []string, opts app.RunOptions) error {
				capturedOpts = opts
				capturedNames = scenarioNames
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{
			"run", "api",
			"--changed-against-branch", "main",
			"--changed-fetch-cache", "120",
			"-j", "4",
			"-v",
		})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, "main", capturedOpts.Branch)
		assert.Equal(t, 2*time.Minute, capturedOpts.FetchTTL)
		assert.Equal(t, 4, capturedOpts.Parallelism)
		assert.False(t, capturedOpts.NoFetch)
		assert.True(t, capturedOpts.Verbose)
		assert.Equal(t, []string{"api"}, capturedNames)
	})

	t.Run("defaults fetch cache to one minute", func(t *testing.T) {
		var capturedOpts app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, opts app.RunOptions) error {
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "--changed-against-branch", "main"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, time.Minute, capturedOpts.FetchTTL)
	})

	t.Run("runs unfiltered without a branch", func(t *testing.T) {
		var capturedOpts app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, opts app.RunOptions) error {
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Empty(t, capturedOpts.Branch)
	})

	t.Run("rejects negative fetch cache", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, _ app.RunOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
		cli.SetArgs([]string{"run", "--changed-against-branch", "main", "--changed-fetch-cache", "-1"})

		err := cli.Execute(context.Background())
		assert.ErrorIs(t, err, domain.ErrNegativeCacheTTL)
	})

	t.Run("rejects no-fetch with explicit fetch cache", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, _ app.RunOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
		cli.SetArgs([]string{
			"run", "--changed-against-branch", "main",
			"--changed-no-fetch", "--changed-fetch-cache", "120",
		})

		err := cli.Execute(context.Background())
		assert.ErrorIs(t, err, domain.ErrConflictingFetchFlags)
	})

	t.Run("rejects malformed branch names", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, _ app.RunOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
		cli.SetArgs([]string{"run", "--changed-against-branch", "-main"})

		err := cli.Execute(context.Background())
		assert.ErrorIs(t, err, domain.ErrInvalidBranchName)
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, _ app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_List(t *testing.T) {
	called := false
	mock := &mockApp{
		listFunc: func(_ context.Context) error {
			called = true
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"list"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, called)
}

func TestCommands_Clean(t *testing.T) {
	called := false
	mock := &mockApp{
		cleanFunc: func(_ context.Context) error {
			called = true
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"clean"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, called)
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), build.Version)
}
