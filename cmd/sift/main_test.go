package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/siftlab/sift/internal/app"
	"github.com/siftlab/sift/internal/core/domain"
	"github.com/siftlab/sift/internal/core/ports"
	"github.com/siftlab/sift/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
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

func newTestApp(ctrl *gomock.Controller, loader ports.ConfigLoader) *app.App {
	return app.New(
		loader,
		mocks.NewMockGitRunner(ctrl),
		mocks.NewMockFetchStateStore(ctrl),
		mocks.NewMockExecutor(ctrl),
		mocks.NewMockClock(ctrl),
		nil,
		nopTracer{},
		nopLogger{},
	)
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)

	application := newTestApp(ctrl, mocks.NewMockConfigLoader(ctrl))
	var cleaned bool
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: nopLogger{}}, func() { cleaned = true }, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
	assert.True(t, cleaned, "provider cleanup must run")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 when the command execution fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)

	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(".").Return(nil, errors.New("load failed"))

	application := newTestApp(ctrl, loader)
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: nopLogger{}}, func() {}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"run"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
}

// TestRun_UsageError verifies that invalid options exit with code 2 instead
// of the run-failure code.
func TestRun_UsageError(t *testing.T) {
	ctrl := gomock.NewController(t)

	application := newTestApp(ctrl, mocks.NewMockConfigLoader(ctrl))
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: nopLogger{}}, func() {}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"run", "--changed-fetch-cache=-1"}, stderr, provider)

	assert.Equal(t, 2, exitCode)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil, nopLogger{}))
	assert.Equal(t, 1, exitCode(domain.ErrRunFailed, nopLogger{}))
	assert.Equal(t, 2, exitCode(domain.ErrConflictingFetchFlags, nopLogger{}))
	assert.Equal(t, 1, exitCode(errors.New("boom"), nopLogger{}))
}
