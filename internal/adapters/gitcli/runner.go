// Package gitcli implements ports.GitRunner using the git binary.
package gitcli

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"

	"github.com/siftlab/sift/internal/core/domain"
	"github.com/siftlab/sift/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.GitRunner = (*Runner)(nil)

// Runner spawns git subprocesses synchronously and normalizes their stdout
// into line lists. It holds no state beyond the resolved binary path.
type Runner struct {
	lookOnce sync.Once
	gitPath  string
	lookErr  error
}

// NewRunner creates a Runner. The git binary is resolved lazily on first use.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes `git args...` in dir and blocks until the subprocess exits.
// Stdout is split into lines with the trailing newline stripped and blank
// lines dropped. Failures are not retried.
func (r *Runner) Run(ctx context.Context, dir string, args ...string) ([]string, error) {
	r.lookOnce.Do(func() {
		r.gitPath, r.lookErr = exec.LookPath("git")
	})
	if r.lookErr != nil {
		return nil, zerr.With(domain.ErrGitBinaryNotFound, "cause", r.lookErr.Error())
	}

	cmd := exec.CommandContext(ctx, r.gitPath, args...) //nolint:gosec // args are validated by callers
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, commandError(err, args, stderr.String())
	}

	return splitLines(stdout.String()), nil
}

func commandError(err error, args []string, stderr string) error {
	wrapped := zerr.With(domain.ErrGitCommandFailed, "args", "git "+strings.Join(args, " "))

	if msg := strings.TrimSpace(stderr); msg != "" {
		wrapped = zerr.With(wrapped, "stderr", msg)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		wrapped = zerr.With(wrapped, "exit_code", exitErr.ExitCode())
	} else {
		wrapped = zerr.With(wrapped, "cause", err.Error())
	}

	return wrapped
}

func splitLines(out string) []string {
	raw := strings.Split(out, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
