// Package shell provides a shell-based executor for running scenario commands.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creack/pty"
	"github.com/siftlab/sift/internal/core/domain"
	"github.com/siftlab/sift/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec and pty.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Execute runs the scenario's command in a PTY and waits for it to complete.
// The PTY merges stdout and stderr; merged output goes to stdout and, line
// buffered, to the structural logger.
func (e *Executor) Execute(ctx context.Context, scenario *domain.Scenario, stdout, _ io.Writer) error {
	if len(scenario.Command) == 0 {
		return zerr.With(domain.ErrScenarioMissingCommand, "scenario", scenario.Name)
	}

	name := scenario.Command[0]
	args := scenario.Command[1:]

	cmdEnv := resolveEnvironment(os.Environ(), scenario.Environment)

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := exec.LookPath(name); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	if scenario.WorkingDir != "" {
		cmd.Dir = scenario.WorkingDir
	}
	cmd.Env = cmdEnv

	log := &logWriter{logger: e.logger}
	sink := io.MultiWriter(log, stdout)

	ptmx, err := pty.Start(cmd)
	if err != nil {
		wrapped := zerr.With(domain.ErrScenarioExecutionFailed, "scenario", scenario.Name)
		return zerr.With(wrapped, "cause", err.Error())
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		defer func() { _ = log.Close() }()
		_, _ = io.Copy(sink, ptmx)
	}()

	waitErr := cmd.Wait()
	<-ioDone

	if waitErr != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		wrapped := zerr.With(domain.ErrScenarioExecutionFailed, "scenario", scenario.Name)
		return zerr.With(wrapped, "exit_code", exitCode)
	}

	return nil
}

type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	// PTYs may introduce \r. Remove it.
	w.logger.Info(strings.TrimSuffix(string(line), "\r"))
}

// allowListedEnvVars are the system environment variables inherited by a
// scenario command. Everything else comes from the scenario's own env block.
var allowListedEnvVars = map[string]struct{}{
	"HOME": {},
	"TERM": {},
	"USER": {},
	"PATH": {},
	"LANG": {},
}

func resolveEnvironment(sysEnv []string, scenarioEnv map[string]string) []string {
	envMap := make(map[string]string)
	for _, kv := range sysEnv {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if _, allowed := allowListedEnvVars[k]; allowed {
			envMap[k] = v
		}
	}

	for k, v := range scenarioEnv {
		envMap[k] = v
	}

	out := make([]string, 0, len(envMap))
	for k, v := range envMap {
		out = append(out, k+"="+v)
	}
	return out
}
