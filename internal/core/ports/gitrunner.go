// Package ports defines the core interfaces for the application.
package ports

import "context"

// GitRunner executes git subcommands as external processes.
//
//go:generate mockgen -source=gitrunner.go -destination=mocks/mock_gitrunner.go -package=mocks
type GitRunner interface {
	// Run executes `git args...` in dir and returns the lines of stdout with
	// the trailing newline stripped and blank lines dropped. It blocks until
	// the subprocess exits. A non-zero exit or a launch failure is returned
	// as an error; there are no retries.
	Run(ctx context.Context, dir string, args ...string) ([]string, error)
}
