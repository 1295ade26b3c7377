package domain

import "errors"

// Sentinels are plain errors: zerr.With and zerr.Wrap place a plain error in
// the cause chain, so errors.Is keeps matching after metadata is attached.
var (
	// ErrGitBinaryNotFound is returned when the git executable cannot be located on PATH.
	ErrGitBinaryNotFound = errors.New("git binary not found")

	// ErrGitCommandFailed is returned when a git subprocess exits non-zero or cannot be launched.
	ErrGitCommandFailed = errors.New("git command failed")

	// ErrNegativeCacheTTL is returned when the fetch cache duration is negative.
	ErrNegativeCacheTTL = errors.New("fetch cache duration must be non-negative")

	// ErrEmptyBranchName is returned when the target branch name is blank.
	ErrEmptyBranchName = errors.New("target branch name is empty")

	// ErrInvalidBranchName is returned when the target branch name is malformed.
	ErrInvalidBranchName = errors.New("target branch name contains invalid characters")

	// ErrConflictingFetchFlags is returned when --changed-no-fetch is combined with a custom --changed-fetch-cache.
	ErrConflictingFetchFlags = errors.New("--changed-no-fetch and --changed-fetch-cache cannot be used together")

	// ErrConfigNotFound is returned when no suite file can be found.
	ErrConfigNotFound = errors.New("could not find suite file")

	// ErrConfigReadFailed is returned when the suite file cannot be read.
	ErrConfigReadFailed = errors.New("failed to read suite file")

	// ErrConfigParseFailed is returned when the suite file cannot be parsed.
	ErrConfigParseFailed = errors.New("failed to parse suite file")

	// ErrNoScenariosDefined is returned when the suite file defines no scenarios.
	ErrNoScenariosDefined = errors.New("no scenarios defined")

	// ErrInvalidScenarioName is returned when a scenario name contains invalid characters.
	ErrInvalidScenarioName = errors.New("scenario name can only contain alphanumeric characters, hyphens and underscores")

	// ErrDuplicateScenarioName is returned when two scenarios share a name.
	ErrDuplicateScenarioName = errors.New("duplicate scenario name")

	// ErrScenarioNotFound is returned when a requested scenario is not in the suite.
	ErrScenarioNotFound = errors.New("scenario not found")

	// ErrScenarioMissingCommand is returned when a scenario has no command to execute.
	ErrScenarioMissingCommand = errors.New("scenario has no command")

	// ErrScenarioMissingSources is returned when a scenario declares no source files.
	ErrScenarioMissingSources = errors.New("scenario has no source files")

	// ErrScenarioExecutionFailed is returned when a scenario command exits non-zero.
	ErrScenarioExecutionFailed = errors.New("scenario execution failed")

	// ErrRunFailed is returned when the run as a whole did not succeed.
	ErrRunFailed = errors.New("run failed")

	// ErrStateReadFailed is returned when the fetch state cannot be read.
	ErrStateReadFailed = errors.New("failed to read fetch state")

	// ErrStateWriteFailed is returned when the fetch state cannot be written.
	ErrStateWriteFailed = errors.New("failed to write fetch state")
)

// configurationErrors are caused by the invocation or the suite file rather
// than by anything that happened while running. They are fixable by the user
// without retrying.
var configurationErrors = []error{
	ErrNegativeCacheTTL,
	ErrEmptyBranchName,
	ErrInvalidBranchName,
	ErrConflictingFetchFlags,
	ErrConfigNotFound,
	ErrConfigReadFailed,
	ErrConfigParseFailed,
	ErrNoScenariosDefined,
	ErrInvalidScenarioName,
	ErrDuplicateScenarioName,
	ErrScenarioNotFound,
	ErrScenarioMissingCommand,
	ErrScenarioMissingSources,
}

// IsConfigurationError reports whether err stems from invalid options or an
// invalid suite file.
func IsConfigurationError(err error) bool {
	for _, sentinel := range configurationErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
