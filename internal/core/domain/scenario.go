// Package domain contains the core types for change-based scenario selection.
package domain

import (
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// Scenario is a single test case unit: a named command backed by one or more
// source files. Scenarios are read-only once loaded.
type Scenario struct {
	Name        string
	Sources     []string
	Command     []string
	WorkingDir  string
	Environment map[string]string
}

// Suite is an ordered collection of scenarios rooted at the directory that
// contains the suite file.
type Suite struct {
	root      string
	remote    string
	scenarios []*Scenario
	byName    map[string]*Scenario
}

var validScenarioNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// NewSuite creates an empty suite for the given root directory and remote.
func NewSuite(root, remote string) *Suite {
	if remote == "" {
		remote = DefaultRemote
	}
	return &Suite{
		root:   root,
		remote: remote,
		byName: make(map[string]*Scenario),
	}
}

// Root returns the directory containing the suite file.
func (s *Suite) Root() string {
	return s.root
}

// Remote returns the git remote used for fetch and diff queries.
func (s *Suite) Remote() string {
	return s.remote
}

// Add appends a scenario, validating its name, command and sources.
func (s *Suite) Add(sc *Scenario) error {
	if !validScenarioNameRegex.MatchString(sc.Name) {
		return zerr.With(ErrInvalidScenarioName, "scenario", sc.Name)
	}
	if _, exists := s.byName[sc.Name]; exists {
		return zerr.With(ErrDuplicateScenarioName, "scenario", sc.Name)
	}
	if len(sc.Command) == 0 {
		return zerr.With(ErrScenarioMissingCommand, "scenario", sc.Name)
	}
	if len(sc.Sources) == 0 {
		return zerr.With(ErrScenarioMissingSources, "scenario", sc.Name)
	}
	s.scenarios = append(s.scenarios, sc)
	s.byName[sc.Name] = sc
	return nil
}

// Scenarios returns all scenarios in declaration order.
func (s *Suite) Scenarios() []*Scenario {
	return s.scenarios
}

// Len returns the number of scenarios in the suite.
func (s *Suite) Len() int {
	return len(s.scenarios)
}

// Select returns the named scenarios in declaration order. An empty names
// slice selects the whole suite.
func (s *Suite) Select(names []string) ([]*Scenario, error) {
	if len(names) == 0 {
		return s.scenarios, nil
	}
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := s.byName[name]; !ok {
			return nil, zerr.With(ErrScenarioNotFound, "scenario", name)
		}
		wanted[name] = true
	}
	out := make([]*Scenario, 0, len(wanted))
	for _, sc := range s.scenarios {
		if wanted[sc.Name] {
			out = append(out, sc)
		}
	}
	return out, nil
}

// ValidateBranch rejects branch names git would refuse or that would be
// parsed as options by the git CLI.
func ValidateBranch(branch string) error {
	if strings.TrimSpace(branch) == "" {
		return ErrEmptyBranchName
	}
	if strings.HasPrefix(branch, "-") || strings.ContainsAny(branch, " \t\n~^:?*[\\") || strings.Contains(branch, "..") {
		return zerr.With(ErrInvalidBranchName, "branch", branch)
	}
	return nil
}
