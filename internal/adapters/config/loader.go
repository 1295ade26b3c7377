// Package config provides the suite configuration loader for sift.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/siftlab/sift/internal/core/domain"
	"github.com/siftlab/sift/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML suite file.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: NewOSFS()}
}

// Load finds sift.yaml starting at cwd and walking up, parses it, and
// returns the suite with scenario declaration order preserved.
func (l *Loader) Load(cwd string) (*domain.Suite, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	data, err := l.FS.ReadFile(configPath)
	if err != nil {
		return nil, zerr.With(domain.ErrConfigReadFailed, "path", configPath)
	}

	var file SuiteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		wrapped := zerr.With(domain.ErrConfigParseFailed, "path", configPath)
		return nil, zerr.With(wrapped, "cause", err.Error())
	}

	if len(file.Scenarios) == 0 {
		return nil, zerr.With(domain.ErrNoScenariosDefined, "path", configPath)
	}

	root := filepath.Dir(configPath)
	suite := domain.NewSuite(root, file.Remote)

	for i := range file.Scenarios {
		dto := file.Scenarios[i]
		scenario := &domain.Scenario{
			Name:        dto.Name,
			Sources:     l.resolveSources(root, dto),
			Command:     dto.Command,
			WorkingDir:  resolveWorkingDir(root, dto.WorkingDir),
			Environment: dto.Env,
		}
		if err := suite.Add(scenario); err != nil {
			return nil, err
		}
	}

	return suite, nil
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
	}

	for {
		candidate := filepath.Join(currentDir, domain.SuiteFileName)
		if _, err := l.FS.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

// resolveSources expands glob patterns against the suite root and rewrites
// matches back to root-relative form. Literal paths are kept as declared so a
// source may name a file that only exists on other branches.
func (l *Loader) resolveSources(root string, dto ScenarioDTO) []string {
	sources := make([]string, 0, len(dto.Sources))
	seen := make(map[string]bool, len(dto.Sources))

	add := func(p string) {
		n := domain.NormalizePath(p)
		if n == "" || seen[n] {
			return
		}
		seen[n] = true
		sources = append(sources, n)
	}

	for _, pattern := range dto.Sources {
		if !strings.ContainsAny(pattern, "*?[") {
			add(pattern)
			continue
		}

		matches, err := l.FS.Glob(filepath.Join(root, filepath.FromSlash(pattern)))
		if err != nil || len(matches) == 0 {
			l.Logger.Warn(fmt.Sprintf("source pattern %q in scenario %q matched nothing", pattern, dto.Name))
			continue
		}
		for _, match := range matches {
			rel, err := filepath.Rel(root, match)
			if err != nil {
				continue
			}
			add(rel)
		}
	}

	return sources
}

func resolveWorkingDir(root, dir string) string {
	if dir == "" {
		return root
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}
