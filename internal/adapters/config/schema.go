package config

// SuiteFile is the YAML schema of sift.yaml.
type SuiteFile struct {
	// Remote is the git remote to fetch from. Defaults to origin.
	Remote string `yaml:"remote,omitempty"`
	// Scenarios lists the test scenarios in execution order.
	Scenarios []ScenarioDTO `yaml:"scenarios"`
}

// ScenarioDTO is a single scenario entry in sift.yaml.
type ScenarioDTO struct {
	Name string `yaml:"name"`
	// Sources are the backing source file paths, relative to the suite root.
	// Simple glob patterns are expanded at load time.
	Sources []string `yaml:"sources"`
	// Command is the argv to execute when the scenario is selected.
	Command []string `yaml:"command"`
	// WorkingDir is resolved relative to the suite root when not absolute.
	WorkingDir string `yaml:"working_dir,omitempty"`
	// Env holds extra environment variables for the command.
	Env map[string]string `yaml:"env,omitempty"`
}
