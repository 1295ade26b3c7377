package ports

import "github.com/siftlab/sift/internal/core/domain"

// ConfigLoader loads the scenario suite configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the suite file starting at cwd and walking up, and returns
	// the parsed suite. Scenario declaration order is preserved.
	Load(cwd string) (*domain.Suite, error)
}
