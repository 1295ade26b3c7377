package ports

import "time"

// Clock abstracts the current time for deterministic tests.
//
//go:generate mockgen -source=clock.go -destination=mocks/mock_clock.go -package=mocks
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}
