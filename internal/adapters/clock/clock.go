// Package clock implements ports.Clock using the system clock.
package clock

import (
	"time"

	"github.com/siftlab/sift/internal/core/ports"
)

var _ ports.Clock = (*System)(nil)

// System is the production clock.
type System struct{}

// NewSystem creates a new system clock.
func NewSystem() *System {
	return &System{}
}

// Now returns the current time.
func (System) Now() time.Time {
	return time.Now()
}
