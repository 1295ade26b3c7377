package selector

import (
	"github.com/siftlab/sift/internal/core/domain"
)

// Filter returns the scenarios whose sources intersect the changed set,
// preserving suite declaration order. An empty changed set selects nothing.
func Filter(scenarios []*domain.Scenario, changed domain.ChangedFileSet) []*domain.Scenario {
	if changed.Len() == 0 {
		return nil
	}

	selected := make([]*domain.Scenario, 0, len(scenarios))
	for _, sc := range scenarios {
		if touches(sc, changed) {
			selected = append(selected, sc)
		}
	}
	return selected
}

// touches reports whether any of the scenario's sources matches a changed
// file. Comparison is exact after path normalization; directory or glob
// sources must be expanded to files before they reach the filter.
func touches(sc *domain.Scenario, changed domain.ChangedFileSet) bool {
	for _, src := range sc.Sources {
		if changed.Contains(src) {
			return true
		}
	}
	return false
}
