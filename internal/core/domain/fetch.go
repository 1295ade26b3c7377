package domain

import "time"

// FetchState records the last successful git fetch for a target branch.
// FetchedAt is set only when a fetch actually executed.
type FetchState struct {
	Branch    string `json:"branch"`
	FetchedAt int64  `json:"fetched_at"`
}

// FetchCache decides whether a new `git fetch` is needed given a time-to-live.
// It is constructed once per run, optionally primed with persisted state, and
// updated only after a successful fetch. Fetching is the single network-bound
// operation in the pipeline; diff queries are local and never cached.
type FetchCache struct {
	state *FetchState
}

// NewFetchCache creates a cache primed with prior state, which may be nil.
func NewFetchCache(prior *FetchState) *FetchCache {
	return &FetchCache{state: prior}
}

// ShouldFetch reports whether a fetch is required for branch at time now.
// A fetch is required when no prior fetch is recorded, the prior fetch
// targeted a different branch, ttl is zero, or the prior fetch has aged past
// the ttl.
func (c *FetchCache) ShouldFetch(branch string, now time.Time, ttl time.Duration) bool {
	if c.state == nil || c.state.Branch != branch || ttl == 0 {
		return true
	}
	age := now.Sub(time.Unix(c.state.FetchedAt, 0))
	return age >= ttl
}

// Record updates the cache after a successful fetch. It must not be called
// when the fetch failed.
func (c *FetchCache) Record(branch string, now time.Time) {
	c.state = &FetchState{Branch: branch, FetchedAt: now.Unix()}
}

// State returns the last recorded fetch, or nil when none is recorded.
func (c *FetchCache) State() *FetchState {
	return c.state
}
