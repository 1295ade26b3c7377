package domain

import (
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// ChangedFileSet is a set of suite-root-relative file paths that differ from
// the target branch. It is rebuilt on every resolution; only the underlying
// fetch decision is cached.
type ChangedFileSet map[string]struct{}

// NewChangedFileSet builds a set from raw paths. Duplicates collapse and
// blank entries are dropped.
func NewChangedFileSet(paths ...string) ChangedFileSet {
	s := make(ChangedFileSet, len(paths))
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Add inserts a path after normalization. Empty paths are ignored.
func (s ChangedFileSet) Add(p string) {
	n := NormalizePath(p)
	if n == "" {
		return
	}
	s[n] = struct{}{}
}

// Contains reports whether the normalized form of p is a member.
// Matching is exact: no prefix or glob semantics.
func (s ChangedFileSet) Contains(p string) bool {
	_, ok := s[NormalizePath(p)]
	return ok
}

// Len returns the number of members.
func (s ChangedFileSet) Len() int {
	return len(s)
}

// Paths returns the members in sorted order.
func (s ChangedFileSet) Paths() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// NormalizePath converts p to a clean, slash-separated, relative path.
// "." and empty inputs normalize to "".
func NormalizePath(p string) string {
	n := path.Clean(filepath.ToSlash(strings.TrimSpace(p)))
	if n == "." || n == "/" {
		return ""
	}
	n = strings.TrimPrefix(n, "./")
	return n
}
