package domain_test

import (
	"testing"

	"github.com/siftlab/sift/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestChangedFileSet(t *testing.T) {
	t.Parallel()

	t.Run("duplicates collapse", func(t *testing.T) {
		t.Parallel()
		set := domain.NewChangedFileSet("a/b.go", "a/b.go", "./a/b.go")
		assert.Equal(t, 1, set.Len())
		assert.True(t, set.Contains("a/b.go"))
	})

	t.Run("blank lines dropped", func(t *testing.T) {
		t.Parallel()
		set := domain.NewChangedFileSet("", "  ", "a.go")
		assert.Equal(t, 1, set.Len())
	})

	t.Run("exact matching only", func(t *testing.T) {
		t.Parallel()
		set := domain.NewChangedFileSet("scenarios/login.go")
		assert.True(t, set.Contains("scenarios/login.go"))
		assert.False(t, set.Contains("scenarios/login"))
		assert.False(t, set.Contains("scenarios"))
		assert.False(t, set.Contains("login.go"))
	})

	t.Run("paths sorted", func(t *testing.T) {
		t.Parallel()
		set := domain.NewChangedFileSet("b.go", "a.go", "c/d.go")
		assert.Equal(t, []string{"a.go", "b.go", "c/d.go"}, set.Paths())
	})
}

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"a/b.go", "a/b.go"},
		{"./a/b.go", "a/b.go"},
		{"a//b.go", "a/b.go"},
		{"a/../b.go", "b.go"},
		{" a.go ", "a.go"},
		{".", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.NormalizePath(tt.in), "input %q", tt.in)
	}
}
