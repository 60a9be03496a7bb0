package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cwd  string
		path string
		want []string
	}{
		{"root", "/work", "/", nil},
		{"absolute", "/work", "/a/b", []string{"a", "b"}},
		{"relative", "/work", "a/b", []string{"work", "a", "b"}},
		{"dot_is_cwd", "/work/x", ".", []string{"work", "x"}},
		{"empty_is_cwd", "/work", "", []string{"work"}},
		{"dotdot", "/work/x", "../y", []string{"work", "y"}},
		{"dotdot_clamps_at_root", "/", "../../a", []string{"a"}},
		{"redundant_separators", "/", "//a///b/", []string{"a", "b"}},
		{"inner_dots", "/", "/a/./b/../c", []string{"a", "c"}},
		{"backslashes", "/", `a\b\c.txt`, []string{"a", "b", "c.txt"}},
		{"root_cwd_relative", "/", "a", []string{"a"}},
		{"relative_cwd_is_rooted", "work", "a", []string{"work", "a"}},
		{"resolves_to_root", "/work", "..", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Segments(tt.cwd, tt.path)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitParent(t *testing.T) {
	t.Parallel()

	dir, name := splitParent([]string{"a", "b", "c"})
	assert.Equal(t, []string{"a", "b"}, dir)
	assert.Equal(t, "c", name)

	dir, name = splitParent([]string{"only"})
	assert.Empty(t, dir)
	assert.Equal(t, "only", name)
}
