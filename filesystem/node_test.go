package filesystem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brettbedarf/fakefs"
)

// Test helper to create a detached node of either type
func createTestNode(name string, isDir bool) *Node {
	typ := fakefs.FileNodeType
	if isDir {
		typ = fakefs.DirNodeType
	}
	return NewNode(name, NewInode(typ, "", time.Now(), fakefs.Attr{}))
}

func TestNode_AddChild(t *testing.T) {
	t.Parallel()

	parent := createTestNode("parent", true)
	child := createTestNode("child.txt", false)

	ok := parent.AddChild("child.txt", child)
	require.True(t, ok)

	retrievedChild, exists := parent.GetChild("child.txt")
	require.True(t, exists)
	assert.Equal(t, child, retrievedChild)
	assert.Equal(t, parent, child.Parent())
}

func TestNode_AddChild_RenamesAndReplaces(t *testing.T) {
	t.Parallel()

	parent := createTestNode("parent", true)
	first := createTestNode("a", false)
	second := createTestNode("b", false)

	parent.AddChild("x", first)
	parent.AddChild("x", second)

	got, ok := parent.GetChild("x")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, "x", second.Name(), "child takes the slot's name")
	assert.Nil(t, first.Parent(), "replaced child must be detached")
	assert.Equal(t, 1, parent.NumChildren())
}

func TestNode_AddChild_OnFile(t *testing.T) {
	t.Parallel()

	file := createTestNode("f", false)
	assert.False(t, file.AddChild("x", createTestNode("x", false)))
	_, ok := file.GetChild("x")
	assert.False(t, ok)
	assert.Equal(t, 0, file.NumChildren())
	assert.Empty(t, file.ChildNames())
}

func TestNode_GetChild(t *testing.T) {
	t.Parallel()

	parent := createTestNode("parent", true)
	child := createTestNode("child.txt", false)
	parent.AddChild("child.txt", child)

	retrievedChild, exists := parent.GetChild("child.txt")
	assert.True(t, exists)
	assert.Equal(t, child, retrievedChild)

	nonExistentChild, exists := parent.GetChild("nonexistent.txt")
	assert.False(t, exists)
	assert.Nil(t, nonExistentChild)
}

func TestNode_RemoveChild(t *testing.T) {
	t.Parallel()

	parent := createTestNode("parent", true)
	child := createTestNode("child.txt", false)
	parent.AddChild("child.txt", child)

	removed, ok := parent.RemoveChild("child.txt")
	require.True(t, ok)
	assert.Same(t, child, removed)

	_, exists := parent.GetChild("child.txt")
	assert.False(t, exists)
	assert.Nil(t, child.Parent(), "parent reference must be cleared")

	_, ok = parent.RemoveChild("nonexistent.txt")
	assert.False(t, ok)
}

func TestNode_ChildNames_Sorted(t *testing.T) {
	t.Parallel()

	parent := createTestNode("parent", true)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		parent.AddChild(name, createTestNode(name, false))
	}

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, parent.ChildNames())
}

func TestNode_Path(t *testing.T) {
	t.Parallel()

	root := newRootNode(NewInode(fakefs.DirNodeType, "", time.Now(), fakefs.Attr{}))
	a := createTestNode("a", true)
	b := createTestNode("b.txt", false)
	root.AddChild("a", a)
	a.AddChild("b.txt", b)

	assert.Equal(t, "/", root.Path())
	assert.Equal(t, "/a", a.Path())
	assert.Equal(t, "/a/b.txt", b.Path())
	assert.True(t, root.IsRoot())
	assert.False(t, a.IsRoot())

	a.RemoveChild("b.txt")
	assert.Equal(t, "/b.txt", b.Path(), "detached node reports only its own name")
}

func TestNode_Contains(t *testing.T) {
	t.Parallel()

	a := createTestNode("a", true)
	b := createTestNode("b", true)
	c := createTestNode("c", false)
	a.AddChild("b", b)
	b.AddChild("c", c)

	assert.True(t, a.Contains(a))
	assert.True(t, a.Contains(c))
	assert.False(t, b.Contains(a))
	assert.False(t, c.Contains(b))
}
