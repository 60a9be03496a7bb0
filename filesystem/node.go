package filesystem

import (
	"slices"
	"strings"

	"github.com/puzpuzpuz/xsync/v4"
)

// Node is a position in the tree: a name under exactly one parent directory.
// Directories own their children exclusively; dropping a directory drops its
// whole subtree.
type Node struct {
	name     string
	parent   *Node
	isRoot   bool
	children *xsync.Map[string, *Node] // nil for files
	*Inode
}

// NewNode wraps inode in a detached Node.
//
// NOTE: Parent node is responsible for adding itself to the returned Node's
// parent ref when linking it as a child
func NewNode(name string, inode *Inode) *Node {
	node := &Node{
		name:  name,
		Inode: inode,
	}
	if inode.IsDir() {
		node.children = xsync.NewMap[string, *Node]()
	}
	return node
}

func newRootNode(inode *Inode) *Node {
	root := NewNode("", inode)
	root.isRoot = true
	return root
}

// Name returns the node's name (last path component); "" for the root.
func (n *Node) Name() string {
	return n.name
}

// Parent returns the containing directory, nil for the root or a detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) IsRoot() bool {
	return n.isRoot
}

// Path returns the absolute path of the node; "/" for the root.
// A detached node reports the path from its topmost attached ancestor.
func (n *Node) Path() string {
	if n.isRoot {
		return "/"
	}
	var parts []string
	for cur := n; cur != nil && !cur.isRoot; cur = cur.parent {
		parts = append(parts, cur.name)
	}
	slices.Reverse(parts)
	return "/" + strings.Join(parts, "/")
}

// AddChild links child under name, replacing and detaching any previous child
// with that name. Calling it on a file is a no-op returning false.
func (n *Node) AddChild(name string, child *Node) bool {
	if n.children == nil {
		return false
	}
	if prev, ok := n.children.Load(name); ok && prev != child {
		prev.parent = nil
	}
	child.name = name
	child.parent = n
	n.children.Store(name, child)
	return true
}

// GetChild returns the child named name.
func (n *Node) GetChild(name string) (child *Node, ok bool) {
	if n.children == nil {
		return nil, false
	}
	return n.children.Load(name)
}

// RemoveChild unlinks the child named name and returns it detached.
func (n *Node) RemoveChild(name string) (*Node, bool) {
	if n.children == nil {
		return nil, false
	}
	child, ok := n.children.LoadAndDelete(name)
	if !ok {
		return nil, false
	}
	child.parent = nil
	return child, true
}

// NumChildren returns the number of direct children (0 for files).
func (n *Node) NumChildren() int {
	if n.children == nil {
		return 0
	}
	return n.children.Size()
}

// ChildNames returns the names of the direct children in lexical order.
func (n *Node) ChildNames() []string {
	names := make([]string, 0, n.NumChildren())
	if n.children == nil {
		return names
	}
	n.children.Range(func(name string, _ *Node) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}

// Contains reports whether other is n or lies somewhere below n.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// kind is the human name used in construction errors.
func (n *Node) kind() string {
	return n.Type().String()
}
