package filesystem

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Dump writes an indented listing of the tree to w, one node per line with
// its size (files) and modification time. Handy in failing test output.
//
//	/  2024-01-02T03:04:05Z
//	  home/  2024-01-02T03:04:05Z
//	    note.txt  2 B  2024-01-02T03:04:05Z
func (fs *FileSystem) Dump(w io.Writer) error {
	return dumpNode(w, fs.root, 0)
}

func dumpNode(w io.Writer, n *Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	mtime := n.Mtime().UTC().Format(time.RFC3339)

	var err error
	switch {
	case n.IsRoot():
		_, err = fmt.Fprintf(w, "/  %s\n", mtime)
	case n.IsDir():
		_, err = fmt.Fprintf(w, "%s%s/  %s\n", indent, n.Name(), mtime)
	default:
		_, err = fmt.Fprintf(w, "%s%s  %s  %s\n", indent, n.Name(), humanize.Bytes(uint64(n.Size())), mtime)
	}
	if err != nil {
		return err
	}

	for _, name := range n.ChildNames() {
		child, _ := n.GetChild(name)
		if err := dumpNode(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}
