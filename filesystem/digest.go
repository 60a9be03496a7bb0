package filesystem

import (
	"encoding/binary"
	"io"

	"github.com/zeebo/blake3"
)

// Digest fingerprints the whole tree: names, node types, timestamps, content
// and default encodings, walked in lexical order. Two trees with equal digests
// are indistinguishable through the operation layer. Node identities are left
// out so separately built fixtures can compare equal.
func (fs *FileSystem) Digest() [32]byte {
	h := blake3.New()
	digestNode(h, fs.root)

	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

func digestNode(w io.Writer, n *Node) {
	writeField(w, []byte(n.Name()))
	writeField(w, []byte(n.Type()))
	for _, ts := range []int64{n.atime.UnixNano(), n.mtime.UnixNano(), n.ctime.UnixNano()} {
		binary.Write(w, binary.BigEndian, ts) //nolint:errcheck // hash writes do not fail
	}
	if n.IsFile() {
		writeField(w, n.content)
		writeField(w, []byte(n.encoding))
		return
	}

	names := n.ChildNames()
	binary.Write(w, binary.BigEndian, uint64(len(names))) //nolint:errcheck
	for _, name := range names {
		child, _ := n.GetChild(name)
		digestNode(w, child)
	}
}

// writeField writes b length-prefixed so adjacent fields cannot run together.
func writeField(w io.Writer, b []byte) {
	binary.Write(w, binary.BigEndian, uint64(len(b))) //nolint:errcheck
	w.Write(b)                                        //nolint:errcheck
}
