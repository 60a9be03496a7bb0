package filesystem

import (
	"io/fs"
	"time"

	"github.com/google/uuid"

	"github.com/brettbedarf/fakefs"
)

// Modes reported through [FileInfo]. No permission model is enforced.
const (
	DirMode  fs.FileMode = fs.ModeDir | 0o755
	FileMode fs.FileMode = 0o644
)

// Inode holds a node's attributes and, for files, its content.
// A node's tree position lives on [Node]; everything that rename carries along
// lives here.
type Inode struct {
	id       string
	typ      fakefs.NodeType
	atime    time.Time
	mtime    time.Time
	ctime    time.Time
	content  []byte          // files only
	encoding fakefs.Encoding // files only; default for string reads
}

// NewInode creates an Inode of typ stamped at now, with any timestamps in attr
// taking precedence. An empty id gets a fresh UUID.
func NewInode(typ fakefs.NodeType, id string, now time.Time, attr fakefs.Attr) *Inode {
	if id == "" {
		id = uuid.New().String()
	}
	n := &Inode{
		id:    id,
		typ:   typ,
		atime: valueOrDefault(attr.Atime, now),
		mtime: valueOrDefault(attr.Mtime, now),
		ctime: valueOrDefault(attr.Ctime, now),
	}
	return n
}

// ID returns the node's opaque identity. It survives rename.
func (n *Inode) ID() string {
	return n.id
}

func (n *Inode) Type() fakefs.NodeType {
	return n.typ
}

func (n *Inode) IsDir() bool {
	return n.typ == fakefs.DirNodeType
}

func (n *Inode) IsFile() bool {
	return n.typ == fakefs.FileNodeType
}

func (n *Inode) Atime() time.Time { return n.atime }
func (n *Inode) Mtime() time.Time { return n.mtime }
func (n *Inode) Ctime() time.Time { return n.ctime }

// Size is the content length for files and 0 for directories.
func (n *Inode) Size() int64 {
	return int64(len(n.content))
}

// Content returns a copy of the file content.
func (n *Inode) Content() []byte {
	out := make([]byte, len(n.content))
	copy(out, n.content)
	return out
}

// Encoding returns the file's default text encoding, "" if unset.
func (n *Inode) Encoding() fakefs.Encoding {
	return n.encoding
}

func (n *Inode) setContent(data []byte) {
	n.content = make([]byte, len(data))
	copy(n.content, data)
}

func (n *Inode) appendContent(data []byte) {
	n.content = append(n.content, data...)
}

// updateTimes marks a modification: mtime and ctime move to now, atime stays.
func (n *Inode) updateTimes(now time.Time) {
	n.mtime = now
	n.ctime = now
}

func valueOrDefault[T any](ptr *T, defaultVal T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultVal
}
