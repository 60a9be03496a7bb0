package filesystem

import (
	"io/fs"
	"time"
)

// FileInfo is a snapshot of a node's attributes taken by Stat. It satisfies
// [io/fs.FileInfo]; later changes to the node do not show through.
type FileInfo struct {
	name  string
	size  int64
	mode  fs.FileMode
	atime time.Time
	mtime time.Time
	ctime time.Time
}

func newFileInfo(n *Node) *FileInfo {
	name := n.Name()
	if n.IsRoot() {
		name = "/"
	}
	mode := FileMode
	if n.IsDir() {
		mode = DirMode
	}
	return &FileInfo{
		name:  name,
		size:  n.Size(),
		mode:  mode,
		atime: n.Atime(),
		mtime: n.Mtime(),
		ctime: n.Ctime(),
	}
}

func (fi *FileInfo) Name() string       { return fi.name }
func (fi *FileInfo) Size() int64        { return fi.size }
func (fi *FileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi *FileInfo) ModTime() time.Time { return fi.mtime }
func (fi *FileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi *FileInfo) IsFile() bool       { return fi.mode.IsRegular() }
func (fi *FileInfo) Sys() any           { return nil }

func (fi *FileInfo) Atime() time.Time { return fi.atime }
func (fi *FileInfo) Mtime() time.Time { return fi.mtime }
func (fi *FileInfo) Ctime() time.Time { return fi.ctime }

var _ fs.FileInfo = (*FileInfo)(nil)
