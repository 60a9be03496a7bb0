package fakefs

import "time"

// Attr overrides a node's timestamps at construction.
// Nil fields default to the creation instant.
type Attr struct {
	Atime *time.Time // Last accessed at
	Mtime *time.Time // Last modified at
	Ctime *time.Time // Last status change at
}

// NodeRequest has common fields embedded in concrete request types
type NodeRequest struct {
	Path string
	UUID string // Optional identity; generated when empty
	Attr
}

type DirRequest struct {
	NodeRequest
}

type FileRequest struct {
	NodeRequest
	Content []byte
	// Encoding is the file's default text encoding, used by string reads
	// that do not name one.
	Encoding Encoding
}
