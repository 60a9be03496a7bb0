package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
)

var codes = map[syscall.Errno]string{
	syscall.ENOENT:    "ENOENT",
	syscall.ENOTDIR:   "ENOTDIR",
	syscall.EISDIR:    "EISDIR",
	syscall.EEXIST:    "EEXIST",
	syscall.ENOTEMPTY: "ENOTEMPTY",
	syscall.EPERM:     "EPERM",
}

// Code returns the POSIX code ("ENOENT", "EISDIR", ...) carried by err, or ""
// when err carries none of the codes the engine produces.
func Code(err error) string {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return codes[errno]
	}
	return ""
}

// pathError tags err with the operation and the path as the caller wrote it,
// the same way the os package reports failures.
func pathError(op, name string, err error) error {
	return &fs.PathError{Op: op, Path: name, Err: err}
}

func linkError(op, oldpath, newpath string, err error) error {
	return &os.LinkError{Op: op, Old: oldpath, New: newpath, Err: err}
}

// ConflictError reports a declaration that would have to pass through, or
// replace, a node that cannot hold children. It signals misuse of the
// construction API, not a filesystem condition.
type ConflictError struct {
	Path     string // Path being declared
	At       string // Offending existing node
	Existing string // Kind of the offending node
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("there is already a %s defined at %s (declaring %s)", e.Existing, e.At, e.Path)
}
