// Package patch redirects a program's filesystem calls to an in-memory
// [filesystem.FileSystem] and back.
//
// A program routes its filesystem access through a [Table] it owns,
// initialized with [OS]. A test swaps every entry for the fake with [Apply]
// and puts the originals back with [Patch.Restore]:
//
//	p := patch.Apply(&app.FS, fake)
//	defer p.Restore()
package patch

import (
	"errors"
	iofs "io/fs"
	"os"
	"syscall"

	"github.com/brettbedarf/fakefs/filesystem"
	"github.com/brettbedarf/fakefs/internal/util"
)

// Table holds the filesystem functions a program calls through.
type Table struct {
	Stat       func(name string) (iofs.FileInfo, error)
	Exists     func(name string) bool
	ReadDir    func(name string) ([]string, error)
	ReadFile   func(name string) ([]byte, error)
	WriteFile  func(name string, data []byte) error
	AppendFile func(name string, data []byte) error
	Mkdir      func(name string) error
	Rmdir      func(name string) error
	Unlink     func(name string) error
	Rename     func(oldpath, newpath string) error
}

// Default permissions for nodes created through [OS].
const (
	osFilePerm iofs.FileMode = 0o644
	osDirPerm  iofs.FileMode = 0o755
)

// OS returns a Table backed by the real filesystem via package os. Rmdir and
// Unlink check the node type first so they fail like their POSIX namesakes.
func OS() Table {
	return Table{
		Stat: os.Stat,
		Exists: func(name string) bool {
			_, err := os.Lstat(name)
			return err == nil
		},
		ReadDir: func(name string) ([]string, error) {
			entries, err := os.ReadDir(name)
			if err != nil {
				return nil, err
			}
			names := make([]string, len(entries))
			for i, e := range entries {
				names[i] = e.Name()
			}
			return names, nil
		},
		ReadFile: os.ReadFile,
		WriteFile: func(name string, data []byte) error {
			return os.WriteFile(name, data, osFilePerm)
		},
		AppendFile: func(name string, data []byte) error {
			f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, osFilePerm)
			if err != nil {
				return err
			}
			_, err = f.Write(data)
			return errors.Join(err, f.Close())
		},
		Mkdir: func(name string) error {
			return os.Mkdir(name, osDirPerm)
		},
		Rmdir: func(name string) error {
			fi, err := os.Lstat(name)
			if err != nil {
				return err
			}
			if !fi.IsDir() {
				return &iofs.PathError{Op: "rmdir", Path: name, Err: syscall.ENOTDIR}
			}
			return os.Remove(name)
		},
		Unlink: func(name string) error {
			fi, err := os.Lstat(name)
			if err != nil {
				return err
			}
			if fi.IsDir() {
				return &iofs.PathError{Op: "unlink", Path: name, Err: syscall.EISDIR}
			}
			return os.Remove(name)
		},
		Rename: os.Rename,
	}
}

// Bind returns a Table whose every entry calls the matching operation of fsys.
func Bind(fsys *filesystem.FileSystem) Table {
	return Table{
		Stat: func(name string) (iofs.FileInfo, error) {
			fi, err := fsys.Stat(name)
			if err != nil {
				return nil, err
			}
			return fi, nil
		},
		Exists:     fsys.Exists,
		ReadDir:    fsys.ReadDir,
		ReadFile:   fsys.ReadFile,
		WriteFile:  fsys.WriteFile,
		AppendFile: fsys.AppendFile,
		Mkdir:      fsys.Mkdir,
		Rmdir:      fsys.Rmdir,
		Unlink:     fsys.Unlink,
		Rename:     fsys.Rename,
	}
}

// Patch records the entries a Table held before [Apply] replaced them.
type Patch struct {
	target   *Table
	original Table
	restored bool
}

// Apply replaces every entry of target with one bound to fsys and returns
// the Patch that undoes it.
func Apply(target *Table, fsys *filesystem.FileSystem) *Patch {
	p := &Patch{target: target, original: *target}
	*target = Bind(fsys)
	logger := util.GetLeveledLogger("patch", fsys.Config().LogLvl)
	logger.Debug().Msg("Applied filesystem patch")
	return p
}

// Restore puts back the entries target held when the patch was applied.
// Calling it again is a no-op.
func (p *Patch) Restore() {
	if p.restored {
		return
	}
	*p.target = p.original
	p.restored = true
}

// Active reports whether the patch is still in place.
func (p *Patch) Active() bool {
	return !p.restored
}
