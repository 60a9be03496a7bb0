package filesystem

import "github.com/brettbedarf/fakefs"

// Callbacks exposes every operation in continuation-passing form. Each method
// runs the direct form and hands its outcome to the continuation exactly once,
// before returning, on the caller's goroutine. Nothing is deferred to later.
// A nil continuation is allowed; the operation still runs.
type Callbacks struct {
	fs *FileSystem
}

// Callbacks returns the continuation-passing view of fs.
func (fs *FileSystem) Callbacks() *Callbacks {
	return &Callbacks{fs: fs}
}

// deliver runs fn and forwards its outcome to cb.
func deliver[T any](cb func(error, T), fn func() (T, error)) {
	res, err := fn()
	if cb != nil {
		cb(err, res)
	}
}

func deliverErr(cb func(error), fn func() error) {
	var wrapped func(error, struct{})
	if cb != nil {
		wrapped = func(err error, _ struct{}) { cb(err) }
	}
	deliver(wrapped, func() (struct{}, error) { return struct{}{}, fn() })
}

func (c *Callbacks) Stat(name string, cb func(error, *FileInfo)) {
	deliver(cb, func() (*FileInfo, error) { return c.fs.Stat(name) })
}

// Exists never fails, so its continuation only receives the answer.
func (c *Callbacks) Exists(name string, cb func(bool)) {
	exists := c.fs.Exists(name)
	if cb != nil {
		cb(exists)
	}
}

func (c *Callbacks) ReadDir(name string, cb func(error, []string)) {
	deliver(cb, func() ([]string, error) { return c.fs.ReadDir(name) })
}

func (c *Callbacks) ReadFile(name string, cb func(error, []byte)) {
	deliver(cb, func() ([]byte, error) { return c.fs.ReadFile(name) })
}

// ReadFileString takes its encoding before the continuation; opt may be nil.
func (c *Callbacks) ReadFileString(name string, opt fakefs.EncodingOption, cb func(error, string)) {
	deliver(cb, func() (string, error) { return c.fs.ReadFileString(name, opt) })
}

func (c *Callbacks) WriteFile(name string, data []byte, cb func(error)) {
	deliverErr(cb, func() error { return c.fs.WriteFile(name, data) })
}

func (c *Callbacks) WriteFileString(name, text string, opt fakefs.EncodingOption, cb func(error)) {
	deliverErr(cb, func() error { return c.fs.WriteFileString(name, text, opt) })
}

func (c *Callbacks) AppendFile(name string, data []byte, cb func(error)) {
	deliverErr(cb, func() error { return c.fs.AppendFile(name, data) })
}

func (c *Callbacks) AppendFileString(name, text string, opt fakefs.EncodingOption, cb func(error)) {
	deliverErr(cb, func() error { return c.fs.AppendFileString(name, text, opt) })
}

func (c *Callbacks) Mkdir(name string, cb func(error)) {
	deliverErr(cb, func() error { return c.fs.Mkdir(name) })
}

func (c *Callbacks) Rmdir(name string, cb func(error)) {
	deliverErr(cb, func() error { return c.fs.Rmdir(name) })
}

func (c *Callbacks) Unlink(name string, cb func(error)) {
	deliverErr(cb, func() error { return c.fs.Unlink(name) })
}

func (c *Callbacks) Rename(oldpath, newpath string, cb func(error)) {
	deliverErr(cb, func() error { return c.fs.Rename(oldpath, newpath) })
}
