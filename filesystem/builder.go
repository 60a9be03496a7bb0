package filesystem

import (
	"path"

	"github.com/brettbedarf/fakefs"
	"github.com/brettbedarf/fakefs/internal/codec"
)

// Declarations below return the FileSystem for chaining and panic on misuse
// (declaring through a file, an unknown encoding). Use AddDirNode and
// AddFileNode to get an error instead.

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Dir declares a directory at p, creating missing ancestors. At most one attr
// is used; its set timestamps override the creation instant.
func (fs *FileSystem) Dir(p string, attr ...fakefs.Attr) *FileSystem {
	req := &fakefs.DirRequest{NodeRequest: fakefs.NodeRequest{Path: p}}
	if len(attr) > 0 {
		req.Attr = attr[0]
	}
	must(fs.AddDirNode(req))
	return fs
}

// File declares a file at p holding content. An encoding in opts becomes the
// file's default encoding for string reads.
func (fs *FileSystem) File(p string, content []byte, opts ...fakefs.EncodingOption) *FileSystem {
	must(fs.AddFileNode(&fakefs.FileRequest{
		NodeRequest: fakefs.NodeRequest{Path: p},
		Content:     content,
		Encoding:    fakefs.ResolveEncoding(opts...),
	}))
	return fs
}

// FileString declares a file at p whose content is text converted with the
// encoding in opts (the configured default when none is given).
func (fs *FileSystem) FileString(p, text string, opts ...fakefs.EncodingOption) *FileSystem {
	enc := fakefs.ResolveEncoding(opts...)
	conv := enc
	if conv == "" {
		conv = fs.cfg.DefaultEncoding
	}
	content := must(codec.Encode(conv, text))
	return fs.File(p, content, enc)
}

// FileWith declares a file at p from a full request, for fixtures that need
// timestamp overrides or a fixed identity. req.Path is ignored.
func (fs *FileSystem) FileWith(p string, req fakefs.FileRequest) *FileSystem {
	req.Path = p
	must(fs.AddFileNode(&req))
	return fs
}

// At returns a Builder whose declarations are relative to p.
func (fs *FileSystem) At(p string) *Builder {
	return &Builder{fs: fs, prefix: p}
}

// Builder declares nodes below a fixed path prefix. It holds no tree state of
// its own; every call goes straight to the owning FileSystem.
type Builder struct {
	fs     *FileSystem
	prefix string
}

func (b *Builder) join(p string) string {
	return path.Join(b.prefix, p)
}

// Dir is [FileSystem.Dir] relative to the builder's prefix.
func (b *Builder) Dir(p string, attr ...fakefs.Attr) *Builder {
	b.fs.Dir(b.join(p), attr...)
	return b
}

// File is [FileSystem.File] relative to the builder's prefix.
func (b *Builder) File(p string, content []byte, opts ...fakefs.EncodingOption) *Builder {
	b.fs.File(b.join(p), content, opts...)
	return b
}

// FileString is [FileSystem.FileString] relative to the builder's prefix.
func (b *Builder) FileString(p, text string, opts ...fakefs.EncodingOption) *Builder {
	b.fs.FileString(b.join(p), text, opts...)
	return b
}

// FileWith is [FileSystem.FileWith] relative to the builder's prefix.
func (b *Builder) FileWith(p string, req fakefs.FileRequest) *Builder {
	b.fs.FileWith(b.join(p), req)
	return b
}

// At returns a new Builder nested below this one's prefix.
func (b *Builder) At(p string) *Builder {
	return &Builder{fs: b.fs, prefix: b.join(p)}
}

// Prefix returns the path declarations are made relative to.
func (b *Builder) Prefix() string {
	return b.prefix
}

// FS returns the FileSystem the builder declares into.
func (b *Builder) FS() *FileSystem {
	return b.fs
}
