package filesystem

import (
	"fmt"
	"syscall"
	"time"

	"github.com/brettbedarf/fakefs"
	"github.com/brettbedarf/fakefs/config"
	"github.com/brettbedarf/fakefs/internal/codec"
	"github.com/brettbedarf/fakefs/internal/util"
)

// FileSystem is an in-memory tree of directories and files with POSIX-like
// operations on top. It is meant for single-goroutine use inside tests;
// concurrent mutation is not arbitrated.
type FileSystem struct {
	cfg   *config.Config
	clock fakefs.Clock
	root  *Node // Root of node tree; always a directory
}

// Option configures a FileSystem at construction.
type Option func(fs *FileSystem)

// WithClock makes the engine read creation and modification instants from c.
func WithClock(c fakefs.Clock) Option {
	return func(fs *FileSystem) {
		fs.clock = c
	}
}

// NewFS creates an empty FileSystem holding only the root directory.
// A nil cfg uses [config.NewDefaultConfig].
func NewFS(cfg *config.Config, opts ...Option) *FileSystem {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	fs := &FileSystem{cfg: cfg, clock: fakefs.SystemClock}
	for _, opt := range opts {
		opt(fs)
	}
	fs.root = newRootNode(NewInode(fakefs.DirNodeType, "", fs.now(), fakefs.Attr{}))
	return fs
}

// Root returns the root directory node.
func (fs *FileSystem) Root() *Node {
	return fs.root
}

// Config returns the configuration the engine was built with.
func (fs *FileSystem) Config() *config.Config {
	return fs.cfg
}

func (fs *FileSystem) now() time.Time {
	return fs.clock.Now()
}

func (fs *FileSystem) logger(component string) util.Logger {
	return util.GetLeveledLogger(component, fs.cfg.LogLvl)
}

func (fs *FileSystem) segments(p string) []string {
	return Segments(fs.cfg.Cwd, p)
}

// locate walks from the root following segs. It returns nil as soon as a
// segment is missing or an intermediate node is a file.
func (fs *FileSystem) locate(segs []string) *Node {
	cur := fs.root
	for _, name := range segs {
		child, ok := cur.GetChild(name)
		if !ok {
			return nil
		}
		cur = child
	}
	return cur
}

// get is locate that fails with ENOENT.
func (fs *FileSystem) get(segs []string) (*Node, error) {
	node := fs.locate(segs)
	if node == nil {
		return nil, syscall.ENOENT
	}
	return node, nil
}

// insert links node at segs, creating every missing intermediate directory
// like `mkdir -p`, and silently replaces whatever occupied the final slot.
// It applies none of the existence or type checks of the operation layer.
func (fs *FileSystem) insert(segs []string, node *Node) error {
	return fs.link(segs, node, nil)
}

// link is insert that records how to undo each edit in j when j is non-nil.
func (fs *FileSystem) link(segs []string, node *Node, j *journal) error {
	if len(segs) == 0 {
		return &ConflictError{Path: "/", At: "/", Existing: fs.root.kind()}
	}
	logger := fs.logger("FS.insert")

	dirSegs, name := splitParent(segs)
	cur := fs.root
	for i, seg := range dirSegs {
		child, ok := cur.GetChild(seg)
		if !ok {
			child = NewNode(seg, NewInode(fakefs.DirNodeType, "", fs.now(), fakefs.Attr{}))
			cur.AddChild(seg, child)
			parent := cur
			j.record(func() { parent.RemoveChild(seg) })
			logger.Debug().Str("path", segmentsPath(segs[:i+1])).Msg("Created intermediate dir")
		} else if !child.IsDir() {
			return &ConflictError{
				Path:     segmentsPath(segs),
				At:       segmentsPath(segs[:i+1]),
				Existing: child.kind(),
			}
		}
		cur = child
	}

	prev, existed := cur.GetChild(name)
	cur.AddChild(name, node)
	j.record(func() {
		if existed {
			cur.AddChild(name, prev)
		} else {
			cur.RemoveChild(name)
		}
	})
	return nil
}

// journal holds undo steps for the tree edits of one [FileSystem.Declare].
type journal []func()

func (j *journal) record(undo func()) {
	if j != nil {
		*j = append(*j, undo)
	}
}

// rollback runs the undo steps newest first.
func (j journal) rollback() {
	for i := len(j) - 1; i >= 0; i-- {
		j[i]()
	}
}

// remove unlinks the node named by the last segment from its parent and
// returns it. The parent must exist (ENOENT) and be a directory (ENOTDIR).
func (fs *FileSystem) remove(segs []string) (*Node, error) {
	if len(segs) == 0 {
		return nil, syscall.EPERM
	}
	dirSegs, name := splitParent(segs)
	parent, err := fs.get(dirSegs)
	if err != nil {
		return nil, err
	}
	if !parent.IsDir() {
		return nil, syscall.ENOTDIR
	}
	node, ok := parent.RemoveChild(name)
	if !ok {
		return nil, syscall.ENOENT
	}
	return node, nil
}

// AddDirNode declares a directory at req.Path, creating missing ancestors.
// A directory already at that path is replaced by the new, empty one.
// Declaring the root applies req's timestamp overrides to the root itself.
//
// Parent timestamps are not touched; declarations describe the initial state.
func (fs *FileSystem) AddDirNode(req *fakefs.DirRequest) (*Node, error) {
	return fs.addDir(req, nil)
}

func (fs *FileSystem) addDir(req *fakefs.DirRequest, j *journal) (*Node, error) {
	logger := fs.logger("AddDirNode")

	segs := fs.segments(req.Path)
	if len(segs) == 0 {
		root := fs.root.Inode
		atime, mtime, ctime := root.atime, root.mtime, root.ctime
		j.record(func() { root.atime, root.mtime, root.ctime = atime, mtime, ctime })
		root.atime = valueOrDefault(req.Atime, root.atime)
		root.mtime = valueOrDefault(req.Mtime, root.mtime)
		root.ctime = valueOrDefault(req.Ctime, root.ctime)
		return fs.root, nil
	}

	node := NewNode(segs[len(segs)-1], NewInode(fakefs.DirNodeType, req.UUID, fs.now(), req.Attr))
	if err := fs.link(segs, node, j); err != nil {
		logger.Error().Err(err).Str("path", req.Path).Msg("Failed to declare directory")
		return nil, err
	}
	logger.Trace().Str("path", node.Path()).Msg("Declared dir node")
	return node, nil
}

// AddFileNode declares a file at req.Path holding req.Content, creating
// missing ancestor directories. Any node already at that path is replaced.
func (fs *FileSystem) AddFileNode(req *fakefs.FileRequest) (*Node, error) {
	return fs.addFile(req, nil)
}

func (fs *FileSystem) addFile(req *fakefs.FileRequest, j *journal) (*Node, error) {
	logger := fs.logger("AddFileNode")

	var enc fakefs.Encoding
	if req.Encoding != "" {
		var err error
		if enc, err = codec.Canonical(req.Encoding); err != nil {
			logger.Error().Err(err).Str("path", req.Path).Msg("Failed to declare file")
			return nil, err
		}
	}

	segs := fs.segments(req.Path)
	inode := NewInode(fakefs.FileNodeType, req.UUID, fs.now(), req.Attr)
	inode.setContent(req.Content)
	inode.encoding = enc

	var name string
	if len(segs) > 0 {
		name = segs[len(segs)-1]
	}
	node := NewNode(name, inode)
	if err := fs.link(segs, node, j); err != nil {
		logger.Error().Err(err).Str("path", req.Path).Msg("Failed to declare file")
		return nil, err
	}
	logger.Trace().Str("path", node.Path()).Int64("size", node.Size()).Msg("Declared file node")
	return node, nil
}

// Declare declares dirs and then files, each in the order given, as one
// unit. When a declaration fails the edits of the ones before it are undone
// and the tree is left exactly as it was.
func (fs *FileSystem) Declare(dirs []*fakefs.DirRequest, files []*fakefs.FileRequest) error {
	logger := fs.logger("Declare")

	var j journal
	fail := func(p string, err error) error {
		j.rollback()
		logger.Debug().Str("path", p).Int("undone", len(j)).Msg("Rolled back declarations")
		return fmt.Errorf("failed to declare %s: %w", p, err)
	}
	for _, req := range dirs {
		if _, err := fs.addDir(req, &j); err != nil {
			return fail(req.Path, err)
		}
	}
	for _, req := range files {
		if _, err := fs.addFile(req, &j); err != nil {
			return fail(req.Path, err)
		}
	}
	return nil
}
