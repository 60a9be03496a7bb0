package filesystem

import (
	"syscall"

	"github.com/brettbedarf/fakefs"
	"github.com/brettbedarf/fakefs/internal/codec"
	"github.com/brettbedarf/fakefs/internal/util"
)

// Operation names used in returned *fs.PathError values.
const (
	opStat       = "stat"
	opReadDir    = "readdir"
	opReadFile   = "readfile"
	opWriteFile  = "writefile"
	opAppendFile = "appendfile"
	opMkdir      = "mkdir"
	opRmdir      = "rmdir"
	opUnlink     = "unlink"
	opRename     = "rename"
)

func logFail(logger util.Logger, err error) error {
	logger.Debug().Err(err).Msg("Operation failed")
	return err
}

// explicitEncoding canonicalizes the encoding named by opts; "" when none is named.
func explicitEncoding(opts []fakefs.EncodingOption) (fakefs.Encoding, error) {
	enc := fakefs.ResolveEncoding(opts...)
	if enc == "" {
		return "", nil
	}
	return codec.Canonical(enc)
}

// Stat returns a snapshot of the node at name.
func (fs *FileSystem) Stat(name string) (*FileInfo, error) {
	logger := fs.logger("FS.Stat")
	logger.Trace().Str("path", name).Msg("Stat called")

	node := fs.locate(fs.segments(name))
	if node == nil {
		return nil, logFail(logger, pathError(opStat, name, syscall.ENOENT))
	}
	return newFileInfo(node), nil
}

// Exists reports whether any node is present at name. It never fails.
func (fs *FileSystem) Exists(name string) bool {
	return fs.locate(fs.segments(name)) != nil
}

// ReadDir returns the names of the directory's children in lexical order.
func (fs *FileSystem) ReadDir(name string) ([]string, error) {
	logger := fs.logger("FS.ReadDir")
	logger.Trace().Str("path", name).Msg("ReadDir called")

	node := fs.locate(fs.segments(name))
	if node == nil {
		return nil, logFail(logger, pathError(opReadDir, name, syscall.ENOENT))
	}
	if !node.IsDir() {
		return nil, logFail(logger, pathError(opReadDir, name, syscall.ENOTDIR))
	}
	return node.ChildNames(), nil
}

func (fs *FileSystem) lookupFile(logger util.Logger, name string) (*Node, error) {
	node := fs.locate(fs.segments(name))
	if node == nil {
		return nil, logFail(logger, pathError(opReadFile, name, syscall.ENOENT))
	}
	if node.IsDir() {
		return nil, logFail(logger, pathError(opReadFile, name, syscall.EISDIR))
	}
	return node, nil
}

// ReadFile returns a copy of the file's raw content.
func (fs *FileSystem) ReadFile(name string) ([]byte, error) {
	logger := fs.logger("FS.ReadFile")
	logger.Trace().Str("path", name).Msg("ReadFile called")

	node, err := fs.lookupFile(logger, name)
	if err != nil {
		return nil, err
	}
	return node.Content(), nil
}

// ReadFileString returns the file's content decoded as text. The encoding is
// the one named by opts, else the file's default encoding, else the configured
// default.
func (fs *FileSystem) ReadFileString(name string, opts ...fakefs.EncodingOption) (string, error) {
	logger := fs.logger("FS.ReadFileString")
	logger.Trace().Str("path", name).Msg("ReadFileString called")

	enc, err := explicitEncoding(opts)
	if err != nil {
		return "", logFail(logger, pathError(opReadFile, name, err))
	}
	node, err := fs.lookupFile(logger, name)
	if err != nil {
		return "", err
	}
	if enc == "" {
		enc = node.Encoding()
	}
	if enc == "" {
		enc = fs.cfg.DefaultEncoding
	}
	text, err := codec.Decode(enc, node.content)
	if err != nil {
		return "", logFail(logger, pathError(opReadFile, name, err))
	}
	return text, nil
}

// WriteFile creates or overwrites the file at name with data. The parent must
// already exist as a directory. Creating a file touches the parent's mtime and
// ctime; overwriting an existing file replaces its content and touches no
// timestamps at all.
func (fs *FileSystem) WriteFile(name string, data []byte) error {
	logger := fs.logger("FS.WriteFile")
	logger.Trace().Str("path", name).Int("len", len(data)).Msg("WriteFile called")

	return fs.writeFile(logger, opWriteFile, name, data, "")
}

// WriteFileString is [FileSystem.WriteFile] for text, converted with the
// encoding named by opts (or the configured default). A named encoding also
// becomes the file's default encoding.
func (fs *FileSystem) WriteFileString(name, text string, opts ...fakefs.EncodingOption) error {
	logger := fs.logger("FS.WriteFileString")
	logger.Trace().Str("path", name).Int("len", len(text)).Msg("WriteFileString called")

	data, enc, err := fs.encodeText(text, opts)
	if err != nil {
		return logFail(logger, pathError(opWriteFile, name, err))
	}
	return fs.writeFile(logger, opWriteFile, name, data, enc)
}

func (fs *FileSystem) encodeText(text string, opts []fakefs.EncodingOption) ([]byte, fakefs.Encoding, error) {
	enc, err := explicitEncoding(opts)
	if err != nil {
		return nil, "", err
	}
	conv := enc
	if conv == "" {
		conv = fs.cfg.DefaultEncoding
	}
	data, err := codec.Encode(conv, text)
	if err != nil {
		return nil, "", err
	}
	return data, enc, nil
}

func (fs *FileSystem) writeFile(logger util.Logger, op, name string, data []byte, enc fakefs.Encoding) error {
	segs := fs.segments(name)
	if len(segs) == 0 {
		return logFail(logger, pathError(op, name, syscall.EISDIR))
	}
	dirSegs, base := splitParent(segs)
	parent, err := fs.get(dirSegs)
	if err != nil {
		return logFail(logger, pathError(op, name, err))
	}
	if !parent.IsDir() {
		return logFail(logger, pathError(op, name, syscall.ENOTDIR))
	}

	if existing, ok := parent.GetChild(base); ok {
		if existing.IsDir() {
			return logFail(logger, pathError(op, name, syscall.EISDIR))
		}
		existing.setContent(data)
		if enc != "" {
			existing.encoding = enc
		}
		return nil
	}

	now := fs.now()
	parent.updateTimes(now)
	inode := NewInode(fakefs.FileNodeType, "", now, fakefs.Attr{})
	inode.setContent(data)
	inode.encoding = enc
	if err := fs.insert(segs, NewNode(base, inode)); err != nil {
		return logFail(logger, pathError(op, name, err))
	}
	return nil
}

// AppendFile appends data to the file at name, creating it as WriteFile would
// when absent. Appending to an existing file touches that file's mtime and
// ctime, not its parent's.
func (fs *FileSystem) AppendFile(name string, data []byte) error {
	logger := fs.logger("FS.AppendFile")
	logger.Trace().Str("path", name).Int("len", len(data)).Msg("AppendFile called")

	return fs.appendFile(logger, name, data, "")
}

// AppendFileString is [FileSystem.AppendFile] for text; see
// [FileSystem.WriteFileString] for how the encoding is chosen.
func (fs *FileSystem) AppendFileString(name, text string, opts ...fakefs.EncodingOption) error {
	logger := fs.logger("FS.AppendFileString")
	logger.Trace().Str("path", name).Int("len", len(text)).Msg("AppendFileString called")

	data, enc, err := fs.encodeText(text, opts)
	if err != nil {
		return logFail(logger, pathError(opAppendFile, name, err))
	}
	return fs.appendFile(logger, name, data, enc)
}

func (fs *FileSystem) appendFile(logger util.Logger, name string, data []byte, enc fakefs.Encoding) error {
	node := fs.locate(fs.segments(name))
	if node == nil {
		return fs.writeFile(logger, opAppendFile, name, data, enc)
	}
	if node.IsDir() {
		return logFail(logger, pathError(opAppendFile, name, syscall.EISDIR))
	}
	node.appendContent(data)
	node.updateTimes(fs.now())
	return nil
}

// Mkdir creates an empty directory at name. Unlike declarations it does not
// create missing ancestors.
func (fs *FileSystem) Mkdir(name string) error {
	logger := fs.logger("FS.Mkdir")
	logger.Trace().Str("path", name).Msg("Mkdir called")

	segs := fs.segments(name)
	if fs.locate(segs) != nil {
		return logFail(logger, pathError(opMkdir, name, syscall.EEXIST))
	}
	dirSegs, base := splitParent(segs)
	parent, err := fs.get(dirSegs)
	if err != nil {
		return logFail(logger, pathError(opMkdir, name, err))
	}
	if !parent.IsDir() {
		return logFail(logger, pathError(opMkdir, name, syscall.ENOTDIR))
	}

	now := fs.now()
	parent.updateTimes(now)
	dir := NewNode(base, NewInode(fakefs.DirNodeType, "", now, fakefs.Attr{}))
	if err := fs.insert(segs, dir); err != nil {
		return logFail(logger, pathError(opMkdir, name, err))
	}
	return nil
}

// Rmdir removes the empty directory at name.
func (fs *FileSystem) Rmdir(name string) error {
	logger := fs.logger("FS.Rmdir")
	logger.Trace().Str("path", name).Msg("Rmdir called")

	segs := fs.segments(name)
	node := fs.locate(segs)
	if node == nil {
		return logFail(logger, pathError(opRmdir, name, syscall.ENOENT))
	}
	if !node.IsDir() {
		return logFail(logger, pathError(opRmdir, name, syscall.ENOTDIR))
	}
	if node.NumChildren() > 0 {
		return logFail(logger, pathError(opRmdir, name, syscall.ENOTEMPTY))
	}
	if node.IsRoot() {
		return logFail(logger, pathError(opRmdir, name, syscall.EPERM))
	}
	return fs.unlinkNode(logger, opRmdir, name, segs, node)
}

// Unlink removes the file at name.
func (fs *FileSystem) Unlink(name string) error {
	logger := fs.logger("FS.Unlink")
	logger.Trace().Str("path", name).Msg("Unlink called")

	segs := fs.segments(name)
	node := fs.locate(segs)
	if node == nil {
		return logFail(logger, pathError(opUnlink, name, syscall.ENOENT))
	}
	if node.IsDir() {
		return logFail(logger, pathError(opUnlink, name, syscall.EISDIR))
	}
	return fs.unlinkNode(logger, opUnlink, name, segs, node)
}

func (fs *FileSystem) unlinkNode(logger util.Logger, op, name string, segs []string, node *Node) error {
	node.Parent().updateTimes(fs.now())
	if _, err := fs.remove(segs); err != nil {
		return logFail(logger, pathError(op, name, err))
	}
	return nil
}

// Rename moves the node at oldpath to newpath, replacing a file already at
// newpath. The moved node keeps its identity and attributes; both parents get
// their mtime and ctime touched.
//
// The move is not atomic: the node is unlinked from its old parent before it
// is linked under the new one.
func (fs *FileSystem) Rename(oldpath, newpath string) error {
	logger := fs.logger("FS.Rename")
	logger.Trace().Str("old", oldpath).Str("new", newpath).Msg("Rename called")

	fail := func(errno syscall.Errno) error {
		return logFail(logger, linkError(opRename, oldpath, newpath, errno))
	}

	oldSegs := fs.segments(oldpath)
	newSegs := fs.segments(newpath)

	src := fs.locate(oldSegs)
	if src == nil {
		return fail(syscall.ENOENT)
	}
	dst := fs.locate(newSegs)
	if dst != nil && dst.IsDir() {
		return fail(syscall.EPERM)
	}
	if src.IsRoot() {
		return fail(syscall.EPERM)
	}
	newDirSegs, _ := splitParent(newSegs)
	newParent := fs.locate(newDirSegs)
	if newParent == nil {
		return fail(syscall.ENOENT)
	}
	if !newParent.IsDir() {
		return fail(syscall.ENOTDIR)
	}
	if src.Contains(newParent) {
		return fail(syscall.EPERM)
	}
	if dst == src {
		return nil
	}

	now := fs.now()
	src.Parent().updateTimes(now)
	if _, err := fs.remove(oldSegs); err != nil {
		return logFail(logger, linkError(opRename, oldpath, newpath, err))
	}
	newParent.updateTimes(now)
	if err := fs.insert(newSegs, src); err != nil {
		return logFail(logger, linkError(opRename, oldpath, newpath, err))
	}
	logger.Debug().Str("id", src.ID()).Str("path", src.Path()).Msg("Renamed node")
	return nil
}
