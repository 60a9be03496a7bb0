package filesystem

import (
	"path"
	"strings"
)

// Segments converts a user supplied path into the canonical segment list
// relative to the root. Relative paths are resolved against cwd. The literal
// root path "/" selects the root directly and yields no segments.
//
// Resolution is purely textual; it never consults the tree.
func Segments(cwd, p string) []string {
	if p == "/" {
		return nil
	}
	p = strings.ReplaceAll(p, `\`, "/")
	if !path.IsAbs(p) {
		if !path.IsAbs(cwd) {
			cwd = "/" + cwd
		}
		p = path.Join(cwd, p)
	}
	p = path.Clean(p)
	if p == "/" {
		return nil
	}
	return strings.Split(p[1:], "/")
}

// segmentsPath renders segs as an absolute path for diagnostics.
func segmentsPath(segs []string) string {
	return "/" + strings.Join(segs, "/")
}

// splitParent returns the parent segments and the final name. segs must not be empty.
func splitParent(segs []string) ([]string, string) {
	last := len(segs) - 1
	return segs[:last], segs[last]
}
