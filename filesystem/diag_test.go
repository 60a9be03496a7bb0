package filesystem

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brettbedarf/fakefs"
	"github.com/brettbedarf/fakefs/internal/util"
)

func TestFileSystem_Digest(t *testing.T) {
	t.Parallel()

	build := func(t *testing.T) *FileSystem {
		fs, _ := newTestFS(t)
		fs.Dir("/a").FileString("/a/x", "1").FileString("/b", "2")
		return fs
	}

	t.Run("EqualTreesIgnoringIdentity", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, build(t).Digest(), build(t).Digest())
	})

	t.Run("InsertionOrderIrrelevant", func(t *testing.T) {
		t.Parallel()
		fs, _ := newTestFS(t)
		fs.FileString("/b", "2").FileString("/a/x", "1")
		assert.Equal(t, build(t).Digest(), fs.Digest())
	})

	changes := map[string]func(t *testing.T, fs *FileSystem){
		"content":  func(t *testing.T, fs *FileSystem) { fs.FileString("/b", "3") },
		"name":     func(t *testing.T, fs *FileSystem) { require.NoError(t, fs.Rename("/b", "/c")) },
		"type":     func(t *testing.T, fs *FileSystem) { fs.Dir("/b") },
		"encoding": func(t *testing.T, fs *FileSystem) { fs.File("/b", []byte("2"), fakefs.Latin1) },
		"mtime": func(t *testing.T, fs *FileSystem) {
			fs.FileWith("/b", fakefs.FileRequest{
				NodeRequest: fakefs.NodeRequest{Attr: fakefs.Attr{Mtime: util.Pointer(time.Unix(1, 0))}},
				Content:     []byte("2"),
			})
		},
		"extra_dir": func(t *testing.T, fs *FileSystem) { fs.Dir("/a/y") },
	}
	for name, change := range changes {
		t.Run("Detects_"+name, func(t *testing.T) {
			t.Parallel()
			fs := build(t)
			change(t, fs)
			assert.NotEqual(t, build(t).Digest(), fs.Digest())
		})
	}
}

func TestFileSystem_Dump(t *testing.T) {
	t.Parallel()

	fs, _ := newTestFS(t)
	fs.Dir("/home").FileString("/home/note.txt", "hi").File("/big", make([]byte, 2048))

	var buf bytes.Buffer
	require.NoError(t, fs.Dump(&buf))

	want := "" +
		"/  2024-01-02T03:04:05Z\n" +
		"  big  2.0 kB  2024-01-02T03:04:05Z\n" +
		"  home/  2024-01-02T03:04:05Z\n" +
		"    note.txt  2 B  2024-01-02T03:04:05Z\n"
	assert.Equal(t, want, buf.String())
}
