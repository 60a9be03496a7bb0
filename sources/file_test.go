package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "fixture.bin")
	require.NoError(t, os.WriteFile(p, []byte{0, 1, 2}, 0o644))

	provider, err := newFileSource([]byte(`{"type":"file","path":` + quote(p) + `}`))
	require.NoError(t, err)

	data, err := provider.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2}, data)

	t.Run("Missing", func(t *testing.T) {
		t.Parallel()
		src := &FileSource{Path: filepath.Join(t.TempDir(), "nope")}
		_, err := src.Fetch(context.Background())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("NoPath", func(t *testing.T) {
		t.Parallel()
		_, err := newFileSource([]byte(`{"type":"file"}`))
		assert.Error(t, err)
	})

	t.Run("Canceled", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := (&FileSource{Path: p}).Fetch(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func quote(s string) string {
	return `"` + filepath.ToSlash(s) + `"`
}
