package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtree/pkg/fsutil"
)

func TestReadSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title\n"), 0o644))

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()
		content, err := fsutil.ReadSource(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "# Title\n", string(content))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := fsutil.ReadSource(context.Background(), filepath.Join(dir, "missing.md"))
		assert.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()
		_, err := fsutil.ReadSource(context.Background(), dir)
		assert.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := fsutil.ReadSource(ctx, path)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/src/docs")
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"top level", "/src/docs/readme.md", "/out/readme.html"},
		{"nested", "/src/docs/guide/intro.markdown", "/out/guide/intro.html"},
		{"outside root", "/elsewhere/notes.md", "/out/notes.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := fsutil.OutputPath(filepath.FromSlash(tt.source), root, filepath.FromSlash("/out"), ".html")
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates parents and file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a", "b", "out.html")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("<p>x</p>\n"), 0))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<p>x</p>\n", string(content))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, info.Mode().Perm())
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.html")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("one"), 0))
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("two"), 0))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "out.html", entries[0].Name())
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		path := filepath.Join(t.TempDir(), "out.html")
		require.ErrorIs(t, fsutil.WriteAtomic(ctx, path, []byte("x"), 0), context.Canceled)
		assert.NoFileExists(t, path)
	})
}

func TestWriteIfChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.html")

	written, err := fsutil.WriteIfChanged(ctx, path, []byte("a"), 0)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = fsutil.WriteIfChanged(ctx, path, []byte("a"), 0)
	require.NoError(t, err)
	assert.False(t, written)

	written, err = fsutil.WriteIfChanged(ctx, path, []byte("b"), 0)
	require.NoError(t, err)
	assert.True(t, written)
}
