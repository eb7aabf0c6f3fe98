package storage

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestFSWriteReadRemove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, err := NewFS(t.TempDir())
	require.NoError(t, err)

	path, err := s.Write(ctx, "resumes/abc.pdf", strings.NewReader("%PDF-1.7"))
	require.NoError(t, err)
	require.Equal(t, "resumes/abc.pdf", path)

	data, err := s.Read(ctx, path)
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.7", string(data))

	require.NoError(t, s.Remove(ctx, path))
	require.NoError(t, s.Remove(ctx, path))

	_, err = s.Read(ctx, path)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFSRejectsEscapes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, err := NewFS(t.TempDir())
	require.NoError(t, err)

	for _, p := range []string{"", "../x", "a/../../x", "/etc/passwd", "."} {
		_, err := s.Read(ctx, p)
		require.ErrorIs(t, err, ErrOutsideRoot, p)
	}
	_, err = s.Write(ctx, "../evil", strings.NewReader("x"))
	require.ErrorIs(t, err, ErrOutsideRoot)
}

func TestFSHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	s, err := NewFS(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Read(ctx, "a.pdf")
	require.ErrorIs(t, err, context.Canceled)
}

func TestMemFSWriteReplacesAtomically(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mem := afero.NewMemMapFs()
	s := New(mem)
	require.Empty(t, s.Root())

	for _, body := range []string{"v1", "v2"} {
		path, err := s.Write(ctx, "previews/a.png", strings.NewReader(body))
		require.NoError(t, err)
		require.Equal(t, "previews/a.png", path)
	}
	data, err := s.Read(ctx, "previews/a.png")
	require.NoError(t, err)
	require.Equal(t, "v2", string(data))

	entries, err := afero.ReadDir(mem, "previews")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	_, err = s.Read(ctx, "previews/missing.png")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFSConfinedToRoot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	root := t.TempDir()
	s, err := NewFS(root)
	require.NoError(t, err)
	require.Equal(t, root, s.Root())

	_, err = s.Write(ctx, "resumes/x.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	ok, err := afero.Exists(afero.NewOsFs(), filepath.Join(root, "resumes", "x.pdf"))
	require.NoError(t, err)
	require.True(t, ok)
}
