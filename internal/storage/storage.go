// Package storage keeps uploaded resumes and their preview images on disk.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

var (
	ErrNotFound    = errors.New("storage: file not found")
	ErrOutsideRoot = errors.New("storage: path escapes root")
)

// Store is the file-read service the dashboard consumes.
type Store interface {
	Read(ctx context.Context, path string) ([]byte, error)
	Write(ctx context.Context, name string, r io.Reader) (string, error)
	Remove(ctx context.Context, path string) error
}

// FS is a Store over an afero filesystem. Paths handed out and accepted are
// relative to its root.
type FS struct {
	fs   afero.Fs
	root string
}

// New wraps fsys as a Store. fsys is used as is; callers confine it.
func New(fsys afero.Fs) *FS {
	return &FS{fs: fsys}
}

// NewFS creates root if needed and confines the store to it.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir storage root: %w", err)
	}
	return &FS{fs: afero.NewBasePathFs(osFs, abs), root: abs}, nil
}

// Root is the directory NewFS confined the store to, empty for New.
func (s *FS) Root() string { return s.root }

func clean(path string) (string, error) {
	if !filepath.IsLocal(path) {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, path)
	}
	path = filepath.Clean(path)
	if path == "." {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, path)
	}
	return path, nil
}

func (s *FS) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := clean(path)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// Write stores r under name atomically and returns the relative path.
func (s *FS) Write(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	target, err := clean(name)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(target)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := afero.TempFile(s.fs, dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp: %w", err)
	}
	tmpName := filepath.Join(dir, filepath.Base(tmp.Name()))
	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	if err := s.fs.Rename(tmpName, target); err != nil {
		_ = s.fs.Remove(tmpName)
		return "", fmt.Errorf("rename %s: %w", name, err)
	}
	return filepath.ToSlash(target), nil
}

// Remove deletes path. Missing files are not an error.
func (s *FS) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := clean(path)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}
