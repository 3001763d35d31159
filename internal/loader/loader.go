// Package loader reads project files from the operating system or from an
// injected fs.FS, so the scanner can run against real projects and in-memory
// test trees through one interface.
package loader

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Loader resolves paths against an fs.FS when one is supplied and the OS
// otherwise. fs.FS paths use forward slashes and no leading separator; the
// caller is expected to build them accordingly.
type Loader struct {
	fsys fs.FS
}

// New constructs a Loader. A nil fsys means direct OS access.
func New(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// ReadFile loads the file contents at path.
func (l *Loader) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("loader: file path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if l.fsys != nil {
		return fs.ReadFile(l.fsys, filepath.ToSlash(path))
	}
	return os.ReadFile(path)
}

// ReadDir lists the entries of the directory at path.
func (l *Loader) ReadDir(ctx context.Context, path string) ([]fs.DirEntry, error) {
	if path == "" {
		return nil, errors.New("loader: directory path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if l.fsys != nil {
		return fs.ReadDir(l.fsys, filepath.ToSlash(path))
	}
	return os.ReadDir(path)
}

// Stat returns file info for path.
func (l *Loader) Stat(path string) (fs.FileInfo, error) {
	if l.fsys != nil {
		return fs.Stat(l.fsys, filepath.ToSlash(path))
	}
	return os.Stat(path)
}

// FileExists reports whether path exists and is a regular file.
func (l *Loader) FileExists(path string) bool {
	info, err := l.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// DirExists reports whether path exists and is a directory.
func (l *Loader) DirExists(path string) bool {
	info, err := l.Stat(path)
	return err == nil && info.IsDir()
}
