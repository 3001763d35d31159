package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestLoader_ReadFileFromFS(t *testing.T) {
	fsys := fstest.MapFS{"dir/config.ts": {Data: []byte("export {}")}}
	l := New(fsys)

	data, err := l.ReadFile(context.Background(), "dir/config.ts")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "export {}" {
		t.Fatalf("unexpected contents: %q", data)
	}
}

func TestLoader_ReadFileFromOS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.ts")
	if err := os.WriteFile(path, []byte("export {}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	l := New(nil)
	data, err := l.ReadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "export {}" {
		t.Fatalf("unexpected contents: %q", data)
	}
}

func TestLoader_EmptyPath(t *testing.T) {
	l := New(nil)
	if _, err := l.ReadFile(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := New(fstest.MapFS{})
	if _, err := l.ReadFile(ctx, "anything"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoader_Exists(t *testing.T) {
	fsys := fstest.MapFS{"content/blog/post.md": {Data: []byte("hi")}}
	l := New(fsys)

	if !l.DirExists("content/blog") {
		t.Fatalf("expected directory to exist")
	}
	if l.DirExists("content/missing") {
		t.Fatalf("missing directory reported as existing")
	}
	if !l.FileExists("content/blog/post.md") {
		t.Fatalf("expected file to exist")
	}
	if l.FileExists("content/blog") {
		t.Fatalf("a directory is not a regular file")
	}
}
