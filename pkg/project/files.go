package project

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-contentschema/internal/frontmatter"
)

// FileEntry is one entry of a collection: a markdown file on disk or an item
// of a file-based collection. ID is collection-scoped
// ("<collection>/<slug>"); Frontmatter preserves author key order.
type FileEntry struct {
	ID          string           `json:"id"`
	Path        string           `json:"path"`
	Name        string           `json:"name"`
	Extension   string           `json:"extension"`
	Collection  string           `json:"collection"`
	Frontmatter *frontmatter.Map `json:"frontmatter,omitempty"`
}

func newFileEntry(filePath, collection string) FileEntry {
	base := filepath.Base(filePath)
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	name := strings.TrimSuffix(base, filepath.Ext(base))

	return FileEntry{
		ID:         collection + "/" + name,
		Path:       filePath,
		Name:       name,
		Extension:  ext,
		Collection: collection,
	}
}

// ListCollectionFiles enumerates the markdown entries directly inside
// collectionPath, with frontmatter parsed. The listing is flat; nested
// entries are reachable through the recursive counter only. Files whose
// frontmatter fails to parse are listed without it.
func (s *Scanner) ListCollectionFiles(ctx context.Context, collectionPath string) ([]FileEntry, error) {
	collection := filepath.Base(collectionPath)

	entries, err := s.files.ReadDir(ctx, collectionPath)
	if err != nil {
		return nil, fmt.Errorf("project: read collection directory %s: %w", collectionPath, err)
	}

	var out []FileEntry
	for _, entry := range entries {
		if entry.IsDir() || skipEntry(entry.Name()) {
			continue
		}
		if !isMarkdown(entry.Name()) {
			continue
		}

		filePath := filepath.Join(collectionPath, entry.Name())
		file := newFileEntry(filePath, collection)

		if content, err := s.files.ReadFile(ctx, filePath); err == nil {
			if doc, err := frontmatter.Parse(string(content)); err == nil {
				file.Frontmatter = doc.Frontmatter
			}
		}
		out = append(out, file)
	}
	return out, nil
}

// CountFilesRecursive counts the markdown entries under collectionPath,
// including subdirectories. Hidden and underscore-prefixed entries are
// skipped, as are symlinked directories.
func (s *Scanner) CountFilesRecursive(ctx context.Context, collectionPath string) (int, error) {
	entries, err := s.files.ReadDir(ctx, collectionPath)
	if err != nil {
		return 0, fmt.Errorf("project: read directory %s: %w", collectionPath, err)
	}

	count := 0
	for _, entry := range entries {
		if skipEntry(entry.Name()) || entry.Type()&fs.ModeSymlink != 0 {
			continue
		}
		child := filepath.Join(collectionPath, entry.Name())

		if entry.IsDir() {
			nested, err := s.CountFilesRecursive(ctx, child)
			if err != nil {
				return 0, err
			}
			count += nested
			continue
		}
		if isMarkdown(entry.Name()) {
			count++
		}
	}
	return count, nil
}

func isMarkdown(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".mdx":
		return true
	}
	return false
}

// skipEntry filters dotfiles and the underscore prefix the generator treats
// as "not content".
func skipEntry(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}
