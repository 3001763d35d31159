package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/goliatone/go-contentschema/internal/frontmatter"
)

var (
	// ErrCollectionNotFound reports that the config declares no file() loader
	// for the requested collection.
	ErrCollectionNotFound = errors.New("project: file-based collection not found in config")
	// ErrMissingIdentifier reports a collection item without an id or slug.
	ErrMissingIdentifier = errors.New("project: collection items must have an id or slug field")
)

// LoadFileBasedCollection loads the entries of a collection backed by a JSON
// data file rather than a directory. The data file path comes from the
// collection's loader: file('...') declaration; each array element becomes a
// FileEntry keyed "<collection>/<id>", with the element itself as
// frontmatter. Items are identified by id, falling back to slug.
func (s *Scanner) LoadFileBasedCollection(ctx context.Context, projectPath, collectionName string) ([]FileEntry, error) {
	dataPath, err := s.resolveDataFilePath(ctx, projectPath, collectionName)
	if err != nil {
		return nil, err
	}

	raw, err := s.files.ReadFile(ctx, dataPath)
	if err != nil {
		return nil, fmt.Errorf("project: read collection file %s: %w", dataPath, err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("project: collection file %s must contain a JSON array: %w", dataPath, err)
	}

	files := make([]FileEntry, 0, len(items))
	for _, item := range items {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}

		itemID, ok := stringField(obj, "id")
		if !ok {
			itemID, ok = stringField(obj, "slug")
		}
		if !ok {
			return nil, fmt.Errorf("%w: collection %q", ErrMissingIdentifier, collectionName)
		}

		entry := newFileEntry(dataPath, collectionName)
		entry.ID = collectionName + "/" + itemID
		if fm, err := itemFrontmatter(item); err == nil {
			entry.Frontmatter = fm
		}
		files = append(files, entry)
	}

	s.logger.Debug("loaded file-based collection", "collection", collectionName, "items", len(files))
	return files, nil
}

// resolveDataFilePath finds the loader: file('...') declaration for the
// collection in the project config and resolves its path against the project
// root.
func (s *Scanner) resolveDataFilePath(ctx context.Context, projectPath, collectionName string) (string, error) {
	pattern, err := regexp.Compile(
		`(?:(?:const|let|var)\s+)?` + regexp.QuoteMeta(collectionName) +
			`\s*[=:]\s*defineCollection\s*\(\s*\{\s*loader:\s*file\s*\(\s*['"]([^'"]+)['"]`)
	if err != nil {
		return "", fmt.Errorf("project: collection name %q: %w", collectionName, err)
	}

	for _, rel := range configRelPaths {
		configPath := filepath.Join(projectPath, rel)
		if !s.files.FileExists(configPath) {
			continue
		}
		content, err := s.files.ReadFile(ctx, configPath)
		if err != nil {
			return "", fmt.Errorf("project: read config %s: %w", configPath, err)
		}
		if m := pattern.FindStringSubmatch(string(content)); m != nil {
			cleaned := strings.TrimPrefix(m[1], "./")
			return filepath.Join(projectPath, cleaned), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrCollectionNotFound, collectionName)
}

// itemFrontmatter re-decodes one JSON item as an ordered map so file-based
// entries round-trip key order the same way markdown frontmatter does.
func itemFrontmatter(item json.RawMessage) (*frontmatter.Map, error) {
	dec := json.NewDecoder(strings.NewReader(string(item)))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, err
	}

	out := frontmatter.NewMap()
	for dec.More() {
		keyToken, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil, fmt.Errorf("project: unexpected token %v in collection item", keyToken)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		out.Set(key, value)
	}
	return out, nil
}

func stringField(obj map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := obj[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
