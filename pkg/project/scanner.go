// Package project discovers the content collections of a static-site project
// and resolves each one's schema: the config is parsed heuristically, the
// generated JSON Schema is loaded when present, and the two are merged into
// the definition the editor renders.
package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/goliatone/go-contentschema/internal/astroconfig"
	"github.com/goliatone/go-contentschema/internal/loader"
	"github.com/goliatone/go-contentschema/internal/merger"
)

// DefaultContentDir is where collections live unless the project overrides it.
const DefaultContentDir = "src/content"

// configRelPaths are the config locations tried in order: the current layout
// first, then the legacy one.
var configRelPaths = []string{
	filepath.Join("src", "content.config.ts"),
	filepath.Join("src", "content", "config.ts"),
}

// Scanner discovers collections and resolves their schemas.
type Scanner struct {
	files  *loader.Loader
	logger *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFS makes the scanner read from fsys instead of the OS. Paths passed to
// the scanner are then fs.FS-style: forward slashes, no leading separator.
func WithFS(fsys fs.FS) Option {
	return func(s *Scanner) {
		s.files = loader.New(fsys)
	}
}

// NewScanner constructs a Scanner.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		files:  loader.New(nil),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanOptions tunes a project scan.
type ScanOptions struct {
	// ContentDir overrides the content root, relative to the project root.
	ContentDir string
}

// Scan discovers the collections of the project at projectPath. Config-driven
// discovery runs first; when the config is absent, unparsable, or names no
// collections, every subdirectory of the content root becomes a collection.
// Each collection gets its generated JSON Schema attached when one exists
// and its merged definition serialized onto CompleteSchema. A collection
// whose schemas cannot be merged is still returned, just without a complete
// schema.
func (s *Scanner) Scan(ctx context.Context, projectPath string, opts ScanOptions) ([]Collection, error) {
	contentDir := opts.ContentDir
	if contentDir == "" {
		contentDir = DefaultContentDir
	}
	contentRoot := filepath.Join(projectPath, contentDir)

	s.logger.Debug("scanning project", "path", projectPath, "contentDir", contentDir)

	collections, err := s.collectionsFromConfig(ctx, projectPath, contentRoot)
	if err != nil {
		s.logger.Debug("config parse failed, falling back to directory scan", "error", err)
	}
	if len(collections) == 0 {
		collections, err = s.collectionsFromDirectories(ctx, contentRoot)
		if err != nil {
			return nil, err
		}
	}

	for i := range collections {
		s.attachJSONSchema(ctx, projectPath, &collections[i])
		s.attachCompleteSchema(&collections[i])
	}

	s.logger.Info("project scan complete", "collections", len(collections))
	return collections, nil
}

// collectionsFromConfig parses the first config file found. A missing config
// is not an error; it simply yields no collections.
func (s *Scanner) collectionsFromConfig(ctx context.Context, projectPath, contentRoot string) ([]Collection, error) {
	for _, rel := range configRelPaths {
		configPath := filepath.Join(projectPath, rel)
		if !s.files.FileExists(configPath) {
			continue
		}

		content, err := s.files.ReadFile(ctx, configPath)
		if err != nil {
			return nil, fmt.Errorf("project: read config %s: %w", configPath, err)
		}

		parsed := astroconfig.Parse(string(content), func(name string) bool {
			return s.files.DirExists(filepath.Join(contentRoot, name))
		})

		collections := make([]Collection, 0, len(parsed))
		for _, c := range parsed {
			collections = append(collections, Collection{
				Name:   c.Name,
				Path:   filepath.Join(contentRoot, c.Name),
				Schema: c.Schema,
			})
		}
		s.logger.Debug("collections from config", "config", configPath, "count", len(collections))
		return collections, nil
	}
	return nil, nil
}

// collectionsFromDirectories treats every subdirectory of the content root as
// a collection. A missing content root yields no collections.
func (s *Scanner) collectionsFromDirectories(ctx context.Context, contentRoot string) ([]Collection, error) {
	if !s.files.DirExists(contentRoot) {
		s.logger.Debug("content directory does not exist", "path", contentRoot)
		return nil, nil
	}

	entries, err := s.files.ReadDir(ctx, contentRoot)
	if err != nil {
		return nil, fmt.Errorf("project: read content directory %s: %w", contentRoot, err)
	}

	var collections []Collection
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		collections = append(collections, Collection{
			Name: entry.Name(),
			Path: filepath.Join(contentRoot, entry.Name()),
		})
	}
	s.logger.Debug("collections from directory scan", "count", len(collections))
	return collections, nil
}

func (s *Scanner) attachJSONSchema(ctx context.Context, projectPath string, collection *Collection) {
	schemaPath := filepath.Join(projectPath, ".astro", "collections", collection.Name+".schema.json")
	if !s.files.FileExists(schemaPath) {
		return
	}
	raw, err := s.files.ReadFile(ctx, schemaPath)
	if err != nil {
		s.logger.Warn("failed to read generated schema", "collection", collection.Name, "error", err)
		return
	}
	collection.JSONSchema = string(raw)
	s.logger.Debug("loaded generated schema", "collection", collection.Name)
}

func (s *Scanner) attachCompleteSchema(collection *Collection) {
	def, err := merger.CreateCompleteSchema(collection.Name, collection.JSONSchema, collection.Schema)
	if err != nil {
		if errors.Is(err, merger.ErrNoSchema) {
			s.logger.Debug("no schema sources for collection", "collection", collection.Name)
		} else {
			s.logger.Warn("failed to merge schemas", "collection", collection.Name, "error", err)
		}
		return
	}

	serialized, err := json.Marshal(def)
	if err != nil {
		s.logger.Warn("failed to serialize merged schema", "collection", collection.Name, "error", err)
		return
	}
	collection.CompleteSchema = string(serialized)
}
