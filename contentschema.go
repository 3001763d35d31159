// Package contentschema resolves the schemas of a static-site project's
// content collections: the collection config is parsed heuristically, the
// generated JSON Schema is interpreted, and both are merged into the typed
// field definitions an editor renders as forms.
package contentschema

import (
	"github.com/goliatone/go-contentschema/internal/merger"
	"github.com/goliatone/go-contentschema/pkg/project"
	"github.com/goliatone/go-contentschema/pkg/schema"
)

// NewScanner constructs a project scanner using the internal pipeline while
// keeping the concrete wiring hidden from consumers.
func NewScanner(options ...project.Option) *project.Scanner {
	return project.NewScanner(options...)
}

// CompleteSchema merges the two schema sources of a collection into its final
// definition. jsonSchema is the raw generated JSON Schema document and
// zodSchema the raw heuristic schema; either may be empty, not both.
func CompleteSchema(collectionName, jsonSchema, zodSchema string) (schema.Definition, error) {
	return merger.CreateCompleteSchema(collectionName, jsonSchema, zodSchema)
}
