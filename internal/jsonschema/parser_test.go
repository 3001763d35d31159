package jsonschema

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contentschema/pkg/schema"
)

func wrapDefinition(t *testing.T, body string) []byte {
	t.Helper()
	return []byte(`{
  "$ref": "#/definitions/blog",
  "definitions": {
    "blog": ` + body + `
  }
}`)
}

func fieldByName(t *testing.T, def schema.Definition, name string) schema.Field {
	t.Helper()
	for _, f := range def.Fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("field %q not found in %+v", name, def.Fields)
	return schema.Field{}
}

func TestParse_SimpleFields(t *testing.T) {
	raw := wrapDefinition(t, `{
  "type": "object",
  "properties": {
    "$schema": {"type": "string"},
    "title": {"type": "string", "description": "Post title"},
    "draft": {"type": "boolean", "default": false},
    "weight": {"type": "integer"}
  },
  "required": ["title", "draft"],
  "additionalProperties": false
}`)

	def, err := Parse("blog", raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if def.CollectionName != "blog" {
		t.Fatalf("expected collection blog, got %q", def.CollectionName)
	}

	var names []string
	for _, f := range def.Fields {
		names = append(names, f.Name)
	}
	if diff := cmp.Diff([]string{"title", "draft", "weight"}, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	title := fieldByName(t, def, "title")
	if title.FieldType != schema.FieldTypeString || !title.Required {
		t.Fatalf("unexpected title field: %+v", title)
	}
	if title.Label != "Title" || title.Description != "Post title" {
		t.Fatalf("unexpected title metadata: %+v", title)
	}

	draft := fieldByName(t, def, "draft")
	if draft.Required {
		t.Fatalf("a field with a default is not required even when listed")
	}
	if draft.Default != false {
		t.Fatalf("expected default false, got %v", draft.Default)
	}

	weight := fieldByName(t, def, "weight")
	if weight.FieldType != schema.FieldTypeInteger || weight.Required {
		t.Fatalf("unexpected weight field: %+v", weight)
	}
}

func TestParse_NullableNumberStaysNumber(t *testing.T) {
	raw := wrapDefinition(t, `{
  "type": "object",
  "properties": {
    "rating": {"anyOf": [{"type": "number"}, {"type": "null"}]},
    "count": {"anyOf": [{"type": "null"}, {"type": "integer"}]},
    "flag": {"anyOf": [{"type": "boolean"}, {"type": "null"}]},
    "note": {"anyOf": [{"type": "string"}, {"type": "null"}]}
  },
  "additionalProperties": false
}`)

	def, err := Parse("blog", raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for name, want := range map[string]schema.FieldType{
		"rating": schema.FieldTypeNumber,
		"count":  schema.FieldTypeInteger,
		"flag":   schema.FieldTypeBoolean,
		"note":   schema.FieldTypeString,
	} {
		if got := fieldByName(t, def, name).FieldType; got != want {
			t.Fatalf("field %s: expected %s, got %s", name, want, got)
		}
	}
}

func TestParse_DateUnion(t *testing.T) {
	raw := wrapDefinition(t, `{
  "type": "object",
  "properties": {
    "pubDate": {
      "anyOf": [
        {"type": "string", "format": "date-time"},
        {"type": "string", "format": "date"},
        {"type": "integer", "format": "unix-time"}
      ]
    }
  },
  "additionalProperties": false
}`)

	def, err := Parse("blog", raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := fieldByName(t, def, "pubDate").FieldType; got != schema.FieldTypeDate {
		t.Fatalf("expected date, got %s", got)
	}
}

func TestParse_ReferenceUnion(t *testing.T) {
	raw := wrapDefinition(t, `{
  "type": "object",
  "properties": {
    "author": {
      "anyOf": [
        {
          "type": "object",
          "properties": {
            "collection": {"type": "string"},
            "id": {"type": "string"}
          }
        },
        {
          "type": "object",
          "properties": {
            "collection": {"type": "string"},
            "slug": {"type": "string"}
          }
        }
      ]
    }
  },
  "additionalProperties": false
}`)

	def, err := Parse("blog", raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	author := fieldByName(t, def, "author")
	if author.FieldType != schema.FieldTypeReference {
		t.Fatalf("expected reference, got %s", author.FieldType)
	}
	if author.ReferenceCollection != "" {
		t.Fatalf("the JSON document alone cannot name the target collection")
	}
}

func TestParse_NestedObjectFlattens(t *testing.T) {
	raw := wrapDefinition(t, `{
  "type": "object",
  "properties": {
    "metadata": {
      "type": "object",
      "properties": {
        "author": {
          "type": "object",
          "properties": {
            "name": {"type": "string"},
            "avatar": {"type": "string"}
          },
          "required": ["name"],
          "additionalProperties": false
        },
        "priority": {"type": "number"}
      },
      "additionalProperties": false
    }
  },
  "additionalProperties": false
}`)

	def, err := Parse("blog", raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var names []string
	for _, f := range def.Fields {
		names = append(names, f.Name)
	}
	want := []string{"metadata.author.name", "metadata.author.avatar", "metadata.priority"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("flattened field mismatch (-want +got):\n%s", diff)
	}

	name := fieldByName(t, def, "metadata.author.name")
	if !name.IsNested || name.ParentPath != "metadata.author" {
		t.Fatalf("unexpected nesting metadata: %+v", name)
	}
	if name.Label != "Name" {
		t.Fatalf("labels come from the leaf name, got %q", name.Label)
	}
	if !name.Required {
		t.Fatalf("nested required lists apply to nested fields")
	}
	if fieldByName(t, def, "metadata.author.avatar").Required {
		t.Fatalf("avatar is not in the nested required list")
	}
}

func TestParse_RecordObjectBecomesString(t *testing.T) {
	raw := wrapDefinition(t, `{
  "type": "object",
  "properties": {
    "extra": {"type": "object", "additionalProperties": true},
    "labels": {"type": "object", "additionalProperties": {"type": "string"}}
  },
  "additionalProperties": false
}`)

	def, err := Parse("blog", raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, name := range []string{"extra", "labels"} {
		if got := fieldByName(t, def, name).FieldType; got != schema.FieldTypeString {
			t.Fatalf("field %s: free-form objects are edited as text, got %s", name, got)
		}
	}
}

func TestParse_Arrays(t *testing.T) {
	raw := wrapDefinition(t, `{
  "type": "object",
  "properties": {
    "tags": {"type": "array", "items": {"type": "string"}, "minItems": 1, "maxItems": 5},
    "scores": {"type": "array", "items": {"type": "number"}},
    "anything": {"type": "array"},
    "pair": {"type": "array", "items": [{"type": "string"}, {"type": "number"}]}
  },
  "additionalProperties": false
}`)

	def, err := Parse("blog", raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	tags := fieldByName(t, def, "tags")
	if tags.FieldType != schema.FieldTypeArray || tags.SubType != schema.FieldTypeString {
		t.Fatalf("unexpected tags: %+v", tags)
	}
	if tags.Constraints == nil || *tags.Constraints.MinLength != 1 || *tags.Constraints.MaxLength != 5 {
		t.Fatalf("item-count bounds must land on length constraints: %+v", tags.Constraints)
	}

	if got := fieldByName(t, def, "scores").SubType; got != schema.FieldTypeNumber {
		t.Fatalf("expected number items, got %s", got)
	}
	if got := fieldByName(t, def, "anything").SubType; got != schema.FieldTypeString {
		t.Fatalf("itemless arrays default to string items, got %s", got)
	}
	if got := fieldByName(t, def, "pair").FieldType; got != schema.FieldTypeString {
		t.Fatalf("tuple arrays degrade to text, got %s", got)
	}
}

func TestParse_NullableArray(t *testing.T) {
	raw := wrapDefinition(t, `{
  "type": "object",
  "properties": {
    "tags": {"anyOf": [{"type": "array", "items": {"type": "string"}}, {"type": "null"}]}
  },
  "additionalProperties": false
}`)

	def, err := Parse("blog", raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tags := fieldByName(t, def, "tags")
	if tags.FieldType != schema.FieldTypeArray || tags.SubType != schema.FieldTypeString {
		t.Fatalf("unexpected nullable array: %+v", tags)
	}
}

func TestParse_Enums(t *testing.T) {
	raw := wrapDefinition(t, `{
  "type": "object",
  "properties": {
    "status": {"type": "string", "enum": ["draft", "published"]},
    "tone": {"anyOf": [{"type": "string", "enum": ["light", "dark"]}, {"type": "null"}]},
    "kind": {"const": "article"}
  },
  "additionalProperties": false
}`)

	def, err := Parse("blog", raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	status := fieldByName(t, def, "status")
	if status.FieldType != schema.FieldTypeEnum {
		t.Fatalf("expected enum, got %s", status.FieldType)
	}
	if diff := cmp.Diff([]string{"draft", "published"}, status.EnumValues); diff != "" {
		t.Fatalf("enum values mismatch (-want +got):\n%s", diff)
	}

	tone := fieldByName(t, def, "tone")
	if tone.FieldType != schema.FieldTypeEnum {
		t.Fatalf("nullable enums stay enums, got %s", tone.FieldType)
	}
	if diff := cmp.Diff([]string{"light", "dark"}, tone.EnumValues); diff != "" {
		t.Fatalf("nullable enum values mismatch (-want +got):\n%s", diff)
	}

	if got := fieldByName(t, def, "kind").FieldType; got != schema.FieldTypeString {
		t.Fatalf("const literals are edited as strings, got %s", got)
	}
}

func TestParse_StringFormats(t *testing.T) {
	raw := wrapDefinition(t, `{
  "type": "object",
  "properties": {
    "contact": {"type": "string", "format": "email"},
    "homepage": {"type": "string", "format": "uri"}
  },
  "additionalProperties": false
}`)

	def, err := Parse("blog", raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	contact := fieldByName(t, def, "contact")
	if contact.FieldType != schema.FieldTypeEmail {
		t.Fatalf("expected email, got %s", contact.FieldType)
	}
	if contact.Constraints == nil || contact.Constraints.Format != "email" {
		t.Fatalf("format should surface as a constraint: %+v", contact.Constraints)
	}
	if got := fieldByName(t, def, "homepage").FieldType; got != schema.FieldTypeURL {
		t.Fatalf("expected url, got %s", got)
	}
}

func TestParse_NumericConstraints(t *testing.T) {
	raw := wrapDefinition(t, `{
  "type": "object",
  "properties": {
    "score": {"type": "number", "minimum": 0, "maximum": 100},
    "level": {"type": "integer", "exclusiveMinimum": 0, "exclusiveMaximum": 10},
    "slug": {"type": "string", "minLength": 3, "maxLength": 40, "pattern": "^[a-z-]+$"},
    "plain": {"type": "string"}
  },
  "additionalProperties": false
}`)

	def, err := Parse("blog", raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	score := fieldByName(t, def, "score")
	if *score.Constraints.Min != 0 || *score.Constraints.Max != 100 {
		t.Fatalf("unexpected score bounds: %+v", score.Constraints)
	}

	level := fieldByName(t, def, "level")
	if *level.Constraints.Min != 1 || *level.Constraints.Max != 9 {
		t.Fatalf("exclusive bounds fold to inclusive ones: %+v", level.Constraints)
	}

	slug := fieldByName(t, def, "slug")
	if *slug.Constraints.MinLength != 3 || *slug.Constraints.MaxLength != 40 || slug.Constraints.Pattern != "^[a-z-]+$" {
		t.Fatalf("unexpected slug constraints: %+v", slug.Constraints)
	}

	if fieldByName(t, def, "plain").Constraints != nil {
		t.Fatalf("unconstrained fields carry no constraints object")
	}
}

func TestParse_FileBasedEntryShape(t *testing.T) {
	raw := []byte(`{
  "$ref": "#/definitions/settings",
  "definitions": {
    "settings": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "id": {"type": "string"},
          "siteName": {"type": "string"}
        },
        "required": ["id"],
        "additionalProperties": false
      }
    }
  }
}`)

	def, err := Parse("settings", raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(def.Fields) != 2 {
		t.Fatalf("expected the entry shape's fields, got %+v", def.Fields)
	}
	if !fieldByName(t, def, "id").Required {
		t.Fatalf("entry-shape required list applies")
	}
	if got := fieldByName(t, def, "siteName").Label; got != "Site Name" {
		t.Fatalf("expected Site Name, got %q", got)
	}
}

func TestParse_DescriptionSanitized(t *testing.T) {
	raw := wrapDefinition(t, `{
  "type": "object",
  "properties": {
    "title": {"type": "string", "description": "<script>alert(1)</script>Shown in search results"}
  },
  "additionalProperties": false
}`)

	def, err := Parse("blog", raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := fieldByName(t, def, "title").Description; got != "Shown in search results" {
		t.Fatalf("description must be sanitized, got %q", got)
	}
}

func TestParse_MalformedDocument(t *testing.T) {
	if _, err := Parse("blog", []byte(`{not json`)); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestParse_MissingRef(t *testing.T) {
	_, err := Parse("blog", []byte(`{"definitions": {}}`))
	if !errors.Is(err, ErrMissingRef) {
		t.Fatalf("expected ErrMissingRef, got %v", err)
	}
}

func TestParse_MissingDefinition(t *testing.T) {
	_, err := Parse("blog", []byte(`{"$ref": "#/definitions/blog", "definitions": {"other": {"type": "object"}}}`))
	if !errors.Is(err, ErrMissingDefinition) {
		t.Fatalf("expected ErrMissingDefinition, got %v", err)
	}
}

func TestParse_NoProperties(t *testing.T) {
	_, err := Parse("blog", wrapDefinition(t, `{"type": "object"}`))
	if !errors.Is(err, ErrNoProperties) {
		t.Fatalf("expected ErrNoProperties, got %v", err)
	}
}
