package jsonschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-contentschema/pkg/schema"
)

var (
	// ErrMissingRef reports a document without a root $ref.
	ErrMissingRef = errors.New("jsonschema: document has no $ref")
	// ErrMissingDefinition reports a $ref whose definition is absent.
	ErrMissingDefinition = errors.New("jsonschema: referenced definition not found")
	// ErrNoProperties reports a definition that declares no properties.
	ErrNoProperties = errors.New("jsonschema: definition has no properties")
)

// Parse interprets a generated JSON Schema document into the editor field
// model for the named collection. Field order follows the document's
// property order.
func Parse(collectionName string, raw []byte) (schema.Definition, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return schema.Definition{}, fmt.Errorf("jsonschema: parse document: %w", err)
	}
	if doc.Ref == "" {
		return schema.Definition{}, ErrMissingRef
	}

	defName := strings.TrimPrefix(doc.Ref, "#/definitions/")
	entry, ok := doc.Definitions[defName]
	if !ok {
		return schema.Definition{}, fmt.Errorf("%w: %q", ErrMissingDefinition, defName)
	}

	// File-based collections describe the entry shape through a schema-valued
	// additionalProperties; unwrap it before reading fields.
	if inner, ok := schemaValuedAdditionalProperties(entry.AdditionalProperties); ok {
		entry = inner
	}

	if len(entry.Properties) == 0 {
		return schema.Definition{}, fmt.Errorf("%w: %q", ErrNoProperties, defName)
	}

	fields, err := parseEntry(entry)
	if err != nil {
		return schema.Definition{}, fmt.Errorf("jsonschema: definition %q: %w", defName, err)
	}
	return schema.Definition{CollectionName: collectionName, Fields: fields}, nil
}

func parseEntry(entry property) ([]schema.Field, error) {
	props, order, err := propertyMap(entry.Properties)
	if err != nil {
		return nil, fmt.Errorf("parse properties: %w", err)
	}
	required := requiredSet(entry.Required)

	var fields []schema.Field
	for _, name := range order {
		if name == "$schema" {
			continue
		}
		fields = append(fields, parseField(name, props[name], required[name], "")...)
	}
	return fields, nil
}

// parseField turns one property into editor fields. Strict nested objects
// expand into one field per leaf with dotted names; everything else yields a
// single field.
func parseField(name string, prop property, isRequired bool, parentPath string) []schema.Field {
	fullPath := name
	if parentPath != "" {
		fullPath = parentPath + "." + name
	}

	info := classify(prop)

	if info.fieldType == schema.FieldTypeUnknown {
		if typeName, _ := prop.typeName(); typeName == "object" && len(prop.Properties) > 0 {
			nested, order, err := propertyMap(prop.Properties)
			if err == nil {
				required := requiredSet(prop.Required)
				var fields []schema.Field
				for _, childName := range order {
					fields = append(fields, parseField(childName, nested[childName], required[childName], fullPath)...)
				}
				return fields
			}
		}
	}

	field := schema.Field{
		Name:        fullPath,
		Label:       schema.DefaultLabeler(name),
		FieldType:   info.fieldType,
		SubType:     info.subType,
		Required:    isRequired && !prop.hasDefault(),
		Constraints: extractConstraints(prop, info.fieldType),
		Description: schema.SanitizeDescription(description(prop)),
		Default:     prop.defaultValue(),
		EnumValues:  info.enumValues,
		IsNested:    parentPath != "",
		ParentPath:  parentPath,
	}
	return []schema.Field{field}
}

func extractConstraints(prop property, fieldType schema.FieldType) *schema.FieldConstraints {
	c := &schema.FieldConstraints{}

	if prop.Minimum != nil {
		c.Min = floatPtr(*prop.Minimum)
	}
	if prop.Maximum != nil {
		c.Max = floatPtr(*prop.Maximum)
	}
	// Generated schemas express zod's gt/lt as exclusive bounds; the editor
	// only handles inclusive ones.
	if prop.ExclusiveMinimum != nil {
		c.Min = floatPtr(*prop.ExclusiveMinimum + 1)
	}
	if prop.ExclusiveMaximum != nil {
		c.Max = floatPtr(*prop.ExclusiveMaximum - 1)
	}

	c.MinLength = prop.MinLength
	c.MaxLength = prop.MaxLength
	c.Pattern = prop.Pattern

	switch prop.Format {
	case "email", "uri", "date-time", "date":
		c.Format = prop.Format
	}

	// Item-count bounds ride the length fields for arrays.
	if fieldType == schema.FieldTypeArray {
		if prop.MinItems != nil {
			c.MinLength = prop.MinItems
		}
		if prop.MaxItems != nil {
			c.MaxLength = prop.MaxItems
		}
	}

	if c.Empty() {
		return nil
	}
	return c
}

func schemaValuedAdditionalProperties(raw json.RawMessage) (property, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return property{}, false
	}
	var inner property
	if err := json.Unmarshal(trimmed, &inner); err != nil {
		return property{}, false
	}
	return inner, true
}

func description(prop property) string {
	if prop.Description != "" {
		return prop.Description
	}
	return prop.MarkdownDescription
}

func requiredSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

func floatPtr(v float64) *float64 { return &v }
