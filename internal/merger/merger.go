// Package merger combines the two schema sources a collection can carry: the
// generated JSON Schema (authoritative for structure, constraints and
// defaults) and the heuristic schema mined from the config (authoritative for
// reference targets and image fields, which the JSON Schema flattens into
// plain strings).
package merger

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-contentschema/internal/jsonschema"
	"github.com/goliatone/go-contentschema/pkg/schema"
)

// ErrNoSchema reports that neither schema source yielded a definition.
var ErrNoSchema = errors.New("merger: no schema available")

// CreateCompleteSchema resolves the final definition for a collection. The
// JSON Schema forms the backbone; heuristic data enhances it in place. With
// no JSON Schema (or one that fails to parse) the heuristic schema alone is
// used. Enhancement failures degrade silently: a complete-but-unenhanced
// definition beats none.
func CreateCompleteSchema(collectionName, jsonSchema, zodSchema string) (schema.Definition, error) {
	if jsonSchema != "" {
		def, err := jsonschema.Parse(collectionName, []byte(jsonSchema))
		if err == nil {
			if zodSchema != "" {
				enhanceFromZod(&def, zodSchema)
			}
			return def, nil
		}
	}

	if zodSchema != "" {
		return parseZodSchema(collectionName, zodSchema)
	}

	return schema.Definition{}, fmt.Errorf("%w: collection %q", ErrNoSchema, collectionName)
}

// zodField mirrors the heuristic schema document. Options and constraints
// only appear in documents produced by older scanners; they are honored when
// present.
type zodField struct {
	Name                     string         `json:"name"`
	Type                     string         `json:"type"`
	Optional                 bool           `json:"optional"`
	Default                  *string        `json:"default"`
	Options                  []string       `json:"options"`
	Constraints              map[string]any `json:"constraints"`
	ArrayType                string         `json:"arrayType"`
	ReferencedCollection     string         `json:"referencedCollection"`
	ArrayReferenceCollection string         `json:"arrayReferenceCollection"`
}

type zodDocument struct {
	Type   string     `json:"type"`
	Fields []zodField `json:"fields"`
}

// enhanceFromZod overlays heuristic knowledge onto a parsed definition:
// reference targets onto reference fields (and array-of-reference fields),
// and image upgrades onto the string fields image() produces in the JSON
// Schema.
func enhanceFromZod(def *schema.Definition, zodSchema string) {
	var doc zodDocument
	if err := json.Unmarshal([]byte(zodSchema), &doc); err != nil {
		return
	}

	referenceMap := make(map[string]string)
	imageFields := make(map[string]bool)
	for _, f := range doc.Fields {
		switch {
		case f.ReferencedCollection != "":
			referenceMap[f.Name] = f.ReferencedCollection
		case f.ArrayReferenceCollection != "":
			referenceMap[f.Name] = f.ArrayReferenceCollection
		}
		if f.Type == "Image" || (f.Type == "Array" && f.ArrayType == "Image") {
			imageFields[f.Name] = true
		}
	}

	for i := range def.Fields {
		field := &def.Fields[i]

		if collection, ok := referenceMap[field.Name]; ok {
			switch {
			case field.FieldType == schema.FieldTypeReference:
				field.ReferenceCollection = collection
			case field.FieldType == schema.FieldTypeArray && field.SubType == schema.FieldTypeReference:
				field.ArrayReferenceCollection = collection
			}
		}

		if imageFields[field.Name] {
			switch {
			case field.FieldType == schema.FieldTypeString:
				field.FieldType = schema.FieldTypeImage
			case field.FieldType == schema.FieldTypeArray && field.SubType == schema.FieldTypeString:
				field.SubType = schema.FieldTypeImage
			}
		}
	}
}

// parseZodSchema builds a definition from the heuristic schema alone.
func parseZodSchema(collectionName, zodSchema string) (schema.Definition, error) {
	var doc zodDocument
	if err := json.Unmarshal([]byte(zodSchema), &doc); err != nil {
		return schema.Definition{}, fmt.Errorf("merger: parse heuristic schema: %w", err)
	}

	fields := make([]schema.Field, 0, len(doc.Fields))
	for _, f := range doc.Fields {
		field := schema.Field{
			Name:                     f.Name,
			Label:                    schema.DefaultLabeler(f.Name),
			FieldType:                zodTypeToFieldType(f.Type),
			Required:                 !f.Optional,
			Constraints:              zodConstraints(f.Constraints),
			EnumValues:               f.Options,
			ReferenceCollection:      f.ReferencedCollection,
			ArrayReferenceCollection: f.ArrayReferenceCollection,
		}
		if f.ArrayType != "" {
			field.SubType = zodTypeToFieldType(f.ArrayType)
		}
		if f.Default != nil {
			field.Default = *f.Default
		}
		fields = append(fields, field)
	}

	return schema.Definition{CollectionName: collectionName, Fields: fields}, nil
}

func zodTypeToFieldType(zodType string) schema.FieldType {
	switch zodType {
	case "String":
		return schema.FieldTypeString
	case "Number":
		return schema.FieldTypeNumber
	case "Boolean":
		return schema.FieldTypeBoolean
	case "Date":
		return schema.FieldTypeDate
	case "Array":
		return schema.FieldTypeArray
	case "Enum":
		return schema.FieldTypeEnum
	case "Reference":
		return schema.FieldTypeReference
	case "Image":
		return schema.FieldTypeImage
	default:
		return schema.FieldTypeUnknown
	}
}

func zodConstraints(raw map[string]any) *schema.FieldConstraints {
	if len(raw) == 0 {
		return nil
	}

	c := &schema.FieldConstraints{}
	if v, ok := floatValue(raw["min"]); ok {
		c.Min = &v
	}
	if v, ok := floatValue(raw["max"]); ok {
		c.Max = &v
	}
	if v, ok := floatValue(raw["minLength"]); ok {
		n := int(v)
		c.MinLength = &n
	}
	if v, ok := floatValue(raw["maxLength"]); ok {
		n := int(v)
		c.MaxLength = &n
	}
	if s, ok := raw["regex"].(string); ok {
		c.Pattern = s
	}
	if b, _ := raw["email"].(bool); b {
		c.Format = "email"
	} else if b, _ := raw["url"].(bool); b {
		c.Format = "uri"
	}

	if c.Empty() {
		return nil
	}
	return c
}

func floatValue(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}
