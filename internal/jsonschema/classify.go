package jsonschema

import (
	"bytes"
	"encoding/json"

	"github.com/goliatone/go-contentschema/pkg/schema"
)

// fieldTypeInfo is the outcome of classifying one property.
type fieldTypeInfo struct {
	fieldType  schema.FieldType
	subType    schema.FieldType
	enumValues []string
}

func classify(prop property) fieldTypeInfo {
	if len(prop.AnyOf) > 0 {
		return classifyAnyOf(prop.AnyOf)
	}
	if len(prop.Enum) > 0 {
		return fieldTypeInfo{fieldType: schema.FieldTypeEnum, enumValues: stringValues(prop.Enum)}
	}
	if len(prop.Const) > 0 {
		return fieldTypeInfo{fieldType: schema.FieldTypeString}
	}

	typeName, ok := prop.typeName()
	if !ok {
		if prop.typeIsList() {
			// Multi-typed properties degrade to a plain text input.
			return fieldTypeInfo{fieldType: schema.FieldTypeString}
		}
		return fieldTypeInfo{fieldType: schema.FieldTypeUnknown}
	}

	switch typeName {
	case "array":
		return classifyArray(prop)
	case "object":
		return classifyObject(prop)
	case "string":
		switch prop.Format {
		case "email":
			return fieldTypeInfo{fieldType: schema.FieldTypeEmail}
		case "uri":
			return fieldTypeInfo{fieldType: schema.FieldTypeURL}
		}
		return fieldTypeInfo{fieldType: schema.FieldTypeString}
	case "number":
		return fieldTypeInfo{fieldType: schema.FieldTypeNumber}
	case "integer":
		return fieldTypeInfo{fieldType: schema.FieldTypeInteger}
	case "boolean":
		return fieldTypeInfo{fieldType: schema.FieldTypeBoolean}
	default:
		return fieldTypeInfo{fieldType: schema.FieldTypeUnknown}
	}
}

// classifyAnyOf resolves the union shapes the generator emits, most of them
// optional-and-nullable wrappers. Order matters: date unions also look like
// nullable strings, and reference unions also look like nullable objects.
func classifyAnyOf(branches []property) fieldTypeInfo {
	if isDateUnion(branches) {
		return fieldTypeInfo{fieldType: schema.FieldTypeDate}
	}
	if isReferenceUnion(branches) {
		return fieldTypeInfo{fieldType: schema.FieldTypeReference}
	}
	if info, ok := nullablePrimitive(branches); ok {
		return info
	}
	if info, ok := nullableArray(branches); ok {
		return info
	}
	if info, ok := nullableEnum(branches); ok {
		return info
	}
	return fieldTypeInfo{fieldType: schema.FieldTypeString}
}

func isDateUnion(branches []property) bool {
	for _, b := range branches {
		switch b.Format {
		case "date-time", "date", "unix-time":
			return true
		}
	}
	return false
}

// isReferenceUnion spots the object shape reference() produces: properties
// carrying a collection key alongside an id or slug key.
func isReferenceUnion(branches []property) bool {
	for _, b := range branches {
		if typeName, _ := b.typeName(); typeName != "object" {
			continue
		}
		if len(b.Properties) == 0 {
			continue
		}
		keys, err := orderedKeys(b.Properties)
		if err != nil {
			continue
		}
		var hasCollection, hasIdentifier bool
		for _, key := range keys {
			switch key {
			case "collection":
				hasCollection = true
			case "id", "slug":
				hasIdentifier = true
			}
		}
		if hasCollection && hasIdentifier {
			return true
		}
	}
	return false
}

func nullablePrimitive(branches []property) (fieldTypeInfo, bool) {
	other, ok := nullCounterpart(branches)
	if !ok {
		return fieldTypeInfo{}, false
	}
	typeName, ok := other.typeName()
	if !ok {
		return fieldTypeInfo{}, false
	}
	switch typeName {
	case "number":
		return fieldTypeInfo{fieldType: schema.FieldTypeNumber}, true
	case "integer":
		return fieldTypeInfo{fieldType: schema.FieldTypeInteger}, true
	case "boolean":
		return fieldTypeInfo{fieldType: schema.FieldTypeBoolean}, true
	case "string":
		if len(other.Enum) == 0 {
			return fieldTypeInfo{fieldType: schema.FieldTypeString}, true
		}
	}
	return fieldTypeInfo{}, false
}

func nullableArray(branches []property) (fieldTypeInfo, bool) {
	other, ok := nullCounterpart(branches)
	if !ok {
		return fieldTypeInfo{}, false
	}
	if typeName, _ := other.typeName(); typeName != "array" {
		return fieldTypeInfo{}, false
	}
	return classifyArray(other), true
}

func nullableEnum(branches []property) (fieldTypeInfo, bool) {
	other, ok := nullCounterpart(branches)
	if !ok {
		return fieldTypeInfo{}, false
	}
	typeName, _ := other.typeName()
	if typeName != "string" || len(other.Enum) == 0 {
		return fieldTypeInfo{}, false
	}
	return fieldTypeInfo{fieldType: schema.FieldTypeEnum, enumValues: stringValues(other.Enum)}, true
}

// nullCounterpart returns the non-null branch of a two-branch union where the
// other branch is type null.
func nullCounterpart(branches []property) (property, bool) {
	if len(branches) != 2 {
		return property{}, false
	}
	for i, b := range branches {
		if typeName, _ := b.typeName(); typeName == "null" {
			return branches[1-i], true
		}
	}
	return property{}, false
}

func classifyArray(prop property) fieldTypeInfo {
	if len(prop.Items) == 0 {
		return fieldTypeInfo{fieldType: schema.FieldTypeArray, subType: schema.FieldTypeString}
	}
	// Tuple validation (items as a list) has no single item type.
	if trimmed := bytes.TrimSpace(prop.Items); trimmed[0] == '[' {
		return fieldTypeInfo{fieldType: schema.FieldTypeString}
	}
	var item property
	if err := json.Unmarshal(prop.Items, &item); err != nil {
		return fieldTypeInfo{fieldType: schema.FieldTypeArray, subType: schema.FieldTypeString}
	}
	itemInfo := classify(item)
	return fieldTypeInfo{fieldType: schema.FieldTypeArray, subType: itemInfo.fieldType}
}

func classifyObject(prop property) fieldTypeInfo {
	// A truthy additionalProperties means free-form record: edited as opaque
	// text. Strict objects stay unknown so the caller can flatten them.
	trimmed := bytes.TrimSpace(prop.AdditionalProperties)
	if len(trimmed) > 0 && (trimmed[0] == '{' || bytes.Equal(trimmed, []byte("true"))) {
		return fieldTypeInfo{fieldType: schema.FieldTypeString}
	}
	return fieldTypeInfo{fieldType: schema.FieldTypeUnknown}
}

func stringValues(values []any) []string {
	var out []string
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
