package schema

// FieldType enumerates the editor-facing kinds a resolved field can take.
type FieldType string

const (
	FieldTypeString    FieldType = "string"
	FieldTypeNumber    FieldType = "number"
	FieldTypeInteger   FieldType = "integer"
	FieldTypeBoolean   FieldType = "boolean"
	FieldTypeDate      FieldType = "date"
	FieldTypeEnum      FieldType = "enum"
	FieldTypeReference FieldType = "reference"
	FieldTypeArray     FieldType = "array"
	FieldTypeImage     FieldType = "image"
	FieldTypeEmail     FieldType = "email"
	FieldTypeURL       FieldType = "url"
	FieldTypeUnknown   FieldType = "unknown"
)

// Definition is the resolved schema for one content collection: the ordered
// set of editable fields the editor renders as a form.
type Definition struct {
	CollectionName string  `json:"collectionName"`
	Fields         []Field `json:"fields"`
}

// Field describes one editable input. Name carries the full dotted path for
// fields flattened out of nested objects; ParentPath is set (and IsNested
// true) only for those flattened fields. ArrayReferenceCollection is only
// populated when FieldType is array and SubType is reference.
type Field struct {
	Name                     string            `json:"name"`
	Label                    string            `json:"label"`
	FieldType                FieldType         `json:"fieldType"`
	SubType                  FieldType         `json:"subType,omitempty"`
	Required                 bool              `json:"required"`
	Constraints              *FieldConstraints `json:"constraints,omitempty"`
	Description              string            `json:"description,omitempty"`
	Default                  any               `json:"default,omitempty"`
	EnumValues               []string          `json:"enumValues,omitempty"`
	ReferenceCollection      string            `json:"referenceCollection,omitempty"`
	ArrayReferenceCollection string            `json:"arrayReferenceCollection,omitempty"`
	IsNested                 bool              `json:"isNested,omitempty"`
	ParentPath               string            `json:"parentPath,omitempty"`
}

// FieldConstraints carries validation bounds lifted from the schema sources.
// For array fields MinLength/MaxLength hold the item-count bounds.
type FieldConstraints struct {
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	Format    string   `json:"format,omitempty"`
}

// Empty reports whether no constraint is set. Empty constraint objects are
// dropped rather than serialized.
func (c *FieldConstraints) Empty() bool {
	if c == nil {
		return true
	}
	return c.Min == nil && c.Max == nil && c.MinLength == nil &&
		c.MaxLength == nil && c.Pattern == "" && c.Format == ""
}
