package astroconfig

import "encoding/json"

// zodSchema is the heuristic schema document handed to the merger: a flat
// field list keyed by dotted path. Only the helper calls the scanner
// recognizes produce entries; everything else about the config is left for
// the generated JSON Schema to describe.
type zodSchema struct {
	Type   string     `json:"type"`
	Fields []zodField `json:"fields"`
}

type zodField struct {
	Name                     string         `json:"name"`
	Type                     string         `json:"type"`
	ArrayType                string         `json:"arrayType,omitempty"`
	ReferencedCollection     string         `json:"referencedCollection,omitempty"`
	ArrayReferenceCollection string         `json:"arrayReferenceCollection,omitempty"`
	Optional                 bool           `json:"optional"`
	Default                  any            `json:"default"`
	Constraints              map[string]any `json:"constraints"`
}

// serializeHelpers resolves every helper call in the schema body to a dotted
// field path and serializes the result as the heuristic schema document.
// Helpers whose field name cannot be resolved are dropped; ok is false when
// nothing resolved.
func serializeHelpers(body string) (string, bool) {
	matches := findHelperCalls(body)
	if len(matches) == 0 {
		return "", false
	}

	fields := make([]zodField, 0, len(matches))
	for _, m := range matches {
		path, ok := resolveFieldPath(body, m.position)
		if !ok {
			continue
		}

		field := zodField{
			Name:        path,
			Optional:    true,
			Constraints: map[string]any{},
		}
		if insideArray(body, m.position) {
			field.Type = "Array"
			switch m.kind {
			case helperImage:
				field.ArrayType = "Image"
			case helperReference:
				field.ArrayType = "Reference"
				field.ArrayReferenceCollection = m.collection
			}
		} else {
			switch m.kind {
			case helperImage:
				field.Type = "Image"
			case helperReference:
				field.Type = "Reference"
				field.ReferencedCollection = m.collection
			}
		}
		fields = append(fields, field)
	}
	if len(fields) == 0 {
		return "", false
	}

	payload, err := json.Marshal(zodSchema{Type: "zod", Fields: fields})
	if err != nil {
		return "", false
	}
	return string(payload), true
}
