// Package jsonschema interprets the draft-07 documents a static-site
// generator emits for its content collections: a root $ref into a
// definitions table, one definition per collection, property order
// significant for form layout.
package jsonschema

import (
	"bytes"
	"encoding/json"
)

// document is the generated schema file: a $ref pointing into definitions.
type document struct {
	Ref         string              `json:"$ref"`
	Definitions map[string]property `json:"definitions"`
}

// property models the subset of draft-07 keywords the generator emits. The
// same shape serves collection definitions and individual properties. Type,
// Items, Properties, AdditionalProperties and Default stay raw: each can take
// several JSON shapes, and Properties additionally needs its key order
// preserved.
type property struct {
	Type                 json.RawMessage `json:"type"`
	Format               string          `json:"format"`
	Description          string          `json:"description"`
	MarkdownDescription  string          `json:"markdownDescription"`
	AnyOf                []property      `json:"anyOf"`
	Enum                 []any           `json:"enum"`
	Const                json.RawMessage `json:"const"`
	Items                json.RawMessage `json:"items"`
	Properties           json.RawMessage `json:"properties"`
	Required             []string        `json:"required"`
	AdditionalProperties json.RawMessage `json:"additionalProperties"`
	Default              json.RawMessage `json:"default"`
	Minimum              *float64        `json:"minimum"`
	Maximum              *float64        `json:"maximum"`
	ExclusiveMinimum     *float64        `json:"exclusiveMinimum"`
	ExclusiveMaximum     *float64        `json:"exclusiveMaximum"`
	MinLength            *int            `json:"minLength"`
	MaxLength            *int            `json:"maxLength"`
	MinItems             *int            `json:"minItems"`
	MaxItems             *int            `json:"maxItems"`
	Pattern              string          `json:"pattern"`
}

// typeName returns the declared type when it is a plain string. A type
// expressed as a list of types returns ok=false, as does an absent type.
func (p *property) typeName() (string, bool) {
	if len(p.Type) == 0 {
		return "", false
	}
	var name string
	if err := json.Unmarshal(p.Type, &name); err != nil {
		return "", false
	}
	return name, true
}

func (p *property) typeIsList() bool {
	trimmed := bytes.TrimSpace(p.Type)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func (p *property) hasDefault() bool { return len(p.Default) > 0 }

func (p *property) defaultValue() any {
	if !p.hasDefault() {
		return nil
	}
	var v any
	if err := json.Unmarshal(p.Default, &v); err != nil {
		return nil
	}
	return v
}

// propertyMap decodes a raw properties object and recovers its key order,
// which encoding/json maps discard.
func propertyMap(raw json.RawMessage) (map[string]property, []string, error) {
	var props map[string]property
	if err := json.Unmarshal(raw, &props); err != nil {
		return nil, nil, err
	}
	order, err := orderedKeys(raw)
	if err != nil {
		return nil, nil, err
	}
	return props, order, nil
}

// orderedKeys reads the top-level keys of a JSON object in document order
// using the streaming decoder.
func orderedKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, err
	}
	var keys []string
	for dec.More() {
		token, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := token.(string)
		if !ok {
			continue
		}
		keys = append(keys, key)
		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func skipValue(dec *json.Decoder) error {
	token, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := token.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil
	}
	for dec.More() {
		if err := skipValue(dec); err != nil {
			return err
		}
	}
	_, err = dec.Token() // closing delimiter
	return err
}
