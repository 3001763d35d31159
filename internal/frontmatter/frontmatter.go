// Package frontmatter splits markdown documents into YAML frontmatter and
// body. Key order is preserved so the editor can render fields in the order
// authors wrote them.
package frontmatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Document is a markdown file split into its parts. Frontmatter is nil when
// the file has none.
type Document struct {
	Frontmatter *Map
	Body        string
}

// Parse splits content on the frontmatter fence. A document without a
// leading fence is all body. Malformed YAML is an error; a missing closing
// fence is not frontmatter.
func Parse(content string) (Document, error) {
	var rest string
	switch {
	case strings.HasPrefix(content, delimiter+"\n"):
		rest = content[len(delimiter)+1:]
	case strings.HasPrefix(content, delimiter+"\r\n"):
		rest = content[len(delimiter)+2:]
	default:
		return Document{Body: content}, nil
	}

	idx := strings.Index(rest, "\n"+delimiter)
	if idx < 0 {
		return Document{Body: content}, nil
	}
	raw := rest[:idx]
	body := rest[idx+len("\n"+delimiter):]
	body = strings.TrimPrefix(strings.TrimPrefix(body, "\r"), "\n")

	fm, err := parseYAML(raw)
	if err != nil {
		return Document{}, err
	}
	return Document{Frontmatter: fm, Body: body}, nil
}

func parseYAML(raw string) (*Map, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &root); err != nil {
		return nil, fmt.Errorf("frontmatter: parse yaml: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return NewMap(), nil
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("frontmatter: expected a mapping, got yaml kind %d", mapping.Kind)
	}

	out := NewMap()
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode := mapping.Content[i]
		valueNode := mapping.Content[i+1]

		var value any
		if err := valueNode.Decode(&value); err != nil {
			return nil, fmt.Errorf("frontmatter: decode %q: %w", keyNode.Value, err)
		}
		out.Set(keyNode.Value, value)
	}
	return out, nil
}

// Map is a string-keyed map that remembers insertion order.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty ordered map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Set stores value under key, appending the key on first sight.
func (m *Map) Set(key string, value any) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key.
func (m *Map) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len reports the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// MarshalJSON serializes the map as a JSON object in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf strings.Builder
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		valueJSON, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		buf.Write(valueJSON)
	}
	buf.WriteByte('}')
	return []byte(buf.String()), nil
}
