package astroconfig

import (
	"regexp"
	"strings"
)

// Collection is one directory-backed collection declared in the config,
// together with the raw heuristic schema serialized from its helper calls.
// Schema is empty when the definition carries no helper calls the scanner
// understands.
type Collection struct {
	Name   string
	Schema string
}

// DirChecker reports whether a directory for the named collection exists
// under the content root. Parsing stays filesystem-free; the caller supplies
// the check.
type DirChecker func(name string) bool

var (
	exportCollectionsPattern = regexp.MustCompile(`export\s+const\s+collections\s*=\s*\{`)
	legacyCollectionsPattern = regexp.MustCompile(`collections\s*:\s*\{`)
	nameListPattern          = regexp.MustCompile(`\{\s*([a-zA-Z_][a-zA-Z0-9_]*(?:\s*,\s*[a-zA-Z_][a-zA-Z0-9_]*)*)\s*\}`)
	inlineDefinePattern      = regexp.MustCompile(`(\w+)\s*:\s*defineCollection\s*\(`)
	schemaObjectPattern      = regexp.MustCompile(`z\.object\s*\(\s*\{`)
)

// Parse extracts the directory-backed collections declared in config source.
// src is raw config text; comments are stripped before any matching. File-based
// collections (loader: file(...)) are skipped, as are names whose directory
// does not exist. A definition whose braces never close loses its heuristic
// schema but does not affect sibling collections.
func Parse(src string, exists DirChecker) []Collection {
	clean := StripComments(src)

	block, ok := ExtractCollectionsBlock(clean)
	if !ok {
		return nil
	}

	var out []Collection

	// export const collections = { articles, notes } exports previously
	// declared consts: mine the full source for each definition.
	if m := nameListPattern.FindStringSubmatch(block); m != nil {
		names := m[1]
		if !strings.Contains(names, "defineCollection") && !strings.Contains(names, ":") {
			for _, name := range strings.Split(names, ",") {
				name = strings.TrimSpace(name)
				if name == "" || IsFileBasedCollection(clean, name) {
					continue
				}
				if exists != nil && !exists(name) {
					continue
				}
				schema, _ := extractBasicSchema(clean, name)
				out = append(out, Collection{Name: name, Schema: schema})
			}
			if len(out) > 0 {
				return out
			}
		}
	}

	// Inline map form: collections = { blog: defineCollection({...}) }.
	for _, m := range inlineDefinePattern.FindAllStringSubmatch(block, -1) {
		name := m[1]
		if IsFileBasedCollection(clean, name) {
			continue
		}
		if exists != nil && !exists(name) {
			continue
		}
		schema, _ := extractBasicSchema(block, name)
		out = append(out, Collection{Name: name, Schema: schema})
	}
	return out
}

// ExtractCollectionsBlock returns the brace-delimited collections block,
// braces included. It tries the modern `export const collections = {` shape
// first, then the legacy `collections: {` property shape.
func ExtractCollectionsBlock(src string) (string, bool) {
	for _, pattern := range []*regexp.Regexp{exportCollectionsPattern, legacyCollectionsPattern} {
		loc := pattern.FindStringIndex(src)
		if loc == nil {
			continue
		}
		start := loc[1] - 1
		end, err := matchDelimiter(src, start, '{', '}')
		if err != nil {
			continue
		}
		return src[start:end], true
	}
	return "", false
}

// IsFileBasedCollection reports whether the named collection is declared with
// a file() loader. Those collections have no backing directory and are
// handled by the file-based entry loader instead of the directory scanner.
func IsFileBasedCollection(src, name string) bool {
	pattern, err := regexp.Compile(
		`(?:(?:const|let|var)\s+)?` + regexp.QuoteMeta(name) +
			`\s*[=:]\s*defineCollection\s*\(\s*\{\s*loader:\s*file\s*\(`)
	if err != nil {
		return false
	}
	return pattern.MatchString(src)
}

// extractBasicSchema locates the named defineCollection call in src, digs out
// the z.object({...}) body, and serializes its helper calls. Returns "" with
// ok=false when the definition, its schema object, or any balancing delimiter
// is missing.
func extractBasicSchema(src, name string) (string, bool) {
	quoted := regexp.QuoteMeta(name)
	constPattern, err := regexp.Compile(`const\s+` + quoted + `\s*=\s*defineCollection\s*\(`)
	if err != nil {
		return "", false
	}
	propPattern, err := regexp.Compile(quoted + `\s*:\s*defineCollection\s*\(`)
	if err != nil {
		return "", false
	}

	loc := constPattern.FindStringIndex(src)
	if loc == nil {
		loc = propPattern.FindStringIndex(src)
	}
	if loc == nil {
		return "", false
	}

	parenStart := loc[1] - 1
	parenEnd, err := matchDelimiter(src, parenStart, '(', ')')
	if err != nil {
		return "", false
	}
	definition := src[loc[0]:parenEnd]

	objLoc := schemaObjectPattern.FindStringIndex(definition)
	if objLoc == nil {
		return "", false
	}
	braceStart := objLoc[1] - 1
	braceEnd, err := matchDelimiter(definition, braceStart, '{', '}')
	if err != nil {
		return "", false
	}
	body := strings.TrimSpace(definition[braceStart+1 : braceEnd-1])
	return serializeHelpers(body)
}
